// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pdiddy/paperdesk/internal/arxiv"
	"github.com/pdiddy/paperdesk/internal/store"
	"github.com/pdiddy/paperdesk/pkg/types"
)

// savePaperRequest carries a paper plus optional annotations. Nil tags/note
// leave existing stored values untouched.
type savePaperRequest struct {
	Paper types.Paper `json:"paper"`
	Tags  *string     `json:"tags"`
	Note  *string     `json:"note"`
}

type updateSavedRequest struct {
	Tags *string `json:"tags"`
	Note *string `json:"note"`
}

type searchResponse struct {
	Items []types.Paper `json:"items"`
}

type savedListResponse struct {
	Items    []types.SavedPaper `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int                `json:"total"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var filter arxiv.Filter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, http.StatusBadRequest, "invalid search request: "+err.Error())
		return
	}

	papers, err := s.searcher.Search(r.Context(), filter)
	if err != nil {
		var ue *arxiv.UpstreamError
		if errors.As(err, &ue) {
			s.logger.Error("arxiv search failed", "error", err)
			writeError(w, http.StatusBadGateway, "arXiv search failed")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("arxiv search", "results", len(papers))
	writeJSON(w, http.StatusOK, searchResponse{Items: papers})
}

func (s *Server) handleSavePaper(w http.ResponseWriter, r *http.Request) {
	var req savePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid save request: "+err.Error())
		return
	}
	if req.Paper.ArxivID == "" {
		writeError(w, http.StatusBadRequest, "paper.arxiv_id is required")
		return
	}

	saved, err := s.store.SavePaper(r.Context(), req.Paper, req.Tags, req.Note)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("paper saved", "arxiv_id", req.Paper.ArxivID, "saved_id", saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := s.store.ListSaved(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, savedListResponse{
		Items:    items,
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Total:    total,
	})
}

func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := savedID(w, r)
	if !ok {
		return
	}

	saved, err := s.store.GetSaved(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleUpdateSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := savedID(w, r)
	if !ok {
		return
	}

	var req updateSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update request: "+err.Error())
		return
	}

	saved, err := s.store.UpdateSaved(r.Context(), id, req.Tags, req.Note)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := savedID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteSaved(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listOptionsFromQuery validates and defaults the listing parameters:
// page ≥ 1, page_size in [1, 50] defaulting to 10, enumerated sort fields.
func listOptionsFromQuery(r *http.Request) (store.ListOptions, error) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		return store.ListOptions{}, errors.New("page must be a positive integer")
	}
	pageSize, err := intParam(q.Get("page_size"), 10)
	if err != nil || pageSize < 1 || pageSize > 50 {
		return store.ListOptions{}, errors.New("page_size must be between 1 and 50")
	}

	sortBy := q.Get("sort_by")
	switch sortBy {
	case "", "created_at", "published", "updated":
	default:
		return store.ListOptions{}, errors.New("sort_by must be one of created_at, published, updated")
	}

	sortOrder := q.Get("sort_order")
	switch sortOrder {
	case "", "asc", "desc":
	default:
		return store.ListOptions{}, errors.New("sort_order must be asc or desc")
	}
	if sortOrder == "" {
		sortOrder = "desc"
	}

	return store.ListOptions{
		Page:      page,
		PageSize:  pageSize,
		Keyword:   q.Get("keyword"),
		Author:    q.Get("author"),
		Category:  q.Get("category"),
		Tag:       q.Get("tag"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func savedID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid saved paper id")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Saved paper not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
