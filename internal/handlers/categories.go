// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressflow/internal/models"
	"pressflow/internal/slug"
	"pressflow/internal/store"
)

// Categories groups the taxonomy handlers. Categories are language-scoped
// and form a parent/child tree.
type Categories struct {
	categoryStore *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categoryStore *store.CategoryStore) *Categories {
	return &Categories{categoryStore: categoryStore}
}

// Tree returns the nested category tree for a language.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	langID, ok := queryLanguageID(w, r)
	if !ok {
		return
	}

	tree, err := h.categoryStore.Tree(langID)
	if err != nil {
		serverError(w, "category tree failed", err)
		return
	}
	if tree == nil {
		tree = []models.Category{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": tree})
}

// List returns a flat list of a language's categories with post counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	langID, ok := queryLanguageID(w, r)
	if !ok {
		return
	}

	cats, err := h.categoryStore.ListByLanguage(langID)
	if err != nil {
		serverError(w, "list categories failed", err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

// Create adds a category, appending it after its siblings.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LanguageID  uuid.UUID  `json:"language_id"`
		Name        string     `json:"name"`
		Description *string    `json:"description"`
		ParentID    *uuid.UUID `json:"parent_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	sortOrder, err := h.categoryStore.NextSortOrder(req.LanguageID, req.ParentID)
	if err != nil {
		serverError(w, "next sort order failed", err)
		return
	}

	created, err := h.categoryStore.Create(&models.Category{
		LanguageID:  req.LanguageID,
		Name:        req.Name,
		Slug:        slug.Generate(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   sortOrder,
	})
	if err != nil {
		serverError(w, "create category failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update modifies a category's name, description or parent.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	catID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	cat, err := h.categoryStore.FindByID(catID)
	if err != nil {
		serverError(w, "load category failed", err)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req struct {
		Name        string     `json:"name"`
		Description *string    `json:"description"`
		ParentID    *uuid.UUID `json:"parent_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cat.Name = req.Name
	cat.Slug = slug.Generate(req.Name)
	cat.Description = req.Description
	cat.ParentID = req.ParentID

	if err := h.categoryStore.Update(cat); err != nil {
		serverError(w, "update category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

// Reorder applies a bulk sort-order/parent rearrangement.
func (h *Categories) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []store.ReorderItem `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	if err := h.categoryStore.Reorder(req.Items); err != nil {
		serverError(w, "reorder categories failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"reordered": true})
}

// Delete removes a category. Content references cascade; children are
// promoted to the root by the parent_id FK rule.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	catID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categoryStore.Delete(catID); err != nil {
		serverError(w, "delete category failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// queryLanguageID parses the required language query parameter.
func queryLanguageID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	langID, err := uuid.Parse(r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "language query parameter is required")
		return uuid.Nil, false
	}
	return langID, true
}
