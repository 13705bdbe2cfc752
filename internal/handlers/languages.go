// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressflow/internal/models"
	"pressflow/internal/store"
)

// Languages groups the locale handlers.
type Languages struct {
	languageStore *store.LanguageStore
}

// NewLanguages creates a new Languages handler group.
func NewLanguages(languageStore *store.LanguageStore) *Languages {
	return &Languages{languageStore: languageStore}
}

// List returns all configured languages.
func (h *Languages) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languageStore.List()
	if err != nil {
		serverError(w, "list languages failed", err)
		return
	}
	if langs == nil {
		langs = []models.Language{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"languages": langs})
}

// Create adds a language.
func (h *Languages) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateLanguage(req.Code, req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.languageStore.FindByCode(req.Code)
	if err != nil {
		serverError(w, "language lookup failed", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "language code already exists")
		return
	}

	created, err := h.languageStore.Create(req.Code, req.Name)
	if err != nil {
		serverError(w, "create language failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update renames a language.
func (h *Languages) Update(w http.ResponseWriter, r *http.Request) {
	langID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language id")
		return
	}

	lang, err := h.languageStore.FindByID(langID)
	if err != nil {
		serverError(w, "load language failed", err)
		return
	}
	if lang == nil {
		writeError(w, http.StatusNotFound, "language not found")
		return
	}

	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateLanguage(req.Code, req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	lang.Code = req.Code
	lang.Name = req.Name
	if err := h.languageStore.Update(lang); err != nil {
		serverError(w, "update language failed", err)
		return
	}

	writeJSON(w, http.StatusOK, lang)
}

// Delete removes a language and, by cascade, its categories and content.
func (h *Languages) Delete(w http.ResponseWriter, r *http.Request) {
	langID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language id")
		return
	}

	if err := h.languageStore.Delete(langID); err != nil {
		serverError(w, "delete language failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
