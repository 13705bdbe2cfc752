// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pressflow/internal/cache"
	"pressflow/internal/markdown"
	"pressflow/internal/models"
	"pressflow/internal/store"
)

// Public serves the unauthenticated read surface: published content only,
// rendered to HTML and cached in Valkey. Nothing in review is ever visible
// here, drafts included.
type Public struct {
	contentStore *store.ContentStore
	cache        *cache.ContentCache
}

// NewPublic creates a new Public handler group.
func NewPublic(contentStore *store.ContentStore, contentCache *cache.ContentCache) *Public {
	return &Public{contentStore: contentStore, cache: contentCache}
}

// ListPublished returns a page of published items of the given type.
func (h *Public) ListPublished(w http.ResponseWriter, r *http.Request) {
	contentType := models.PostType(chi.URLParam(r, "type"))
	if !models.KnownPostType(contentType) {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}
	page := queryInt(r, "page", 1)

	key := cache.Key("list", string(contentType), strconv.Itoa(page))
	if payload := h.cache.Get(r.Context(), key); payload != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	result, err := h.contentStore.ListPublishedByType(contentType, page, 20)
	if err != nil {
		serverError(w, "list published failed", err)
		return
	}
	for i := range result.Items {
		result.Items[i].DraftBody = nil
		result.Items[i].Editing = nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		serverError(w, "encode published list failed", err)
		return
	}
	h.cache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// GetPublished returns one published item by slug with the body rendered
// from markdown to HTML.
func (h *Public) GetPublished(w http.ResponseWriter, r *http.Request) {
	contentType := models.PostType(chi.URLParam(r, "type"))
	itemSlug := chi.URLParam(r, "slug")
	if !models.KnownPostType(contentType) {
		writeError(w, http.StatusNotFound, "unknown content type")
		return
	}

	key := cache.Key(string(contentType), itemSlug)
	if payload := h.cache.Get(r.Context(), key); payload != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	c, err := h.contentStore.FindPublishedBySlug(itemSlug)
	if err != nil {
		serverError(w, "load published failed", err)
		return
	}
	if c == nil || c.Type != contentType {
		writeError(w, http.StatusNotFound, "content not found")
		return
	}

	html, err := markdown.ToHTML(c.Body)
	if err != nil {
		serverError(w, "render content failed", err)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"id":           c.ID,
		"type":         c.Type,
		"title":        c.Title,
		"slug":         c.Slug,
		"html":         html,
		"published_at": c.PublishedAt,
	})
	if err != nil {
		serverError(w, "encode published failed", err)
		return
	}
	h.cache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
