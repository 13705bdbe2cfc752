// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressflow/internal/cache"
	"pressflow/internal/middleware"
	"pressflow/internal/models"
	"pressflow/internal/slug"
	"pressflow/internal/store"
	"pressflow/internal/workflow"
)

// Decision codes accepted by UpdateStatus.
const (
	decisionCodeApprove = 1
	decisionCodeReject  = 2
)

// Posts groups the content CRUD and workflow-transition handlers.
type Posts struct {
	contentStore  *store.ContentStore
	userStore     *store.UserStore
	revisionStore *store.RevisionStore
	cache         *cache.ContentCache
}

// NewPosts creates a new Posts handler group.
func NewPosts(contentStore *store.ContentStore, userStore *store.UserStore, revisionStore *store.RevisionStore, contentCache *cache.ContentCache) *Posts {
	return &Posts{
		contentStore:  contentStore,
		userStore:     userStore,
		revisionStore: revisionStore,
		cache:         contentCache,
	}
}

// List returns a page of content items of the requested type. Supports
// status, language and title-search filters.
func (p *Posts) List(w http.ResponseWriter, r *http.Request) {
	contentType := models.PostType(r.URL.Query().Get("type"))
	if !models.KnownPostType(contentType) {
		writeError(w, http.StatusBadRequest, "unknown content type")
		return
	}

	filter := store.ListFilter{
		Status: models.Stage(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}
	if raw := r.URL.Query().Get("language"); raw != "" {
		langID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid language id")
			return
		}
		filter.LanguageID = &langID
	}

	page, err := p.contentStore.ListByType(contentType, filter)
	if err != nil {
		serverError(w, "list content failed", err)
		return
	}

	// Drafts and lock details are per-item concerns; lists carry only the
	// canonical fields.
	for i := range page.Items {
		page.Items[i].DraftBody = nil
	}

	writeJSON(w, http.StatusOK, page)
}

// Get returns a single content item. The body is resolved per viewer: the
// editing-session holder sees their own draft, everyone else the canonical
// text. The response carries the viewer's approval verdict for the item's
// current stage so the client can render the right controls.
func (p *Posts) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	c.Body = workflow.ResolveVisibleBody(c, id.Data.UserID)
	c.DraftBody = nil

	writeJSON(w, http.StatusOK, map[string]any{
		"post":       c,
		"decision":   workflow.CanAct(id.Roles(), c.Status),
		"isOverride": workflow.IsOverrider(id.Roles()),
		"lockedByMe": c.LockedBy(id.Data.UserID),
	})
}

// Create inserts a new content item at the first review stage. The slug is
// derived from the title and disambiguated on collision.
func (p *Posts) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Type        models.PostType `json:"type"`
		Title       string          `json:"title"`
		Body        string          `json:"body"`
		LanguageID  uuid.UUID       `json:"language_id"`
		CategoryIDs []uuid.UUID     `json:"category_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if !models.KnownPostType(req.Type) {
		writeError(w, http.StatusBadRequest, "unknown content type")
		return
	}
	if msg := validateContent(req.Title, req.Body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s := slug.Generate(req.Title)
	taken, err := p.contentStore.SlugExists(s)
	if err != nil {
		serverError(w, "slug check failed", err)
		return
	}
	if taken {
		s = slug.Unique(req.Title, uuid.NewString()[:8])
	}

	created, err := p.contentStore.Create(&models.Content{
		Type:        req.Type,
		Title:       req.Title,
		Slug:        s,
		Body:        req.Body,
		LanguageID:  req.LanguageID,
		CategoryIDs: req.CategoryIDs,
		AuthorID:    id.Data.UserID,
	})
	if err != nil {
		serverError(w, "create content failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update writes canonical content fields. Admins may edit any item at any
// stage; the author may edit their own item, and saving a sent-back item
// re-enters it at the first review stage. Reviewers with an editing
// session use SaveDraft instead: their changes stay private until approve.
func (p *Posts) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	isAdmin := workflow.IsOverrider(id.Roles())
	isAuthor := c.AuthorID == id.Data.UserID
	if !isAdmin && !isAuthor {
		writeError(w, http.StatusForbidden, "not allowed to edit this item")
		return
	}
	if !isAdmin && c.IsLocked() && !c.LockedBy(id.Data.UserID) {
		p.lockConflict(w, c.Editing)
		return
	}

	var req struct {
		Title       string      `json:"title"`
		Body        string      `json:"body"`
		LanguageID  uuid.UUID   `json:"language_id"`
		CategoryIDs []uuid.UUID `json:"category_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateContent(req.Title, req.Body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c.Title = req.Title
	c.Body = req.Body
	if req.LanguageID != uuid.Nil {
		c.LanguageID = req.LanguageID
	}
	if req.CategoryIDs != nil {
		c.CategoryIDs = req.CategoryIDs
	}

	// An author saving a sent-back item resubmits it for review.
	if isAuthor && c.Status.IsSendback() {
		if err := workflow.Resubmit(c, time.Now()); err != nil {
			serverError(w, "resubmit failed", err)
			return
		}
	}

	if err := p.contentStore.Update(c, id.Data.UserID); err != nil {
		serverError(w, "update content failed", err)
		return
	}
	if c.IsPublished() {
		p.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, c)
}

// SaveDraft stores the editing-session holder's in-flight body without
// touching the canonical text.
func (p *Posts) SaveDraft(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	err := p.contentStore.SaveDraft(contentID, id.Data.UserID, req.Body, time.Now())
	if errors.Is(err, workflow.ErrNotLockHolder) {
		writeError(w, http.StatusConflict, "editing session not held")
		return
	}
	if err != nil {
		serverError(w, "save draft failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// StartEdit claims the single-writer editing session for the caller.
// Reviewers must hold approval rights at the item's current stage; admins
// may always enter. Returns 409 with the holder's metadata when another
// user already holds the session.
func (p *Posts) StartEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	roles := id.Roles()
	if !workflow.CanAct(roles, c.Status).CanApprove && !workflow.IsOverrider(roles) && c.AuthorID != id.Data.UserID {
		writeError(w, http.StatusForbidden, "no approval rights at this stage")
		return
	}

	actor, err := p.userStore.FindByID(id.Data.UserID)
	if err != nil || actor == nil {
		serverError(w, "editor lookup failed", err)
		return
	}

	sess, err := p.contentStore.ClaimLock(c.ID, actor, time.Now())
	if errors.Is(err, workflow.ErrLocked) {
		p.lockConflict(w, sess)
		return
	}
	if err != nil {
		serverError(w, "claim lock failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"editing": sess})
}

// CancelEdit releases the editing session and abandons the draft. The
// holder may release their own session; admins may force-release anyone's.
func (p *Posts) CancelEdit(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	if c.IsLocked() && !c.LockedBy(id.Data.UserID) && !workflow.IsOverrider(id.Roles()) {
		writeError(w, http.StatusForbidden, "editing session held by another user")
		return
	}

	if err := p.contentStore.ReleaseLock(c.ID); err != nil {
		serverError(w, "release lock failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"released": true})
}

// UpdateStatus records a reviewer's verdict: giveApproval 1 advances the
// item to the next stage, 2 sends it back to the author. An approving
// reviewer who holds the editing session has their draft promoted to
// canonical atomically with the stage change.
func (p *Posts) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		GiveApproval  int    `json:"giveApproval"`
		EditorMessage string `json:"editorMessage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if msg := validateMessage(req.EditorMessage); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	actor, err := p.userStore.FindByID(id.Data.UserID)
	if err != nil || actor == nil {
		serverError(w, "reviewer lookup failed", err)
		return
	}

	now := time.Now()
	var entry *models.Approval
	switch req.GiveApproval {
	case decisionCodeApprove:
		entry, err = workflow.Approve(c, actor, req.EditorMessage, now)
	case decisionCodeReject:
		entry, err = workflow.Reject(c, actor, req.EditorMessage, now)
	default:
		writeError(w, http.StatusBadRequest, "giveApproval must be 1 (approve) or 2 (reject)")
		return
	}
	if !p.writeTransitionError(w, c, err) {
		return
	}

	if err := p.contentStore.ApplyTransition(c, entry); err != nil {
		serverError(w, "persist transition failed", err)
		return
	}
	if c.IsPublished() {
		p.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": c.Status, "approval": entry})
}

// UpdateStatusByAdmin sets the item's status to any stage in the ordered
// sequence, bypassing stage eligibility and the reviewer log. RequireAdmin
// gates the route; the workflow core re-checks the actor's roles.
func (p *Posts) UpdateStatusByAdmin(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}
	id := middleware.IdentityFromCtx(r.Context())

	var req struct {
		GiveApproval string `json:"giveApproval"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	target, err := workflow.ParseStage(req.GiveApproval)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown target stage")
		return
	}

	actor, err := p.userStore.FindByID(id.Data.UserID)
	if err != nil || actor == nil {
		serverError(w, "admin lookup failed", err)
		return
	}

	wasPublished := c.IsPublished()
	if !p.writeTransitionError(w, c, workflow.DirectAssign(c, actor, target, time.Now())) {
		return
	}

	if err := p.contentStore.ApplyTransition(c, nil); err != nil {
		serverError(w, "persist transition failed", err)
		return
	}
	if wasPublished || c.IsPublished() {
		p.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": c.Status})
}

// Approvals returns the item's append-only reviewer log, oldest first.
func (p *Posts) Approvals(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r)
	if !ok {
		return
	}

	entries, err := p.contentStore.ListApprovals(contentID)
	if err != nil {
		serverError(w, "list approvals failed", err)
		return
	}
	if entries == nil {
		entries = []models.Approval{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"approvers": entries})
}

// Revisions returns the canonical-content snapshots taken before each
// direct update, newest first.
func (p *Posts) Revisions(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r)
	if !ok {
		return
	}

	revs, err := p.revisionStore.ListByContentID(contentID)
	if err != nil {
		serverError(w, "list revisions failed", err)
		return
	}
	if revs == nil {
		revs = []*store.Revision{}
	}
	total, err := p.revisionStore.Count(contentID)
	if err != nil {
		serverError(w, "count revisions failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"revisions": revs, "totalCount": total})
}

// Delete removes a content item. Admin-only; gated by RequireAdmin on the
// route.
func (p *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := p.loadContent(w, r)
	if !ok {
		return
	}

	if err := p.contentStore.Delete(c.ID); err != nil {
		serverError(w, "delete content failed", err)
		return
	}
	if c.IsPublished() {
		p.cache.InvalidateAll(r.Context())
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// loadContent resolves the {id} path parameter to a content item, writing
// the error response on failure.
func (p *Posts) loadContent(w http.ResponseWriter, r *http.Request) (*models.Content, bool) {
	contentID, ok := pathID(w, r)
	if !ok {
		return nil, false
	}

	c, err := p.contentStore.FindByID(contentID)
	if err != nil {
		serverError(w, "load content failed", err)
		return nil, false
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "content not found")
		return nil, false
	}
	return c, true
}

// writeTransitionError maps workflow errors to HTTP responses. Returns
// true when err was nil and the caller may proceed.
func (p *Posts) writeTransitionError(w http.ResponseWriter, c *models.Content, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, workflow.ErrLocked):
		p.lockConflict(w, c.Editing)
	case errors.Is(err, workflow.ErrNotEligible):
		writeError(w, http.StatusForbidden, "no approval rights at this stage")
	case errors.Is(err, workflow.ErrNotAdmin):
		writeError(w, http.StatusForbidden, "administrator access required")
	case errors.Is(err, workflow.ErrTerminalStage):
		writeError(w, http.StatusConflict, "content is already published")
	case errors.Is(err, workflow.ErrUnknownStage):
		writeError(w, http.StatusConflict, "content is not in a reviewable stage")
	default:
		serverError(w, "transition failed", err)
	}
	return false
}

// lockConflict reports 409 with the holding editor's metadata so the
// client can show who is editing and since when.
func (p *Posts) lockConflict(w http.ResponseWriter, sess *models.EditingSession) {
	writeJSON(w, http.StatusConflict, map[string]any{
		"error":   "content is being edited by another user",
		"editing": sess,
	})
}

// pathID parses the {id} chi path parameter.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid content id")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
