// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressflow/internal/models"
	"pressflow/internal/workflow"
)

// contentColumns lists all columns for content SELECTs.
const contentColumns = `id, type, title, slug, body, draft_body, status, language_id,
	author_id, editor_id, editor_email, editing_started_at, last_edit_at,
	published_at, created_at, updated_at`

// ContentStore handles all content-related database operations. It is the
// persistence side of the approval workflow: conditional UPDATEs on the
// editor columns make the advisory editing lock authoritative here.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// ListFilter narrows and pages ListByType results.
type ListFilter struct {
	Status     models.Stage
	LanguageID *uuid.UUID
	Search     string
	Page       int
	Limit      int
}

// Page is the pagination envelope returned to list consumers.
type Page struct {
	Items       []models.Content `json:"items"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	TotalCount  int              `json:"totalCount"`
}

// scanContent scans a single content row, assembling the editing session
// from its nullable columns.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	c := &models.Content{}
	var (
		editorID    *uuid.UUID
		editorEmail *string
		startedAt   *time.Time
		lastEdit    *time.Time
	)
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.DraftBody, &c.Status,
		&c.LanguageID, &c.AuthorID, &editorID, &editorEmail, &startedAt,
		&lastEdit, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if editorID != nil && startedAt != nil {
		c.Editing = &models.EditingSession{
			EditorID:  *editorID,
			StartedAt: *startedAt,
			LastEdit:  lastEdit,
		}
		if editorEmail != nil {
			c.Editing.EditorEmail = *editorEmail
		}
	}
	return c, nil
}

// ListByType returns a page of content items of the given type, newest
// first, with optional status/language/title filters.
func (s *ContentStore) ListByType(contentType models.PostType, filter ListFilter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	where := []string{"type = $1"}
	args := []any{contentType}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.LanguageID != nil {
		args = append(args, *filter.LanguageID)
		where = append(where, fmt.Sprintf("language_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM content WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count content: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM content
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, contentColumns, cond, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, fmt.Errorf("list content by type: %w", err)
	}
	defer rows.Close()

	page := &Page{
		Items:       []models.Content{},
		CurrentPage: filter.Page,
		TotalCount:  total,
		TotalPages:  (total + filter.Limit - 1) / filter.Limit,
	}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		page.Items = append(page.Items, *c)
	}
	return page, rows.Err()
}

// FindByID retrieves a content item with its approver log and category
// references loaded. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}

	if c.Approvals, err = s.ListApprovals(id); err != nil {
		return nil, err
	}
	if c.CategoryIDs, err = s.listCategoryIDs(id); err != nil {
		return nil, err
	}
	return c, nil
}

// FindPublishedBySlug retrieves a published content item by slug. Used by
// the public read surface.
func (s *ContentStore) FindPublishedBySlug(slug string) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+` FROM content WHERE slug = $1 AND status = 'published'
	`, slug)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published by slug: %w", err)
	}
	return c, nil
}

// ListPublishedByType returns published items of the given type, newest
// published first.
func (s *ContentStore) ListPublishedByType(contentType models.PostType, page, limit int) (*Page, error) {
	filter := ListFilter{Status: models.StagePublished, Page: page, Limit: limit}
	return s.ListByType(contentType, filter)
}

// Create inserts a new content item and its category references, returning
// the stored row.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if c.Status == "" {
		c.Status = workflow.Order[0]
	}

	result, err := scanContent(tx.QueryRow(`
		INSERT INTO content (type, title, slug, body, status, language_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Slug, c.Body, c.Status, c.LanguageID, c.AuthorID,
	))
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}

	if err := replaceCategories(tx, result.ID, c.CategoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create content: %w", err)
	}
	result.CategoryIDs = c.CategoryIDs
	return result, nil
}

// Update writes canonical content fields (title, slug, body, language,
// categories, status) in one transaction, snapshotting the previous
// canonical state into content_revisions first.
func (s *ContentStore) Update(c *models.Content, updatedBy uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO content_revisions (content_id, title, body, status, created_by)
		SELECT id, title, body, status, $2 FROM content WHERE id = $1
	`, c.ID, updatedBy); err != nil {
		return fmt.Errorf("snapshot revision: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE content SET
			title = $1, slug = $2, body = $3, status = $4, language_id = $5,
			published_at = $6, updated_at = NOW()
		WHERE id = $7
	`, c.Title, c.Slug, c.Body, c.Status, c.LanguageID, c.PublishedAt, c.ID); err != nil {
		return fmt.Errorf("update content: %w", err)
	}

	if err := replaceCategories(tx, c.ID, c.CategoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// ClaimLock acquires the editing session for the given editor using a
// conditional UPDATE, making this store the lock authority. If another
// editor holds the session, the row is untouched and workflow.ErrLocked is
// returned together with the holder's read-only metadata. Re-claiming by
// the current holder keeps the original start time.
func (s *ContentStore) ClaimLock(id uuid.UUID, editor *models.User, now time.Time) (*models.EditingSession, error) {
	row := s.db.QueryRow(`
		UPDATE content SET
			editor_id = $2,
			editor_email = $3,
			editing_started_at = CASE WHEN editor_id IS NULL THEN $4 ELSE editing_started_at END,
			updated_at = NOW()
		WHERE id = $1 AND (editor_id IS NULL OR editor_id = $2)
		RETURNING editor_id, editor_email, editing_started_at, last_edit_at
	`, id, editor.ID, editor.Email, now)

	sess := &models.EditingSession{}
	err := row.Scan(&sess.EditorID, &sess.EditorEmail, &sess.StartedAt, &sess.LastEdit)
	if err == sql.ErrNoRows {
		holder, herr := s.lockMetadata(id)
		if herr != nil {
			return nil, herr
		}
		return holder, workflow.ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("claim lock: %w", err)
	}
	return sess, nil
}

// SaveDraft stores the holder's in-flight body as draft_body. The UPDATE
// is conditional on the session being held by editorID; anyone else gets
// workflow.ErrNotLockHolder regardless of role.
func (s *ContentStore) SaveDraft(id, editorID uuid.UUID, draft string, now time.Time) error {
	res, err := s.db.Exec(`
		UPDATE content SET draft_body = $3, last_edit_at = $4, updated_at = NOW()
		WHERE id = $1 AND editor_id = $2
	`, id, editorID, draft, now)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save draft rows: %w", err)
	}
	if n == 0 {
		return workflow.ErrNotLockHolder
	}
	return nil
}

// ReleaseLock clears the editing session and abandons any draft. Used for
// the holder's cancel, for admin force-override, and after transitions.
func (s *ContentStore) ReleaseLock(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE content SET
			editor_id = NULL, editor_email = NULL, editing_started_at = NULL,
			last_edit_at = NULL, draft_body = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// ApplyTransition persists the outcome of a workflow transition: the new
// status, promoted body, cleared lock columns, and, for approve/reject,
// the appended reviewer-log entry, all in one transaction.
func (s *ContentStore) ApplyTransition(c *models.Content, entry *models.Approval) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE content SET
			title = $1, body = $2, draft_body = NULL, status = $3,
			editor_id = NULL, editor_email = NULL, editing_started_at = NULL,
			last_edit_at = NULL, published_at = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Title, c.Body, c.Status, c.PublishedAt, c.ID); err != nil {
		return fmt.Errorf("apply transition: %w", err)
	}

	if len(c.CategoryIDs) > 0 {
		if err := replaceCategories(tx, c.ID, c.CategoryIDs); err != nil {
			return err
		}
	}

	if entry != nil {
		if _, err := tx.Exec(`
			INSERT INTO approvals (id, content_id, reviewer_id, reviewer_email, stage, decision, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, entry.ID, entry.ContentID, entry.ReviewerID, entry.ReviewerEmail,
			entry.Stage, entry.Decision, entry.Message, entry.CreatedAt); err != nil {
			return fmt.Errorf("append approval: %w", err)
		}
	}

	return tx.Commit()
}

// ListApprovals returns the append-only reviewer log for a content item,
// oldest entry first. The log is rebuilt from this table on every load.
func (s *ContentStore) ListApprovals(contentID uuid.UUID) ([]models.Approval, error) {
	rows, err := s.db.Query(`
		SELECT id, content_id, reviewer_id, reviewer_email, stage, decision, message, created_at
		FROM approvals
		WHERE content_id = $1
		ORDER BY created_at ASC
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	var entries []models.Approval
	for rows.Next() {
		var a models.Approval
		if err := rows.Scan(
			&a.ID, &a.ContentID, &a.ReviewerID, &a.ReviewerEmail,
			&a.Stage, &a.Decision, &a.Message, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// Delete removes a content item by ID. Approvals, revisions and category
// references cascade. Deletion is an administrative action outside the
// workflow itself.
func (s *ContentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// SlugExists reports whether a slug is already taken.
func (s *ContentStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM content WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// lockMetadata loads the current editing-session columns for an item.
func (s *ContentStore) lockMetadata(id uuid.UUID) (*models.EditingSession, error) {
	var (
		editorID    *uuid.UUID
		editorEmail *string
		startedAt   *time.Time
		lastEdit    *time.Time
	)
	err := s.db.QueryRow(`
		SELECT editor_id, editor_email, editing_started_at, last_edit_at
		FROM content WHERE id = $1
	`, id).Scan(&editorID, &editorEmail, &startedAt, &lastEdit)
	if err != nil {
		return nil, fmt.Errorf("lock metadata: %w", err)
	}
	if editorID == nil || startedAt == nil {
		return nil, nil
	}
	sess := &models.EditingSession{EditorID: *editorID, StartedAt: *startedAt, LastEdit: lastEdit}
	if editorEmail != nil {
		sess.EditorEmail = *editorEmail
	}
	return sess, nil
}

// listCategoryIDs returns the ordered category references for an item.
func (s *ContentStore) listCategoryIDs(contentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		SELECT category_id FROM content_categories
		WHERE content_id = $1 ORDER BY sort_order
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list content categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan content category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// replaceCategories rewrites the content_categories rows for an item,
// preserving the caller's ordering.
func replaceCategories(tx *sql.Tx, contentID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM content_categories WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear content categories: %w", err)
	}
	for i, catID := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO content_categories (content_id, category_id, sort_order)
			VALUES ($1, $2, $3)
		`, contentID, catID, i); err != nil {
			return fmt.Errorf("link category %s: %w", catID, err)
		}
	}
	return nil
}
