// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pressflow/internal/models"
)

// Revision is a snapshot of a content item's canonical state before an
// edit, written by ContentStore.Update. It enables auditing what a piece
// looked like at each stage it passed through.
type Revision struct {
	ID        uuid.UUID    `json:"id"`
	ContentID uuid.UUID    `json:"content_id"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Status    models.Stage `json:"status"`
	CreatedBy uuid.UUID    `json:"created_by"`
	CreatedAt time.Time    `json:"created_at"`
}

// revisionColumns lists all columns for content_revisions SELECTs.
const revisionColumns = `id, content_id, title, body, status, created_by, created_at`

// RevisionStore provides read access to content revision snapshots.
type RevisionStore struct {
	db *sql.DB
}

// NewRevisionStore creates a new RevisionStore backed by the given database.
func NewRevisionStore(db *sql.DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// scanRevision scans a single content_revisions row.
func scanRevision(scanner interface{ Scan(...any) error }) (*Revision, error) {
	var r Revision
	err := scanner.Scan(&r.ID, &r.ContentID, &r.Title, &r.Body, &r.Status, &r.CreatedBy, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByContentID returns all revisions for a content item, newest first.
func (s *RevisionStore) ListByContentID(contentID uuid.UUID) ([]*Revision, error) {
	rows, err := s.db.Query(`
		SELECT `+revisionColumns+`
		FROM content_revisions
		WHERE content_id = $1
		ORDER BY created_at DESC
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// FindByID returns a single revision by its ID. Returns nil if not found.
func (s *RevisionStore) FindByID(id uuid.UUID) (*Revision, error) {
	row := s.db.QueryRow(`SELECT `+revisionColumns+` FROM content_revisions WHERE id = $1`, id)
	r, err := scanRevision(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find revision by id: %w", err)
	}
	return r, nil
}

// Count returns the number of revisions for a content item.
func (s *RevisionStore) Count(contentID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM content_revisions WHERE content_id = $1
	`, contentID).Scan(&count)
	return count, err
}
