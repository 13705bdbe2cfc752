// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Language is a content locale. Every content item and category is scoped
// to exactly one language.
type Language struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"` // BCP 47-ish short code, e.g. "en", "ar"
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category organizes content into a two-level parent/child tree, scoped
// by language. Children and Depth are populated when building trees, not
// stored columns.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	LanguageID  uuid.UUID  `json:"language_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Populated by tree queries, not persisted.
	Children  []Category `json:"children,omitempty"`
	Depth     int        `json:"depth,omitempty"`
	PostCount int        `json:"post_count,omitempty"`
}
