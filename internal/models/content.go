// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostType distinguishes the content formats sharing the unified content table.
type PostType string

const (
	PostTypeArticle PostType = "article"
	PostTypeBlog    PostType = "blog"
	PostTypeVideo   PostType = "video"
	PostTypePodcast PostType = "podcast"
	PostTypeEbook   PostType = "ebook"
)

// KnownPostType reports whether t is one of the supported content formats.
func KnownPostType(t PostType) bool {
	switch t {
	case PostTypeArticle, PostTypeBlog, PostTypeVideo, PostTypePodcast, PostTypeEbook:
		return true
	}
	return false
}

// Stage is a content item's position in the review pipeline. The ordered
// sequence and successor relation live in the workflow package; these are
// the status values as stored.
type Stage string

const (
	StageContentReview1      Stage = "content_review_1"
	StageContentReview2      Stage = "content_review_2"
	StageContentReview3      Stage = "content_review_3"
	StageLanguageReview      Stage = "language_review"
	StageChiefReview         Stage = "chief_review"
	StageChiefEditorApproved Stage = "chief_editor_approved"
	StagePublished           Stage = "published"
)

// IsSendback reports whether the stage is a rejected/"send back" variant.
// Sendback statuses carry the marker in the status string itself.
func (s Stage) IsSendback() bool {
	return strings.Contains(string(s), "sendback")
}

// Decision is the verdict recorded in an approval log entry.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Approval is one entry in a content item's append-only reviewer log.
// One entry is written per review stage passed (or sent back).
type Approval struct {
	ID            uuid.UUID `json:"id"`
	ContentID     uuid.UUID `json:"content_id"`
	ReviewerID    uuid.UUID `json:"reviewer_id"`
	ReviewerEmail string    `json:"reviewer_email"`
	Stage         Stage     `json:"stage"`
	Decision      Decision  `json:"decision"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

// EditingSession is the single-writer advisory lock on a content item.
// At most one session exists per item at any time.
type EditingSession struct {
	EditorID    uuid.UUID  `json:"editor_id"`
	EditorEmail string     `json:"editor_email"`
	StartedAt   time.Time  `json:"started_at"`
	LastEdit    *time.Time `json:"last_edit,omitempty"`
}

// Content represents an article, blog, video, podcast or e-book moving
// through the review pipeline. Body holds the canonical serialized
// rich-text document; DraftBody holds a reviewer's in-flight changes and
// is visible only to the editing-session holder.
type Content struct {
	ID          uuid.UUID       `json:"id"`
	Type        PostType        `json:"type"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Body        string          `json:"body"`
	DraftBody   *string         `json:"draft_body,omitempty"`
	Status      Stage           `json:"status"`
	LanguageID  uuid.UUID       `json:"language_id"`
	CategoryIDs []uuid.UUID     `json:"category_ids,omitempty"`
	AuthorID    uuid.UUID       `json:"author_id"`
	Editing     *EditingSession `json:"editing_session,omitempty"`
	Approvals   []Approval      `json:"approvers,omitempty"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsPublished returns true if the content item has reached the terminal
// published stage.
func (c *Content) IsPublished() bool {
	return c.Status == StagePublished
}

// IsLocked reports whether an editing session is active on the item.
func (c *Content) IsLocked() bool {
	return c.Editing != nil
}

// LockedBy reports whether the given user currently holds the editing session.
func (c *Content) LockedBy(userID uuid.UUID) bool {
	return c.Editing != nil && c.Editing.EditorID == userID
}
