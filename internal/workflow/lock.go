// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workflow

import (
	"time"

	"github.com/google/uuid"

	"pressflow/internal/models"
)

// StartEdit acquires the editing session for actor, modeling "you must
// touch the content before approving": a reviewer with approval rights at
// the current stage enters edit mode on open instead of approving outright.
//
// Re-opening by the current holder returns the existing session unchanged.
// Returns ErrLocked if another user holds the session and ErrNotEligible
// if actor cannot approve at the item's current stage.
func StartEdit(c *models.Content, actor *models.User, now time.Time) (*models.EditingSession, error) {
	if c.Editing != nil {
		if c.Editing.EditorID == actor.ID {
			return c.Editing, nil
		}
		return nil, ErrLocked
	}

	if !CanAct(actor.Roles, c.Status).CanApprove {
		return nil, ErrNotEligible
	}

	c.Editing = &models.EditingSession{
		EditorID:    actor.ID,
		EditorEmail: actor.Email,
		StartedAt:   now,
	}
	return c.Editing, nil
}

// SaveDraft records the lock holder's in-flight changes as DraftBody,
// leaving the canonical body untouched. Only the session holder may save;
// admins write canonical content directly and never stage drafts.
func SaveDraft(c *models.Content, actor *models.User, body string, now time.Time) error {
	if c.Editing == nil || c.Editing.EditorID != actor.ID {
		return ErrNotLockHolder
	}
	c.DraftBody = &body
	c.Editing.LastEdit = &now
	return nil
}

// CancelEdit releases the editing session without touching canonical
// content. The draft, if any, is abandoned. Clearing an already-clear lock
// is a no-op.
func CancelEdit(c *models.Content) {
	c.Editing = nil
	c.DraftBody = nil
}

// ResolveVisibleBody returns the body the viewing user should see: the
// draft when the viewer holds the editing session and a draft exists,
// otherwise the canonical body. No other viewer, admins included, ever
// sees someone else's in-flight draft.
func ResolveVisibleBody(c *models.Content, viewerID uuid.UUID) string {
	if c.Editing != nil && c.Editing.EditorID == viewerID && c.DraftBody != nil {
		return *c.DraftBody
	}
	return c.Body
}
