// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workflow

import (
	"time"

	"github.com/google/uuid"

	"pressflow/internal/models"
)

// Approve advances the item to the fixed successor of its current stage.
// It requires approval rights at the current stage and an editing session
// that is either absent or held by the actor. If the actor had unsaved
// draft changes, the draft is promoted to the canonical body atomically
// with the stage advance. One approve entry is appended to the reviewer
// log and the editing session is cleared.
//
// The returned Approval is the appended log entry; callers persist it
// together with the item in one transaction.
func Approve(c *models.Content, actor *models.User, message string, now time.Time) (*models.Approval, error) {
	if c.Editing != nil && c.Editing.EditorID != actor.ID {
		return nil, ErrLocked
	}
	if !CanAct(actor.Roles, c.Status).CanApprove {
		return nil, ErrNotEligible
	}

	next, err := Next(c.Status)
	if err != nil {
		return nil, err
	}

	// Promote the reviewer's draft before advancing.
	if c.LockedBy(actor.ID) && c.DraftBody != nil {
		c.Body = *c.DraftBody
	}

	entry := appendEntry(c, actor, models.DecisionApprove, message, now)
	c.Status = next
	if next == models.StagePublished && c.PublishedAt == nil {
		c.PublishedAt = &now
	}
	CancelEdit(c)
	c.UpdatedAt = now
	return entry, nil
}

// Reject turns the item back to the author for revision. Eligibility is
// the same as for Approve. The status becomes the sendback variant of the
// current stage, a reject entry carrying the reviewer's message is
// appended, and the editing session is cleared (the draft is abandoned,
// canonical content survives).
func Reject(c *models.Content, actor *models.User, message string, now time.Time) (*models.Approval, error) {
	if c.Editing != nil && c.Editing.EditorID != actor.ID {
		return nil, ErrLocked
	}
	if !CanAct(actor.Roles, c.Status).CanApprove {
		return nil, ErrNotEligible
	}
	if !InOrder(c.Status) {
		return nil, ErrUnknownStage
	}

	entry := appendEntry(c, actor, models.DecisionReject, message, now)
	c.Status = Sendback(c.Status)
	CancelEdit(c)
	c.UpdatedAt = now
	return entry, nil
}

// DirectAssign sets the status to any stage in the ordered sequence,
// bypassing stage eligibility and the reviewer log. Only Administrator and
// Post Admin may call this; it is an override escape hatch, not a normal
// transition. Any active editing session is force-cleared.
func DirectAssign(c *models.Content, actor *models.User, target models.Stage, now time.Time) error {
	if !actor.IsAdmin() {
		return ErrNotAdmin
	}
	if !InOrder(target) {
		return ErrUnknownStage
	}

	c.Status = target
	if target == models.StagePublished && c.PublishedAt == nil {
		c.PublishedAt = &now
	}
	CancelEdit(c)
	c.UpdatedAt = now
	return nil
}

// Resubmit re-enters a sendback item into the pipeline after the author's
// revision. Returns ErrUnknownStage if the item is not in a sendback state.
func Resubmit(c *models.Content, now time.Time) error {
	if !c.Status.IsSendback() {
		return ErrUnknownStage
	}
	c.Status = ResubmitStage
	c.UpdatedAt = now
	return nil
}

// appendEntry appends a reviewer-log entry for the item's current stage.
// The log is strictly append-only; entries are never deduplicated or removed.
func appendEntry(c *models.Content, actor *models.User, decision models.Decision, message string, now time.Time) *models.Approval {
	entry := models.Approval{
		ID:            uuid.New(),
		ContentID:     c.ID,
		ReviewerID:    actor.ID,
		ReviewerEmail: actor.Email,
		Stage:         c.Status,
		Decision:      decision,
		Message:       message,
		CreatedAt:     now,
	}
	c.Approvals = append(c.Approvals, entry)
	return &entry
}
