// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workflow

import "errors"

var (
	// ErrNotEligible is returned when the acting user's roles do not grant
	// approval rights at the item's current stage.
	ErrNotEligible = errors.New("workflow: role set not eligible at this stage")

	// ErrLocked is returned when another user holds the editing session.
	ErrLocked = errors.New("workflow: item is being edited by another user")

	// ErrNotLockHolder is returned when a draft operation is attempted by a
	// user who does not hold the editing session.
	ErrNotLockHolder = errors.New("workflow: editing session held by someone else")

	// ErrUnknownStage is returned when a status value is not part of the
	// ordered review sequence.
	ErrUnknownStage = errors.New("workflow: unknown stage")

	// ErrTerminalStage is returned when a transition is requested from the
	// published stage, which has no successor.
	ErrTerminalStage = errors.New("workflow: published is terminal")

	// ErrNotAdmin is returned when a direct status assignment is attempted
	// without the Administrator or Post Admin role.
	ErrNotAdmin = errors.New("workflow: direct assignment requires an admin role")
)
