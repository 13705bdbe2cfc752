// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workflow implements the content approval pipeline: the ordered
// review stages, the role-based permission resolver, the single-writer
// editing lock, and the approve/reject/direct-assign transition functions.
// Everything in this package is pure; persistence lives in the store layer.
package workflow

import (
	"strings"

	"pressflow/internal/models"
)

// Order is the fixed review sequence. It is the single source of truth for
// the successor relation; nothing else in the codebase encodes "next stage".
var Order = []models.Stage{
	models.StageContentReview1,
	models.StageContentReview2,
	models.StageContentReview3,
	models.StageLanguageReview,
	models.StageChiefReview,
	models.StageChiefEditorApproved,
	models.StagePublished,
}

// sendbackPrefix marks rejected statuses. The stage the item was turned
// back from is preserved after the prefix.
const sendbackPrefix = "sendback_"

// ResubmitStage is where a revised sendback item re-enters the pipeline.
const ResubmitStage = models.StageContentReview1

// InOrder reports whether s is one of the ordered review stages.
func InOrder(s models.Stage) bool {
	for _, stage := range Order {
		if stage == s {
			return true
		}
	}
	return false
}

// Next returns the single fixed successor of s. It returns ErrTerminalStage
// for published and ErrUnknownStage for anything outside the order
// (including sendback variants, which re-enter via ResubmitStage).
func Next(s models.Stage) (models.Stage, error) {
	for i, stage := range Order {
		if stage != s {
			continue
		}
		if i == len(Order)-1 {
			return "", ErrTerminalStage
		}
		return Order[i+1], nil
	}
	return "", ErrUnknownStage
}

// Sendback returns the rejected-status variant for the given stage,
// recording which stage the item was turned back from.
func Sendback(s models.Stage) models.Stage {
	return models.Stage(sendbackPrefix + string(s))
}

// SendbackOrigin returns the stage a sendback status was rejected at, and
// whether s is a sendback variant at all.
func SendbackOrigin(s models.Stage) (models.Stage, bool) {
	raw, ok := strings.CutPrefix(string(s), sendbackPrefix)
	if !ok {
		return "", false
	}
	return models.Stage(raw), true
}

// ParseStage validates a raw status string against the ordered sequence.
// Used when an admin selects a direct-assignment target.
func ParseStage(raw string) (models.Stage, error) {
	s := models.Stage(raw)
	if !InOrder(s) {
		return "", ErrUnknownStage
	}
	return s, nil
}
