// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workflow

import "pressflow/internal/models"

// Approve button labels. Chief review is the final editorial gate and
// carries a distinct label.
const (
	LabelApprove      = "Approve"
	LabelApproveFinal = "Approve Final"
)

// Decision is the permission resolver's verdict for a (role set, stage)
// pair: whether the user may approve at this stage, and the label the UI
// shows on the approve control.
type Decision struct {
	CanApprove   bool   `json:"can_approve"`
	ApproveLabel string `json:"approve_label,omitempty"`
}

// CanAct resolves approval rights for a role set at a stage. It is a pure
// table lookup with no side effects; absence of rights yields a zero
// Decision, never an error.
//
// Any of the three content-editor levels may approve any of the three
// content review stages. Administrator and Post Admin are deliberately NOT
// granted here: they bypass the ordered machine through DirectAssign, not
// through stage approval.
func CanAct(roles []models.Role, stage models.Stage) Decision {
	switch stage {
	case models.StageContentReview1, models.StageContentReview2, models.StageContentReview3:
		if hasAny(roles, models.RoleContentEditor1, models.RoleContentEditor2, models.RoleContentEditor3) {
			return Decision{CanApprove: true, ApproveLabel: LabelApprove}
		}
	case models.StageLanguageReview:
		if hasAny(roles, models.RoleLanguageEditor) {
			return Decision{CanApprove: true, ApproveLabel: LabelApprove}
		}
	case models.StageChiefReview:
		if hasAny(roles, models.RoleChiefEditor) {
			return Decision{CanApprove: true, ApproveLabel: LabelApproveFinal}
		}
	}
	return Decision{}
}

// IsOverrider reports whether the role set may set status directly,
// bypassing stage eligibility. Overriders also see the editing-lock panel
// and the full approver history.
func IsOverrider(roles []models.Role) bool {
	return hasAny(roles, models.RoleAdministrator, models.RolePostAdmin)
}

// hasAny reports whether roles contains at least one of the wanted roles.
func hasAny(roles []models.Role, wanted ...models.Role) bool {
	for _, r := range roles {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}
