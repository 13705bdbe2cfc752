package workflow

import (
	"testing"

	"pressflow/internal/models"
)

// TestCanActRuleTable exercises the full permission table: for pairs in
// the table CanApprove must be true with the exact label; for everything
// else it must be false.
func TestCanActRuleTable(t *testing.T) {
	tests := []struct {
		name      string
		roles     []models.Role
		stage     models.Stage
		want      bool
		wantLabel string
	}{
		{name: "editor L1 at review 1", roles: []models.Role{models.RoleContentEditor1}, stage: models.StageContentReview1, want: true, wantLabel: LabelApprove},
		{name: "editor L1 at review 2", roles: []models.Role{models.RoleContentEditor1}, stage: models.StageContentReview2, want: true, wantLabel: LabelApprove},
		{name: "editor L2 at review 3", roles: []models.Role{models.RoleContentEditor2}, stage: models.StageContentReview3, want: true, wantLabel: LabelApprove},
		{name: "editor L3 at review 1", roles: []models.Role{models.RoleContentEditor3}, stage: models.StageContentReview1, want: true, wantLabel: LabelApprove},
		{name: "language editor at language review", roles: []models.Role{models.RoleLanguageEditor}, stage: models.StageLanguageReview, want: true, wantLabel: LabelApprove},
		{name: "chief editor at chief review", roles: []models.Role{models.RoleChiefEditor}, stage: models.StageChiefReview, want: true, wantLabel: LabelApproveFinal},

		{name: "editor L1 at language review", roles: []models.Role{models.RoleContentEditor1}, stage: models.StageLanguageReview, want: false},
		{name: "language editor at review 1", roles: []models.Role{models.RoleLanguageEditor}, stage: models.StageContentReview1, want: false},
		{name: "chief editor at review 1", roles: []models.Role{models.RoleChiefEditor}, stage: models.StageContentReview1, want: false},
		{name: "chief editor at language review", roles: []models.Role{models.RoleChiefEditor}, stage: models.StageLanguageReview, want: false},
		{name: "author anywhere", roles: []models.Role{models.RoleAuthor}, stage: models.StageContentReview1, want: false},
		{name: "content writer anywhere", roles: []models.Role{models.RoleContentWriter}, stage: models.StageContentReview2, want: false},

		// Administrator and Post Admin bypass via direct assignment, so the
		// stage table itself never grants them approval.
		{name: "administrator at chief review", roles: []models.Role{models.RoleAdministrator}, stage: models.StageChiefReview, want: false},
		{name: "post admin at review 1", roles: []models.Role{models.RolePostAdmin}, stage: models.StageContentReview1, want: false},

		{name: "no roles", roles: nil, stage: models.StageContentReview1, want: false},
		{name: "approved stage has no approver", roles: []models.Role{models.RoleChiefEditor}, stage: models.StageChiefEditorApproved, want: false},
		{name: "published stage has no approver", roles: []models.Role{models.RoleContentEditor1}, stage: models.StagePublished, want: false},
		{name: "sendback stage has no approver", roles: []models.Role{models.RoleContentEditor1}, stage: Sendback(models.StageContentReview1), want: false},

		// Multi-role sets: any qualifying role suffices.
		{name: "author plus editor L2", roles: []models.Role{models.RoleAuthor, models.RoleContentEditor2}, stage: models.StageContentReview3, want: true, wantLabel: LabelApprove},
		{name: "admin plus chief editor", roles: []models.Role{models.RoleAdministrator, models.RoleChiefEditor}, stage: models.StageChiefReview, want: true, wantLabel: LabelApproveFinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAct(tt.roles, tt.stage)
			if got.CanApprove != tt.want {
				t.Errorf("CanAct(%v, %q).CanApprove = %v, want %v", tt.roles, tt.stage, got.CanApprove, tt.want)
			}
			if got.ApproveLabel != tt.wantLabel {
				t.Errorf("CanAct(%v, %q).ApproveLabel = %q, want %q", tt.roles, tt.stage, got.ApproveLabel, tt.wantLabel)
			}
		})
	}
}

// TestIsOverrider verifies which role sets may bypass the stage machine.
func TestIsOverrider(t *testing.T) {
	tests := []struct {
		name  string
		roles []models.Role
		want  bool
	}{
		{name: "administrator", roles: []models.Role{models.RoleAdministrator}, want: true},
		{name: "post admin", roles: []models.Role{models.RolePostAdmin}, want: true},
		{name: "author plus post admin", roles: []models.Role{models.RoleAuthor, models.RolePostAdmin}, want: true},
		{name: "chief editor", roles: []models.Role{models.RoleChiefEditor}, want: false},
		{name: "all editor levels", roles: []models.Role{models.RoleContentEditor1, models.RoleContentEditor2, models.RoleContentEditor3}, want: false},
		{name: "empty", roles: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverrider(tt.roles); got != tt.want {
				t.Errorf("IsOverrider(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}
