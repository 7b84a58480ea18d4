package access

import (
	"testing"

	"robfu/internal/models"
)

func TestEstimatePermissionsPerStage(t *testing.T) {
	cases := []struct {
		stage models.ProjectStatus
		role  models.UserRole
		want  bool
	}{
		{models.StatusDesign, models.RoleDesigner, true},
		{models.StatusDesign, models.RoleWarehouse, false},
		{models.StatusValidation, models.RoleManufacturingChief, true},
		{models.StatusValidation, models.RoleDesigner, false},
		{models.StatusPurchasing, models.RolePurchasing, true},
		{models.StatusWarehouse, models.RolePurchasing, true},
		{models.StatusWarehouse, models.RoleWarehouse, true},
		{models.StatusWarehouse, models.RoleDesigner, false},
		{models.StatusManufacturing, models.RoleDesigner, true},
	}
	for _, tc := range cases {
		if got := Allowed(tc.stage, ActionEstimate, tc.role); got != tc.want {
			t.Fatalf("Allowed(%s, estimate, %s) = %v; want %v", tc.stage, tc.role, got, tc.want)
		}
	}
}

func TestAdvancePermissionsPerStage(t *testing.T) {
	// purchasing may co-estimate the warehouse stage but never advance it
	if Allowed(models.StatusWarehouse, ActionAdvance, models.RolePurchasing) {
		t.Fatalf("purchasing must not advance the warehouse stage")
	}
	if !Allowed(models.StatusWarehouse, ActionAdvance, models.RoleWarehouse) {
		t.Fatalf("warehouse must advance its own stage")
	}
}

func TestSuperadminBypassesEveryTable(t *testing.T) {
	for _, action := range []Action{ActionEstimate, ActionAdvance, ActionConfirm} {
		if !Allowed(models.StatusManufacturing, action, models.RoleSuperadmin) {
			t.Fatalf("superadmin denied %s", action)
		}
	}
}

func TestUnknownActionDenied(t *testing.T) {
	if Allowed(models.StatusDesign, Action("delete"), models.RoleDesigner) {
		t.Fatalf("unknown actions must be denied")
	}
}

func TestResponsibleRole(t *testing.T) {
	role, ok := ResponsibleRole(models.StatusPurchasing)
	if !ok || role != models.RolePurchasing {
		t.Fatalf("ResponsibleRole(purchasing) = %s, %v", role, ok)
	}
	if _, ok := ResponsibleRole(models.StatusCompleted); ok {
		t.Fatalf("completed has no responsible role")
	}
}
