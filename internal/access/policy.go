// Package access is the static role policy for state-changing pipeline
// operations. Read-only queries are never gated here: all authenticated
// roles may read all projects and studies.
package access

import "robfu/internal/models"

// Action is a state-changing pipeline operation.
type Action string

const (
	ActionEstimate Action = "estimate"
	ActionAdvance  Action = "advance"
	ActionConfirm  Action = "confirm_materials"
)

// estimateRoles: who may set the duration estimate of each stage. The
// warehouse stage admits purchasing as well, since purchasing often books
// the reception window.
var estimateRoles = map[models.ProjectStatus][]models.UserRole{
	models.StatusDesign:        {models.RoleDesigner},
	models.StatusValidation:    {models.RoleManufacturingChief},
	models.StatusPurchasing:    {models.RolePurchasing},
	models.StatusWarehouse:     {models.RolePurchasing, models.RoleWarehouse},
	models.StatusManufacturing: {models.RoleDesigner},
}

// advanceRoles: the responsible role of each stage, the only one allowed to
// advance or complete it.
var advanceRoles = map[models.ProjectStatus][]models.UserRole{
	models.StatusDesign:        {models.RoleDesigner},
	models.StatusValidation:    {models.RoleManufacturingChief},
	models.StatusPurchasing:    {models.RolePurchasing},
	models.StatusWarehouse:     {models.RoleWarehouse},
	models.StatusManufacturing: {models.RoleDesigner},
}

var confirmRoles = map[models.ProjectStatus][]models.UserRole{
	models.StatusWarehouse: {models.RoleWarehouse},
}

// Allowed reports whether role may perform action on the given stage.
// Superadmins are allowed everywhere.
func Allowed(stage models.ProjectStatus, action Action, role models.UserRole) bool {
	if role == models.RoleSuperadmin {
		return true
	}

	var table map[models.ProjectStatus][]models.UserRole
	switch action {
	case ActionEstimate:
		table = estimateRoles
	case ActionAdvance:
		table = advanceRoles
	case ActionConfirm:
		table = confirmRoles
	default:
		return false
	}

	for _, r := range table[stage] {
		if r == role {
			return true
		}
	}
	return false
}

// ResponsibleRole returns the role in charge of a stage, used to pick the
// recipients of stage-advance notifications.
func ResponsibleRole(stage models.ProjectStatus) (models.UserRole, bool) {
	roles, ok := advanceRoles[stage]
	if !ok || len(roles) == 0 {
		return "", false
	}
	return roles[0], true
}
