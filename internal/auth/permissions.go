package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/domain"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// Action identifies a permission-gated operation.
type Action string

const (
	ActionTicketCreate  Action = "ticket:create"
	ActionTicketListAll Action = "ticket:list_all"
	ActionTicketRespond Action = "ticket:respond"
	ActionUserManage    Action = "user:manage"
)

// permissionTable is the full authorization rule set. Two roles, no
// hierarchy; keep every rule here so the set stays auditable in one place.
var permissionTable = map[domain.Role]map[Action]bool{
	domain.RoleUser: {
		ActionTicketCreate: true,
	},
	domain.RoleAdmin: {
		ActionTicketListAll: true,
		ActionTicketRespond: true,
		ActionUserManage:    true,
	},
}

// Can reports whether the role is allowed to perform the action.
func Can(role domain.Role, action Action) bool {
	return permissionTable[role][action]
}

// RequirePermission rejects callers whose role lacks the action.
func RequirePermission(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Can(principal.Role, action) {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}
