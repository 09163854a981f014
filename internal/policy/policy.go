// Package policy holds the pure authorization decisions for the
// approval workflow. Every function is evaluated fresh against the
// actor and request it is handed; nothing here touches the store or
// caches a grant.
package policy

import "github.com/investflow-dev/investflow/internal/models"

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionEscalate Action = "escalate"
)

type View string

const (
	ViewMine      View = "my-requests"
	ViewManaged   View = "managed-requests"
	ViewEscalated View = "escalated-requests"
	ViewAll       View = "all"
)

// IsManagerOf reports whether actor is the live direct manager of
// owner. A dangling link (actor no longer holds ROLE_MANAGER) counts
// as no relationship.
func IsManagerOf(actor models.User, owner models.User) bool {
	if actor.Role != models.RoleManager {
		return false
	}

	return owner.ManagerID != nil && *owner.ManagerID == actor.ID
}

// ValidTransition reports whether action applies to a request in the
// given status, independent of who is asking.
func ValidTransition(status string, action Action) bool {
	switch action {
	case ActionApprove, ActionReject:
		return status == models.StatusPending || status == models.StatusEscalated
	case ActionEscalate:
		return status == models.StatusPending
	default:
		return false
	}
}

// CanModerate reports whether actor may perform action on request.
// Managers act only on PENDING requests of direct subordinates; once a
// request is ESCALATED the decision belongs exclusively to admins.
func CanModerate(actor models.User, request models.InvestmentRequest, action Action) bool {
	switch action {
	case ActionApprove, ActionReject:
		if actor.Role == models.RoleAdmin {
			return request.Status == models.StatusEscalated
		}
		return IsManagerOf(actor, request.Owner) && request.Status == models.StatusPending
	case ActionEscalate:
		return IsManagerOf(actor, request.Owner) && request.Status == models.StatusPending
	default:
		return false
	}
}

// CanView reports whether request belongs in the named view for actor.
func CanView(actor models.User, view View, request models.InvestmentRequest) bool {
	switch view {
	case ViewMine:
		return request.UserID == actor.ID
	case ViewManaged:
		if actor.Role == models.RoleAdmin {
			return true
		}
		// Escalated requests drop out of a manager's managed view.
		return IsManagerOf(actor, request.Owner) && request.Status != models.StatusEscalated
	case ViewEscalated:
		return actor.Role == models.RoleAdmin && request.Status == models.StatusEscalated
	case ViewAll:
		return actor.Role == models.RoleAdmin
	default:
		return false
	}
}

// CanAdminister reports whether actor may edit roles or manager links.
func CanAdminister(actor models.User) bool {
	return actor.Role == models.RoleAdmin
}
