package policy

import (
	"testing"

	"github.com/investflow-dev/investflow/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func user(id uint, role string, managerID *uint) models.User {
	return models.User{
		Model:     gorm.Model{ID: id},
		Username:  "user",
		Role:      role,
		ManagerID: managerID,
	}
}

func request(ownerID uint, owner models.User, status string) models.InvestmentRequest {
	return models.InvestmentRequest{
		UserID: ownerID,
		Owner:  owner,
		Status: status,
	}
}

func ref(id uint) *uint { return &id }

func TestIsManagerOf(t *testing.T) {
	manager := user(2, models.RoleManager, nil)
	owner := user(1, models.RoleRegular, ref(2))

	assert.True(t, IsManagerOf(manager, owner))

	// Wrong manager.
	assert.False(t, IsManagerOf(user(3, models.RoleManager, nil), owner))

	// No link at all.
	assert.False(t, IsManagerOf(manager, user(1, models.RoleRegular, nil)))

	// Demoted manager: the link dangles and counts as absent.
	assert.False(t, IsManagerOf(user(2, models.RoleRegular, nil), owner))
	assert.False(t, IsManagerOf(user(2, models.RoleAdmin, nil), owner))
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		status string
		action Action
		want   bool
	}{
		{models.StatusPending, ActionApprove, true},
		{models.StatusPending, ActionReject, true},
		{models.StatusPending, ActionEscalate, true},
		{models.StatusEscalated, ActionApprove, true},
		{models.StatusEscalated, ActionReject, true},
		{models.StatusEscalated, ActionEscalate, false},
		{models.StatusApproved, ActionApprove, false},
		{models.StatusApproved, ActionReject, false},
		{models.StatusApproved, ActionEscalate, false},
		{models.StatusRejected, ActionApprove, false},
		{models.StatusRejected, ActionReject, false},
		{models.StatusRejected, ActionEscalate, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTransition(tt.status, tt.action),
			"%s --%s-->", tt.status, tt.action)
	}
}

func TestCanModerate_ManagerScope(t *testing.T) {
	manager := user(2, models.RoleManager, nil)
	stranger := user(9, models.RoleManager, nil)
	owner := user(1, models.RoleRegular, ref(2))

	pending := request(1, owner, models.StatusPending)
	escalated := request(1, owner, models.StatusEscalated)

	for _, action := range []Action{ActionApprove, ActionReject, ActionEscalate} {
		assert.True(t, CanModerate(manager, pending, action), "direct manager on PENDING, %s", action)
		assert.False(t, CanModerate(stranger, pending, action), "unrelated manager, %s", action)

		// Authority transfers fully to admins after escalation.
		assert.False(t, CanModerate(manager, escalated, action), "manager post-escalation, %s", action)
	}
}

func TestCanModerate_AdminScope(t *testing.T) {
	admin := user(5, models.RoleAdmin, nil)
	owner := user(1, models.RoleRegular, ref(2))

	assert.True(t, CanModerate(admin, request(1, owner, models.StatusEscalated), ActionApprove))
	assert.True(t, CanModerate(admin, request(1, owner, models.StatusEscalated), ActionReject))

	// Admins act only on escalated requests; pending ones belong to
	// the owner's manager.
	assert.False(t, CanModerate(admin, request(1, owner, models.StatusPending), ActionApprove))
	assert.False(t, CanModerate(admin, request(1, owner, models.StatusPending), ActionReject))

	// Escalation is manager-only.
	assert.False(t, CanModerate(admin, request(1, owner, models.StatusPending), ActionEscalate))
	assert.False(t, CanModerate(admin, request(1, owner, models.StatusEscalated), ActionEscalate))
}

func TestCanModerate_OwnerNeverSelfModerates(t *testing.T) {
	owner := user(1, models.RoleRegular, ref(2))
	req := request(1, owner, models.StatusPending)

	for _, action := range []Action{ActionApprove, ActionReject, ActionEscalate} {
		assert.False(t, CanModerate(owner, req, action))
	}

	// Being your own manager is invalid data, but even then the policy
	// must not grant self-approval since the owner is not a manager.
	selfLinked := user(1, models.RoleRegular, ref(1))
	assert.False(t, CanModerate(selfLinked, request(1, selfLinked, models.StatusPending), ActionApprove))
}

func TestCanModerate_TerminalStates(t *testing.T) {
	manager := user(2, models.RoleManager, nil)
	admin := user(5, models.RoleAdmin, nil)
	owner := user(1, models.RoleRegular, ref(2))

	for _, status := range []string{models.StatusApproved, models.StatusRejected} {
		req := request(1, owner, status)
		for _, action := range []Action{ActionApprove, ActionReject, ActionEscalate} {
			assert.False(t, CanModerate(manager, req, action), "manager %s on %s", action, status)
			assert.False(t, CanModerate(admin, req, action), "admin %s on %s", action, status)
		}
	}
}

func TestCanView_Mine(t *testing.T) {
	owner := user(1, models.RoleRegular, nil)

	assert.True(t, CanView(owner, ViewMine, request(1, owner, models.StatusPending)))
	assert.False(t, CanView(owner, ViewMine, request(3, user(3, models.RoleRegular, nil), models.StatusPending)))
}

func TestCanView_Managed(t *testing.T) {
	manager := user(2, models.RoleManager, nil)
	admin := user(5, models.RoleAdmin, nil)
	owner := user(1, models.RoleRegular, ref(2))
	unrelated := user(7, models.RoleRegular, nil)

	assert.True(t, CanView(manager, ViewManaged, request(1, owner, models.StatusPending)))
	assert.True(t, CanView(manager, ViewManaged, request(1, owner, models.StatusApproved)))
	assert.True(t, CanView(manager, ViewManaged, request(1, owner, models.StatusRejected)))

	// Escalated requests disappear from the manager's managed view.
	assert.False(t, CanView(manager, ViewManaged, request(1, owner, models.StatusEscalated)))

	assert.False(t, CanView(manager, ViewManaged, request(7, unrelated, models.StatusPending)))

	// Admins see the full set, escalated included.
	assert.True(t, CanView(admin, ViewManaged, request(1, owner, models.StatusEscalated)))
	assert.True(t, CanView(admin, ViewManaged, request(7, unrelated, models.StatusPending)))
}

func TestCanView_EscalatedAndAll(t *testing.T) {
	manager := user(2, models.RoleManager, nil)
	admin := user(5, models.RoleAdmin, nil)
	regular := user(1, models.RoleRegular, ref(2))
	owner := user(1, models.RoleRegular, ref(2))

	escalated := request(1, owner, models.StatusEscalated)
	pending := request(1, owner, models.StatusPending)

	assert.True(t, CanView(admin, ViewEscalated, escalated))
	assert.False(t, CanView(admin, ViewEscalated, pending))
	assert.False(t, CanView(manager, ViewEscalated, escalated))
	assert.False(t, CanView(regular, ViewEscalated, escalated))

	assert.True(t, CanView(admin, ViewAll, pending))
	assert.False(t, CanView(manager, ViewAll, pending))
	assert.False(t, CanView(regular, ViewAll, pending))
}

func TestCanAdminister(t *testing.T) {
	assert.True(t, CanAdminister(user(5, models.RoleAdmin, nil)))
	assert.False(t, CanAdminister(user(2, models.RoleManager, nil)))
	assert.False(t, CanAdminister(user(1, models.RoleRegular, nil)))
}
