package authorization

import (
	"context"
	"testing"

	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (Service, *ServiceImpl) {
	t.Helper()
	db := dbtest.Open(t)
	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	svc := NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
	return svc, svc.(*ServiceImpl)
}

func TestAuthorizeRoleHierarchy(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		role    string
		object  string
		action  string
		allowed bool
	}{
		{RoleUser, ObjectRental, ActionRentalStart, true},
		{RoleUser, ObjectRental, ActionRentalStartAny, false},
		{RoleUser, ObjectRental, ActionList, false},
		{RoleUser, ObjectScooter, ActionList, true},
		{RoleUser, ObjectScooter, ActionCreate, false},
		{RoleUser, ObjectUser, ActionDelete, false},
		{RoleManager, ObjectRental, ActionRentalStart, true},
		{RoleManager, ObjectRental, ActionList, true},
		{RoleManager, ObjectScooter, ActionDelete, true},
		{RoleUser, ObjectModel, ActionList, false},
		{RoleManager, ObjectModel, ActionCreate, true},
		{RoleAdmin, ObjectModel, ActionDelete, true},
		{RoleManager, ObjectUser, ActionUserAssignRole, false},
		{RoleManager, ObjectPayment, ActionPaymentUpdateState, false},
		{RoleAdmin, ObjectScooter, ActionCreate, true},
		{RoleAdmin, ObjectRental, ActionRentalEnd, true},
		{RoleAdmin, ObjectUser, ActionUserAssignRole, true},
		{RoleAdmin, ObjectPayment, ActionPaymentUpdateState, true},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.object+"/"+tt.action, func(t *testing.T) {
			err := svc.Authorize(ctx, tt.role, tt.object, tt.action)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeRejectsMalformedInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "owner", ObjectRental, ActionView), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, RoleUser, " ", ActionView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, RoleUser, ObjectRental, ""), ErrInvalidAction)
	assert.NoError(t, svc.Authorize(ctx, " ADMIN ", ObjectRental, ActionView))
}

func TestSeedPoliciesIsIdempotent(t *testing.T) {
	_, impl := newTestService(t)

	before, err := impl.enforcer.GetPolicy()
	require.NoError(t, err)
	require.NoError(t, seedPolicies(impl.enforcer))
	after, err := impl.enforcer.GetPolicy()
	require.NoError(t, err)

	assert.Len(t, after, len(before))
}
