package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

func TestMoney(t *testing.T) {
	m, err := ParseMoney("99.999")
	require.NoError(t, err)
	assert.Equal(t, "100.00", m.String())

	_, err = ParseMoney("abc")
	assert.True(t, apperror.IsValidation(err))

	assert.True(t, MustMoney("250").Equal(MustMoney("250.00")))

	_, err = PositiveMoney(decimal.Zero, "amount")
	assert.True(t, apperror.IsValidation(err))
	_, err = PositiveMoney(decimal.NewFromInt(-5), "amount")
	assert.True(t, apperror.IsValidation(err))
}

func TestPositiveMoney_RoundsBeforeChecking(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
		valid  bool
	}{
		{"rounds to zero", "0.004", "", false},
		{"rounds up to a cent", "0.005", "0.01", true},
		{"upper bound", "9999999999.99", "9999999999.99", true},
		{"rounds past upper bound", "9999999999.995", "", false},
		{"overflows column", "10000000000", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := PositiveMoney(decimal.RequireFromString(tt.amount), "amount")
			if !tt.valid {
				assert.True(t, apperror.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestNewBudget(t *testing.T) {
	b, err := NewBudget(decimal.NewFromInt(100), decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, b.Contains(MustMoney("100")))
	assert.True(t, b.Contains(MustMoney("500")))
	assert.False(t, b.Contains(MustMoney("500.01")))

	_, err = NewBudget(decimal.NewFromInt(100), decimal.NewFromInt(100))
	assert.NoError(t, err, "equal bounds are allowed")

	_, err = NewBudget(decimal.NewFromInt(500), decimal.NewFromInt(100))
	assert.True(t, apperror.IsValidation(err))
	_, err = NewBudget(decimal.Zero, decimal.NewFromInt(100))
	assert.True(t, apperror.IsValidation(err))
	_, err = NewBudget(decimal.RequireFromString("0.004"), decimal.NewFromInt(100))
	assert.True(t, apperror.IsValidation(err))
	_, err = NewBudget(decimal.NewFromInt(100), decimal.NewFromInt(10_000_000_000))
	assert.True(t, apperror.IsValidation(err))

	b, err = NewBudget(decimal.RequireFromString("99.999"), decimal.RequireFromString("100.001"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", b.Min.String())
	assert.Equal(t, "100.00", b.Max.String())
}

func TestBidStatus_Transitions(t *testing.T) {
	for _, next := range []BidStatus{BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn} {
		assert.True(t, BidStatusPending.CanTransitionTo(next), next)
	}
	assert.False(t, BidStatusPending.CanTransitionTo(BidStatusPending))

	for _, terminal := range []BidStatus{BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn} {
		for _, next := range []BidStatus{BidStatusPending, BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}

	assert.True(t, BidStatusPending.IsActive())
	assert.True(t, BidStatusAccepted.IsActive())
	assert.False(t, BidStatusWithdrawn.IsActive())
	assert.False(t, BidStatusRejected.IsActive())
}

func TestProjectAndOrderStatus(t *testing.T) {
	assert.True(t, ProjectStatusOpen.CanTransitionTo(ProjectStatusInProgress))
	assert.True(t, ProjectStatusOpen.CanTransitionTo(ProjectStatusCancelled))
	assert.False(t, ProjectStatusOpen.CanTransitionTo(ProjectStatusCompleted))
	assert.False(t, ProjectStatusInProgress.CanTransitionTo(ProjectStatusOpen))
	assert.True(t, ProjectStatusCompleted.IsTerminal())

	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusInProgress))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusInProgress))

	_, err := NewProjectStatus("archived")
	assert.True(t, apperror.IsValidation(err))
	s, err := NewOrderStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusInProgress, s)
}

func TestRoleSet(t *testing.T) {
	set, err := NewRoleSet("Freelancer", "client", "freelancer")
	require.NoError(t, err)
	assert.Equal(t, []string{"client", "freelancer"}, set.Strings())

	_, err = NewRoleSet("admin")
	assert.True(t, apperror.IsValidation(err))

	var empty RoleSet
	withClient := empty.With(RoleClient)
	assert.False(t, empty.Has(RoleClient), "With must not mutate the receiver")
	assert.True(t, withClient.Has(RoleClient))
	assert.Equal(t, withClient, withClient.With(RoleClient))
}
