package identity_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/infrastructure/memory"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProfile(t *testing.T, store *memory.Store, roles ...string) *entity.Profile {
	t.Helper()
	set, err := valueobject.NewRoleSet(roles...)
	require.NoError(t, err)
	profile, err := entity.NewProfile(gofakeit.Email(), "hash", gofakeit.Name(), set)
	require.NoError(t, err)
	require.NoError(t, store.Repositories().Profiles.Create(context.Background(), profile))
	return profile
}

func TestActivateRoleUseCase_AddsRoleWithoutRevokingOthers(t *testing.T) {
	store := memory.NewStore()
	profile := createProfile(t, store, "freelancer")
	uc := identity.NewActivateRoleUseCase(store.Repositories().Profiles)

	updated, err := uc.Execute(context.Background(), profile.ID, "client")
	require.NoError(t, err)

	assert.True(t, updated.HasRole(valueobject.RoleClient))
	assert.True(t, updated.HasRole(valueobject.RoleFreelancer))
}

func TestActivateRoleUseCase_Idempotent(t *testing.T) {
	store := memory.NewStore()
	profile := createProfile(t, store, "client")
	uc := identity.NewActivateRoleUseCase(store.Repositories().Profiles)

	for i := 0; i < 3; i++ {
		updated, err := uc.Execute(context.Background(), profile.ID, "client")
		require.NoError(t, err)
		assert.Equal(t, valueobject.RoleSet{valueobject.RoleClient}, updated.Roles)
	}
}

func TestActivateRoleUseCase_UnknownProfile(t *testing.T) {
	store := memory.NewStore()
	uc := identity.NewActivateRoleUseCase(store.Repositories().Profiles)

	_, err := uc.Execute(context.Background(), uuid.New(), "client")
	assert.True(t, apperror.IsNotFound(err))
}

func TestActivateRoleUseCase_UnknownRole(t *testing.T) {
	store := memory.NewStore()
	profile := createProfile(t, store)
	uc := identity.NewActivateRoleUseCase(store.Repositories().Profiles)

	_, err := uc.Execute(context.Background(), profile.ID, "admin")
	assert.True(t, apperror.IsValidation(err))
}

func TestRoleGate(t *testing.T) {
	store := memory.NewStore()
	both := createProfile(t, store, "freelancer", "client")
	clientOnly := createProfile(t, store, "client")
	gate := identity.NewRoleGate(store.Repositories().Profiles)
	ctx := context.Background()

	_, err := gate.Require(ctx, both.ID, valueobject.RoleFreelancer)
	assert.NoError(t, err)
	_, err = gate.Require(ctx, both.ID, valueobject.RoleClient)
	assert.NoError(t, err)

	_, err = gate.Require(ctx, clientOnly.ID, valueobject.RoleFreelancer)
	assert.True(t, apperror.IsForbidden(err))

	_, err = gate.Require(ctx, uuid.New(), valueobject.RoleClient)
	assert.True(t, apperror.IsForbidden(err))

	ok, err := gate.HasRole(ctx, clientOnly.ID, valueobject.RoleClient)
	require.NoError(t, err)
	assert.True(t, ok)
}
