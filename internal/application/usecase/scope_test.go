package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
)

func TestScopeResolver_Resolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.scope.Resolve(ctx, orgA, "")
	require.NoError(t, err)
	assert.Equal(t, []string{stationA1, stationA2}, all.IDs())
	assert.Equal(t, orgA, all.OrganizationID())

	one, err := f.scope.Resolve(ctx, orgA, stationA2)
	require.NoError(t, err)
	assert.Equal(t, []string{stationA2}, one.IDs())

	foreign, err := f.scope.Resolve(ctx, orgA, stationB1)
	require.NoError(t, err)
	assert.True(t, foreign.IsEmpty())

	none, err := f.scope.Resolve(ctx, "org-sin-estaciones", "")
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())
}

func TestScopeResolver_EstacionAjena(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.scope.StationForWrite(ctx, orgA, stationB1)
	assert.ErrorIs(t, err, domain.ErrInvalidStation)

	_, err = f.scope.StationForRecord(ctx, orgA, stationB1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	st, err := f.scope.StationForWrite(ctx, orgA, stationA1)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", st.Name)
}

func TestScopeResolver_IDMalformado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	scope, err := f.scope.Resolve(ctx, orgA, "123")
	require.NoError(t, err)
	assert.True(t, scope.IsEmpty())

	_, err = f.scope.StationForWrite(ctx, orgA, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidStation)
}
