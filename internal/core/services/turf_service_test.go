package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/turfvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

func TestTurfService_AddAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewTurfService(memory.NewTurfRepository(), nil)

	turf, err := svc.Add(ctx, "  Main Field ")
	require.NoError(t, err)
	assert.Equal(t, "Main Field", turf.Name)
	assert.Equal(t, domain.DefaultMinPlayers, turf.DefaultMinPlayers)
	assert.Equal(t, domain.DefaultMaxPlayers, turf.DefaultMaxPlayers)
	assert.True(t, turf.DefaultPrice.Equal(decimal.NewFromInt(25)))
	assert.True(t, turf.Active)

	_, err = svc.Add(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTurfService_BulkAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewTurfService(memory.NewTurfRepository(), nil)

	turfs, err := svc.BulkAdd(ctx, 3, "Court")
	require.NoError(t, err)
	require.Len(t, turfs, 3)
	assert.Equal(t, "Court 1", turfs[0].Name)
	assert.Equal(t, "Court 3", turfs[2].Name)

	for _, count := range []int{0, domain.MaxBulkTurfs + 1} {
		_, err = svc.BulkAdd(ctx, count, "Court")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	_, err = svc.BulkAdd(ctx, 2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTurfService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewTurfService(memory.NewTurfRepository(), nil)

	turf, err := svc.Add(ctx, "Pitch")
	require.NoError(t, err)

	minPlayers, maxPlayers := 4, 8
	price := decimal.RequireFromString("30.50")
	inactive := false
	updated, err := svc.Update(ctx, turf.ID.String(), ports.UpdateTurfInput{
		DefaultMinPlayers: &minPlayers,
		DefaultMaxPlayers: &maxPlayers,
		DefaultPrice:      &price,
		Active:            &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.DefaultMinPlayers)
	assert.Equal(t, 8, updated.DefaultMaxPlayers)
	assert.True(t, updated.DefaultPrice.Equal(price))
	assert.False(t, updated.Active)

	tooFew := 9
	_, err = svc.Update(ctx, turf.ID.String(), ports.UpdateTurfInput{DefaultMinPlayers: &tooFew})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Update(ctx, turf.ID.String(), ports.UpdateTurfInput{DefaultPrice: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, "bad", ports.UpdateTurfInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTurfService_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	svc := NewTurfService(memory.NewTurfRepository(), nil)

	turf, err := svc.Add(ctx, "Pitch")
	require.NoError(t, err)

	err = svc.Delete(ctx, turf.ID.String(), false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

	require.NoError(t, svc.Delete(ctx, turf.ID.String(), true))

	err = svc.Delete(ctx, turf.ID.String(), true)
	assert.ErrorIs(t, err, domain.ErrTurfNotFound)
}
