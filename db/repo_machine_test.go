package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texcare/texcare360-backend/models"
)

func TestCreateMachineDefaultsToHealthy(t *testing.T) {
	r := newTestRepo(t)
	m := &models.Machine{Name: "Loom-1"}
	require.NoError(t, r.CreateMachine(context.Background(), m))
	assert.Equal(t, models.MachineHealthy, m.Status)
}

func TestUpdateMachinePartial(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedMachine(t, r, "Loom-1", models.MachineHealthy, "")

	status := models.MachineUnhealthy
	got, err := r.UpdateMachine(ctx, m.ID, nil, &status)
	require.NoError(t, err)
	assert.Equal(t, "Loom-1", got.Name)
	assert.Equal(t, models.MachineUnhealthy, got.Status)

	name := "Loom-1b"
	got, err = r.UpdateMachine(ctx, m.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Loom-1b", got.Name)
	assert.Equal(t, models.MachineUnhealthy, got.Status)
}

func TestUpdateMachineNotFound(t *testing.T) {
	r := newTestRepo(t)
	name := "x"
	_, err := r.UpdateMachine(context.Background(), 99, &name, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMachineBlockedByOpenLog(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	m := seedMachine(t, r, "Loom-1", models.MachineUnhealthy, "")
	tech := seedTechnician(t, r, "Alice", "Electrical", models.TechAvailable)

	res, err := r.AssignTechnician(ctx, m.ID, tech.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, r.DeleteMachine(ctx, m.ID), ErrMachineHasOpenLog)

	// closing the log unblocks deletion
	_, err = r.CompleteLog(ctx, res.Log.ID, "", 0, "x")
	require.NoError(t, err)
	require.NoError(t, r.DeleteMachine(ctx, m.ID))

	assert.ErrorIs(t, r.DeleteMachine(ctx, m.ID), ErrNotFound)
}
