package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/server/models"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
)

func TestProjects_Create(t *testing.T) {
	svc := NewProjects(projects.NewMemoryRepository())
	ctx := context.Background()

	p, err := svc.Create(ctx, "  Kitchen Renovation  ")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Renovation", p.Name)
	assert.Equal(t, models.ProjectStatusActive, p.Status)
	assert.NotEmpty(t, p.ID)

	_, err = svc.Create(ctx, "   ")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestProjects_ListFilter(t *testing.T) {
	svc := NewProjects(projects.NewMemoryRepository())
	ctx := context.Background()

	a, err := svc.Create(ctx, "A")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B")
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, b.ID, "archived")
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	archived, err := svc.List(ctx, "ARCHIVED")
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, b.ID, archived[0].ID)

	_, err = svc.List(ctx, "deleted")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestProjects_SetStatus(t *testing.T) {
	svc := NewProjects(projects.NewMemoryRepository())
	ctx := context.Background()

	p, err := svc.Create(ctx, "A")
	require.NoError(t, err)

	p, err = svc.SetStatus(ctx, p.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusArchived, p.Status)

	p, err = svc.SetStatus(ctx, p.ID, "active")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusActive, p.Status)

	_, err = svc.SetStatus(ctx, p.ID, "gone")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.SetStatus(ctx, "missing", "archived")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjects_Get(t *testing.T) {
	svc := NewProjects(projects.NewMemoryRepository())
	ctx := context.Background()

	p, err := svc.Create(ctx, "A")
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
