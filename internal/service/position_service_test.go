package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

type mockPositionRepo struct {
	positions []models.Position
}

func (m *mockPositionRepo) List(_ context.Context, _ models.PositionFilter) ([]models.Position, int, error) {
	return m.positions, len(m.positions), nil
}

func (m *mockPositionRepo) FindByID(_ context.Context, id string) (*models.Position, error) {
	for i := range m.positions {
		if m.positions[i].ID == id {
			return &m.positions[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestPositionServiceList(t *testing.T) {
	repo := &mockPositionRepo{positions: []models.Position{
		{ID: "pos-vp", Title: "Vice President", Code: "VP", AllowanceOutsideProvince: 200000},
		{ID: "pos-st", Title: "Staff", Code: "ST", AllowanceOutsideProvince: 150000},
	}}
	svc := NewPositionService(repo, nil)

	positions, pagination, err := svc.List(context.Background(), models.PositionFilter{PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, positions, 2)
	assert.Equal(t, 2, pagination.TotalItems)
	assert.Equal(t, 1, pagination.Page)
}

func TestPositionServiceGet(t *testing.T) {
	repo := &mockPositionRepo{positions: []models.Position{
		{ID: "pos-vp", Title: "Vice President", Code: "VP"},
	}}
	svc := NewPositionService(repo, nil)

	position, err := svc.Get(context.Background(), "pos-vp")
	require.NoError(t, err)
	assert.Equal(t, "Vice President", position.Title)

	_, err = svc.Get(context.Background(), "pos-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
