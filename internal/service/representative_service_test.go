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

type mockRepresentativeRepo struct {
	active *models.Representative
}

func (m *mockRepresentativeRepo) FindActive(_ context.Context) (*models.Representative, error) {
	if m.active == nil {
		return nil, sql.ErrNoRows
	}
	return m.active, nil
}

func (m *mockRepresentativeRepo) Upsert(_ context.Context, rep *models.Representative) error {
	rep.ID = "rep-1"
	m.active = rep
	return nil
}

func TestRepresentativeServiceUpdate(t *testing.T) {
	repo := &mockRepresentativeRepo{active: &models.Representative{
		ID: "rep-0", Name: "M. MACHFUD HIDAYAT", Position: "Vice President", Active: true,
	}}
	svc := NewRepresentativeService(repo, nil, nil)

	rep, err := svc.Update(context.Background(), UpdateRepresentativeRequest{
		Name:     "Andi Pratama",
		Position: "Senior Vice President",
	})

	require.NoError(t, err)
	assert.Equal(t, "Andi Pratama", rep.Name)
	assert.Equal(t, "Senior Vice President", rep.Position)
	assert.True(t, rep.Active)
}

func TestRepresentativeServiceUpdateValidation(t *testing.T) {
	svc := NewRepresentativeService(&mockRepresentativeRepo{}, nil, nil)

	_, err := svc.Update(context.Background(), UpdateRepresentativeRequest{Name: "No Position"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRepresentativeServiceGetUnconfigured(t *testing.T) {
	svc := NewRepresentativeService(&mockRepresentativeRepo{}, nil, nil)

	_, err := svc.Get(context.Background())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
