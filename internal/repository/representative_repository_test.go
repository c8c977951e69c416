package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
)

func TestRepresentativeRepositoryFindActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepresentativeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "position", "active", "created_at", "updated_at"}).
		AddRow("rep-1", "M. MACHFUD HIDAYAT", "Vice President", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, position, active, created_at, updated_at FROM representatives WHERE active = TRUE ORDER BY updated_at DESC LIMIT 1")).
		WillReturnRows(rows)

	rep, err := repo.FindActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "M. MACHFUD HIDAYAT", rep.Name)
	assert.True(t, rep.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepresentativeRepositoryUpsertDeactivatesPreviousSigner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRepresentativeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE representatives SET active = FALSE").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO representatives").
		WithArgs(sqlmock.AnyArg(), "Andi Pratama", "Senior Vice President", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rep := &models.Representative{Name: "Andi Pratama", Position: "Senior Vice President"}
	require.NoError(t, repo.Upsert(context.Background(), rep))
	assert.NotEmpty(t, rep.ID)
	assert.True(t, rep.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
