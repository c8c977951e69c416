package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDaysInclusive(t *testing.T) {
	tests := []struct {
		name      string
		departure time.Time
		returnAt  time.Time
		want      int
	}{
		{"same day", day(2025, time.March, 10), day(2025, time.March, 10), 1},
		{"overnight", day(2025, time.March, 10), day(2025, time.March, 11), 2},
		{"working week", day(2025, time.March, 10), day(2025, time.March, 14), 5},
		{"ignores time of day", day(2025, time.March, 10).Add(23 * time.Hour), day(2025, time.March, 11).Add(time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationDays(tt.departure, tt.returnAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationDaysRejectsReturnBeforeDeparture(t *testing.T) {
	_, err := DurationDays(day(2025, time.March, 11), day(2025, time.March, 10))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestComputeAllowancePerParticipantRates(t *testing.T) {
	senior := models.Position{ID: "pos-vp", Title: "Vice President", AllowanceOutsideProvince: 200000}
	junior := models.Position{ID: "pos-staff", Title: "Staff", AllowanceOutsideProvince: 150000}
	participants := []models.EmployeeDetail{
		{Employee: models.Employee{ID: "emp-1"}, Position: senior},
		{Employee: models.Employee{ID: "emp-2"}, Position: junior},
	}

	breakdown, err := ComputeAllowance(models.DestinationOutsideProvince, 3, participants)
	require.NoError(t, err)

	assert.Equal(t, int64(3*(200000+150000)), breakdown.TotalAllowance)
	assert.Equal(t, int64(600000), breakdown.PerEmployee["emp-1"])
	assert.Equal(t, int64(450000), breakdown.PerEmployee["emp-2"])
}

func TestComputeAllowanceUsesDestinationRate(t *testing.T) {
	pos := models.Position{
		AllowanceInProvince:      100000,
		AllowanceOutsideProvince: 200000,
		AllowanceAbroad:          500000,
	}
	participants := []models.EmployeeDetail{{Employee: models.Employee{ID: "emp-1"}, Position: pos}}

	tests := []struct {
		dest models.DestinationType
		want int64
	}{
		{models.DestinationInProvince, 100000},
		{models.DestinationOutsideProvince, 200000},
		{models.DestinationAbroad, 500000},
	}
	for _, tt := range tests {
		breakdown, err := ComputeAllowance(tt.dest, 1, participants)
		require.NoError(t, err)
		assert.Equal(t, tt.want, breakdown.TotalAllowance)
	}
}

func TestComputeAllowanceValidation(t *testing.T) {
	participants := []models.EmployeeDetail{{Employee: models.Employee{ID: "emp-1"}}}

	_, err := ComputeAllowance("mars", 1, participants)
	assert.Error(t, err)

	_, err = ComputeAllowance(models.DestinationInProvince, 0, participants)
	assert.Error(t, err)

	_, err = ComputeAllowance(models.DestinationInProvince, 1, nil)
	assert.Error(t, err)
}

func TestEvenSplit(t *testing.T) {
	assert.Equal(t, 500000.0, EvenSplit(1000000, 2))
	assert.Equal(t, float64(1000000)/3, EvenSplit(1000000, 3))
	assert.Equal(t, 0.0, EvenSplit(1000000, 0))
}
