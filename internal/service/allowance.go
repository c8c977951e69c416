package service

import (
	"time"

	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

// AllowanceBreakdown is the result of the creation-time allowance
// computation. PerEmployee is keyed by employee ID and reflects each
// participant's own position rate, so mixed-position trips have
// heterogeneous contributions.
type AllowanceBreakdown struct {
	TotalAllowance int64            `json:"total_allowance"`
	PerEmployee    map[string]int64 `json:"per_employee"`
}

// DurationDays computes the inclusive day count between departure and
// return. Same-day trips count as one day. The comparison is done on
// calendar dates; time-of-day is ignored.
func DurationDays(departure, returnDate time.Time) (int, error) {
	dep := truncateToDate(departure)
	ret := truncateToDate(returnDate)
	if ret.Before(dep) {
		return 0, appErrors.Clone(appErrors.ErrValidation, "return date cannot be before departure date")
	}
	return int(ret.Sub(dep).Hours()/24) + 1, nil
}

// ComputeAllowance derives the total daily allowance for a trip. Each
// participant contributes durationDays times the rate their own position
// carries for the destination type.
func ComputeAllowance(dest models.DestinationType, durationDays int, participants []models.EmployeeDetail) (AllowanceBreakdown, error) {
	if !dest.Valid() {
		return AllowanceBreakdown{}, appErrors.Clone(appErrors.ErrValidation, "invalid destination_type")
	}
	if durationDays < 1 {
		return AllowanceBreakdown{}, appErrors.Clone(appErrors.ErrValidation, "duration must be at least one day")
	}
	if len(participants) == 0 {
		return AllowanceBreakdown{}, appErrors.Clone(appErrors.ErrValidation, "at least one participant is required")
	}

	breakdown := AllowanceBreakdown{PerEmployee: make(map[string]int64, len(participants))}
	for _, p := range participants {
		rate := p.Position.RateFor(dest)
		if rate < 0 {
			return AllowanceBreakdown{}, appErrors.Clone(appErrors.ErrValidation, "allowance rate cannot be negative")
		}
		share := int64(durationDays) * rate
		breakdown.PerEmployee[p.ID] = share
		breakdown.TotalAllowance += share
	}
	return breakdown, nil
}

// EvenSplit is the reporting-side share of a persisted request total. It
// deliberately divides the stored total evenly by participant count instead
// of re-deriving per-position contributions; monitoring and leaderboard
// views depend on this observed behaviour.
func EvenSplit(totalAllowance int64, participantCount int) float64 {
	if participantCount <= 0 {
		return 0
	}
	return float64(totalAllowance) / float64(participantCount)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
