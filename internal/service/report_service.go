package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dib-tools/perjadin-api/internal/dto"
	"github.com/dib-tools/perjadin-api/internal/models"
	appErrors "github.com/dib-tools/perjadin-api/pkg/errors"
)

const summaryCachePrefix = "monitoring:summary"

// FilterByPeriod keeps requests whose departure date falls in the given year
// and, when month is non-zero, the given month. A zero year keeps all years.
func FilterByPeriod(requests []models.TravelRequest, year, month int) []models.TravelRequest {
	out := make([]models.TravelRequest, 0, len(requests))
	for _, r := range requests {
		if year != 0 && r.DepartureDate.Year() != year {
			continue
		}
		if month != 0 && int(r.DepartureDate.Month()) != month {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize aggregates travel requests into one monitoring row per employee.
// The output is seeded from the full roster so employees without trips in
// the period still appear with zero values. Each trip contributes an even
// per-head split of its persisted total allowance, regardless of the
// per-position rates used at creation time. Rows are ordered by descending
// allowance with ties kept in roster order.
func Summarize(requests []models.TravelRequest, roster []models.EmployeeDetail, year, month int) []dto.EmployeeAllowanceSummary {
	rows := make([]dto.EmployeeAllowanceSummary, 0, len(roster))
	index := make(map[string]int, len(roster))
	for i, e := range roster {
		index[e.ID] = i
		rows = append(rows, dto.EmployeeAllowanceSummary{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			NIP:          e.NIP,
			Position:     e.Position.Title,
		})
	}
	for _, r := range FilterByPeriod(requests, year, month) {
		count := len(r.Participants)
		if count == 0 {
			continue
		}
		share := EvenSplit(r.TotalAllowance, count)
		for _, p := range r.Participants {
			i, ok := index[p.EmployeeID]
			if !ok {
				continue
			}
			rows[i].TotalTrips++
			rows[i].TotalDays += r.DurationDays
			rows[i].TotalAllowance += share
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].TotalAllowance > rows[b].TotalAllowance
	})
	return rows
}

// RankByTrips produces the trip-count leaderboard over the same aggregation.
// Rank 1 has the most trips; ties keep roster order. The podium holds the
// top three in presentation order (runner-up, winner, third).
func RankByTrips(requests []models.TravelRequest, roster []models.EmployeeDetail, year, month int) dto.Leaderboard {
	stats := make([]dto.EmployeeSPDStat, 0, len(roster))
	index := make(map[string]int, len(roster))
	for i, e := range roster {
		index[e.ID] = i
		stats = append(stats, dto.EmployeeSPDStat{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			NIP:          e.NIP,
			Position:     e.Position.Title,
		})
	}
	for _, r := range FilterByPeriod(requests, year, month) {
		for _, p := range r.Participants {
			if i, ok := index[p.EmployeeID]; ok {
				stats[i].SPDCount++
			}
		}
	}
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].SPDCount > stats[b].SPDCount
	})
	for i := range stats {
		stats[i].Rank = i + 1
	}

	var podium []dto.EmployeeSPDStat
	switch {
	case len(stats) >= 3:
		podium = []dto.EmployeeSPDStat{stats[1], stats[0], stats[2]}
	case len(stats) == 2:
		podium = []dto.EmployeeSPDStat{stats[1], stats[0]}
	case len(stats) == 1:
		podium = []dto.EmployeeSPDStat{stats[0]}
	}
	return dto.Leaderboard{Podium: podium, Stats: stats}
}

// MonthlyAllowanceRows aggregates the Excel recap rows for a period. Unlike
// the monitoring summary the recap lists only employees who travelled, in
// order of first appearance across the filtered requests.
func MonthlyAllowanceRows(requests []models.TravelRequest, year, month int) []dto.AllowanceRecapRow {
	rows := make([]dto.AllowanceRecapRow, 0)
	index := make(map[string]int)
	for _, r := range FilterByPeriod(requests, year, month) {
		count := len(r.Participants)
		if count == 0 {
			continue
		}
		share := EvenSplit(r.TotalAllowance, count)
		for _, p := range r.Participants {
			i, ok := index[p.EmployeeID]
			if !ok {
				i = len(rows)
				index[p.EmployeeID] = i
				rows = append(rows, dto.AllowanceRecapRow{
					NIP:      p.EmployeeNIP,
					Name:     p.EmployeeName,
					Position: p.PositionTitle,
				})
			}
			rows[i].TotalTrips++
			rows[i].TotalAllowance += share
			switch r.DestinationType {
			case models.DestinationInProvince:
				rows[i].DaysInProvince += r.DurationDays
			case models.DestinationOutsideProvince:
				rows[i].DaysOutsideProvince += r.DurationDays
			case models.DestinationAbroad:
				rows[i].DaysAbroad += r.DurationDays
			}
		}
	}
	return rows
}

type reportRequestLister interface {
	ListAll(ctx context.Context) ([]models.TravelRequest, error)
}

type rosterReader interface {
	ListDetails(ctx context.Context) ([]models.EmployeeDetail, error)
}

// ReportService serves the monitoring summary and leaderboard, caching the
// summary between writes.
type ReportService struct {
	requests reportRequestLister
	roster   rosterReader
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(requests reportRequestLister, roster rosterReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{requests: requests, roster: roster, cache: cache, metrics: metrics, logger: logger}
}

func (s *ReportService) load(ctx context.Context) ([]models.TravelRequest, []models.EmployeeDetail, error) {
	start := time.Now()
	requests, err := s.requests.ListAll(ctx)
	s.metrics.ObserveDBQuery("monitoring_requests", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel requests")
	}
	start = time.Now()
	roster, err := s.roster.ListDetails(ctx)
	s.metrics.ObserveDBQuery("monitoring_roster", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employees")
	}
	return requests, roster, nil
}

// Summary returns the monitoring summary for a period.
func (s *ReportService) Summary(ctx context.Context, filter dto.ReportFilter) ([]dto.EmployeeAllowanceSummary, error) {
	key := fmt.Sprintf("%s:%d:%d", summaryCachePrefix, filter.Year, filter.Month)
	var cached []dto.EmployeeAllowanceSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	requests, roster, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rows := Summarize(requests, roster, filter.Year, filter.Month)
	if err := s.cache.Set(ctx, key, rows, 0); err != nil {
		s.logger.Warn("summary cache write failed", zap.Error(err))
	}
	return rows, nil
}

// Leaderboard returns the trip-count ranking for a period.
func (s *ReportService) Leaderboard(ctx context.Context, filter dto.ReportFilter) (dto.Leaderboard, error) {
	requests, roster, err := s.load(ctx)
	if err != nil {
		return dto.Leaderboard{}, err
	}
	return RankByTrips(requests, roster, filter.Year, filter.Month), nil
}

// MonthlyAllowance returns the Excel recap rows for a period.
func (s *ReportService) MonthlyAllowance(ctx context.Context, filter dto.ReportFilter) ([]dto.AllowanceRecapRow, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load travel requests")
	}
	return MonthlyAllowanceRows(requests, filter.Year, filter.Month), nil
}

// InvalidateSummaries drops cached monitoring summaries after a write.
func (s *ReportService) InvalidateSummaries(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, summaryCachePrefix+":*"); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}
