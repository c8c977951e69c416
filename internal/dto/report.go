package dto

// EmployeeAllowanceSummary is one row of the monitoring view. TotalAllowance
// is an even per-head split of each trip's persisted total, so it is a float
// when participant counts do not divide the total evenly.
type EmployeeAllowanceSummary struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	NIP            string  `json:"nip"`
	Position       string  `json:"position"`
	TotalTrips     int     `json:"total_trips"`
	TotalDays      int     `json:"total_days"`
	TotalAllowance float64 `json:"total_allowance"`
}

// EmployeeSPDStat is one row of the trip-count leaderboard.
type EmployeeSPDStat struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	NIP          string `json:"nip"`
	Position     string `json:"position"`
	SPDCount     int    `json:"spd_count"`
	Rank         int    `json:"rank,omitempty"`
}

// Leaderboard carries the ranked stats plus the top-3 podium in its display
// order (runner-up, winner, third).
type Leaderboard struct {
	Podium []EmployeeSPDStat `json:"podium"`
	Stats  []EmployeeSPDStat `json:"stats"`
}

// AllowanceRecapRow is one row of the monthly allowance Excel recap. Day
// counts are kept per destination type so the sheet can show only the
// columns that actually occur in the period.
type AllowanceRecapRow struct {
	NIP                 string
	Name                string
	Position            string
	TotalTrips          int
	DaysInProvince      int
	DaysOutsideProvince int
	DaysAbroad          int
	TotalAllowance      float64
}

// ReportFilter captures the year/month window for summaries and exports.
// Month zero means every month of the year.
type ReportFilter struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}
