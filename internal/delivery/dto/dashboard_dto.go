package dto

// Response DTOs

type DashboardSummaryResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type AdminStatsResponse struct {
	TotalDoctors    int64                    `json:"total_doctors"`
	VerifiedDoctors int64                    `json:"verified_doctors"`
	PendingDoctors  int64                    `json:"pending_doctors"`
	Appointments    DashboardSummaryResponse `json:"appointments"`
}
