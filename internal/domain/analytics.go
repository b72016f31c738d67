package domain

import "context"

// IndustryUnspecified is the bucket for applications without an industry.
const IndustryUnspecified = "unspecified"

// IndustryStat aggregates outcomes for one industry label.
type IndustryStat struct {
	Total   int `json:"total"`
	Success int `json:"success"` // applications with status "offered"
}

// RecentApplication is an application annotated with a 1-based display
// position for the "recent" list. DisplayNo is assigned by recency and is
// independent of the persisted SerialNo.
type RecentApplication struct {
	Application
	DisplayNo int `json:"display_no"`
}

// AnalyticsSummary holds the derived statistics for one user's record set.
// SuccessRate and AverageResponseTime are nil when their denominator is
// zero; they serialize as JSON null so callers can render "N/A" instead of
// receiving NaN.
type AnalyticsSummary struct {
	TotalApplications   int                     `json:"total_applications"`
	TotalInterviews     int                     `json:"total_interviews"`
	TotalOffers         int                     `json:"total_offers"`
	TotalRejections     int                     `json:"total_rejections"`
	SuccessRate         *float64                `json:"success_rate"`
	AverageResponseTime *float64                `json:"average_response_time"` // days
	IndustryStats       map[string]IndustryStat `json:"industry_stats"`
	RecentApplications  []RecentApplication     `json:"recent_applications"`
}

// AnalyticsUsecase computes summary statistics over a user's applications.
// Results are computed fresh from the store on every call; nothing is cached.
type AnalyticsUsecase interface {
	Compute(ctx context.Context, userID string) (*AnalyticsSummary, error)
}
