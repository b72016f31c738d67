package usecase

import (
	"context"
	"math"
	"sort"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"
)

const recentApplicationsLimit = 10

type analyticsUsecase struct {
	applicationRepo domain.ApplicationRepository
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(appRepo domain.ApplicationRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{applicationRepo: appRepo}
}

// Compute derives summary statistics from the user's full record set in a
// single pass over a fresh read. Rates with a zero denominator stay nil
// instead of becoming NaN, so an empty account renders cleanly.
func (uc *analyticsUsecase) Compute(ctx context.Context, userID string) (*domain.AnalyticsSummary, error) {
	apps, err := uc.applicationRepo.GetByUser(ctx, userID, domain.ApplicationFilter{})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	summary := &domain.AnalyticsSummary{
		TotalApplications:  len(apps),
		IndustryStats:      make(map[string]domain.IndustryStat),
		RecentApplications: []domain.RecentApplication{},
	}

	var responseDays float64
	var responseCount int

	for _, app := range apps {
		switch app.Status {
		case domain.StatusInterviewed:
			summary.TotalInterviews++
		case domain.StatusOffered:
			summary.TotalOffers++
		case domain.StatusRejected:
			summary.TotalRejections++
		}

		if app.FollowUpDate != nil {
			responseDays += app.FollowUpDate.Sub(app.ApplicationDate).Hours() / 24
			responseCount++
		}

		industry := domain.IndustryUnspecified
		if app.Industry != nil && *app.Industry != "" {
			industry = *app.Industry
		}
		stat := summary.IndustryStats[industry]
		stat.Total++
		if app.Status == domain.StatusOffered {
			stat.Success++
		}
		summary.IndustryStats[industry] = stat
	}

	if summary.TotalApplications > 0 {
		rate := round2(float64(summary.TotalOffers) / float64(summary.TotalApplications) * 100)
		summary.SuccessRate = &rate
	}
	if responseCount > 0 {
		avg := round2(responseDays / float64(responseCount))
		summary.AverageResponseTime = &avg
	}

	summary.RecentApplications = recentApplications(apps)

	return summary, nil
}

// recentApplications returns the 10 most recently dated applications,
// newest first, each carrying a 1-based display position distinct from
// its persisted serial number.
func recentApplications(apps []domain.Application) []domain.RecentApplication {
	sorted := make([]domain.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ApplicationDate.After(sorted[j].ApplicationDate)
	})

	if len(sorted) > recentApplicationsLimit {
		sorted = sorted[:recentApplicationsLimit]
	}

	recent := make([]domain.RecentApplication, len(sorted))
	for i, app := range sorted {
		recent[i] = domain.RecentApplication{Application: app, DisplayNo: i + 1}
	}
	return recent
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
