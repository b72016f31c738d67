package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/internal/repository/inmemory"
	"go-jobtrack-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedApplication(t *testing.T, repo domain.ApplicationRepository, userID string, date time.Time, status string, industry *string, followUp *time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.Application{
		UserID:          userID,
		Company:         "Acme",
		JobTitle:        "Engineer",
		ApplicationDate: date,
		Status:          status,
		FollowUpDate:    followUp,
		Location:        "Berlin",
		Industry:        industry,
	})
	require.NoError(t, err)
}

func TestComputeOnEmptySet(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)

	summary, err := uc.Compute(context.Background(), "user1")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalApplications)
	assert.Equal(t, 0, summary.TotalInterviews)
	assert.Equal(t, 0, summary.TotalOffers)
	assert.Equal(t, 0, summary.TotalRejections)
	assert.Nil(t, summary.SuccessRate, "zero denominator yields nil, not NaN")
	assert.Nil(t, summary.AverageResponseTime)
	assert.Empty(t, summary.IndustryStats)
	assert.Empty(t, summary.RecentApplications)
}

func TestComputeStatusCountsAndRate(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// 3 applied, 2 interviewed, 2 offered, 1 rejected = 8 total
	for _, status := range []string{
		domain.StatusApplied, domain.StatusApplied, domain.StatusApplied,
		domain.StatusInterviewed, domain.StatusInterviewed,
		domain.StatusOffered, domain.StatusOffered,
		domain.StatusRejected,
	} {
		seedApplication(t, repo, "user1", day, status, nil, nil)
	}

	summary, err := uc.Compute(context.Background(), "user1")
	require.NoError(t, err)

	assert.Equal(t, 8, summary.TotalApplications)
	assert.Equal(t, 2, summary.TotalInterviews)
	assert.Equal(t, 2, summary.TotalOffers)
	assert.Equal(t, 1, summary.TotalRejections)

	require.NotNil(t, summary.SuccessRate)
	assert.Equal(t, 25.0, *summary.SuccessRate) // 2/8 * 100

	assert.Nil(t, summary.AverageResponseTime, "no record has a follow-up date")
}

func TestComputeSuccessRateRounding(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// 1 offer out of 3 = 33.333...% -> 33.33
	seedApplication(t, repo, "user1", day, domain.StatusOffered, nil, nil)
	seedApplication(t, repo, "user1", day, domain.StatusApplied, nil, nil)
	seedApplication(t, repo, "user1", day, domain.StatusRejected, nil, nil)

	summary, err := uc.Compute(context.Background(), "user1")
	require.NoError(t, err)
	require.NotNil(t, summary.SuccessRate)
	assert.Equal(t, 33.33, *summary.SuccessRate)
}

func TestComputeAverageResponseTime(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)
	applied := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	followUp1 := applied.AddDate(0, 0, 10)
	followUp2 := applied.AddDate(0, 0, 5)
	seedApplication(t, repo, "user1", applied, domain.StatusApplied, nil, &followUp1)
	seedApplication(t, repo, "user1", applied, domain.StatusApplied, nil, &followUp2)
	// No follow-up: excluded from the mean.
	seedApplication(t, repo, "user1", applied, domain.StatusApplied, nil, nil)

	summary, err := uc.Compute(context.Background(), "user1")
	require.NoError(t, err)
	require.NotNil(t, summary.AverageResponseTime)
	assert.Equal(t, 7.5, *summary.AverageResponseTime)
}

func TestComputeIndustryStats(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tech := "tech"
	finance := "finance"
	seedApplication(t, repo, "user1", day, domain.StatusOffered, &tech, nil)
	seedApplication(t, repo, "user1", day, domain.StatusApplied, &tech, nil)
	seedApplication(t, repo, "user1", day, domain.StatusRejected, &finance, nil)
	// Missing industry lands in the explicit "unspecified" bucket.
	seedApplication(t, repo, "user1", day, domain.StatusOffered, nil, nil)

	summary, err := uc.Compute(context.Background(), "user1")
	require.NoError(t, err)

	assert.Equal(t, domain.IndustryStat{Total: 2, Success: 1}, summary.IndustryStats["tech"])
	assert.Equal(t, domain.IndustryStat{Total: 1, Success: 0}, summary.IndustryStats["finance"])
	assert.Equal(t, domain.IndustryStat{Total: 1, Success: 1}, summary.IndustryStats[domain.IndustryUnspecified])
	assert.Len(t, summary.IndustryStats, 3)
}

func TestComputeRecentApplications(t *testing.T) {
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewAnalyticsUsecase(repo)

	t.Run("ordered newest first with display indices", func(t *testing.T) {
		dates := []time.Time{
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		for _, d := range dates {
			seedApplication(t, repo, "user1", d, domain.StatusApplied, nil, nil)
		}

		summary, err := uc.Compute(context.Background(), "user1")
		require.NoError(t, err)
		require.Len(t, summary.RecentApplications, 3)

		assert.Equal(t, dates[2], summary.RecentApplications[0].ApplicationDate)
		assert.Equal(t, dates[1], summary.RecentApplications[1].ApplicationDate)
		assert.Equal(t, dates[0], summary.RecentApplications[2].ApplicationDate)
		for i, recent := range summary.RecentApplications {
			assert.Equal(t, i+1, recent.DisplayNo)
		}
	})

	t.Run("capped at ten", func(t *testing.T) {
		for i := 0; i < 12; i++ {
			seedApplication(t, repo, "user2",
				time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC), domain.StatusApplied, nil, nil)
		}

		summary, err := uc.Compute(context.Background(), "user2")
		require.NoError(t, err)
		assert.Equal(t, 12, summary.TotalApplications)
		require.Len(t, summary.RecentApplications, 10)
		assert.Equal(t,
			time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			summary.RecentApplications[0].ApplicationDate)
	})
}
