package service

import (
	"context"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/repository"
)

// DashboardStats is the aggregate view shown on the console home screen.
type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalSubmissions int64 `json:"total_submissions"`
	Pending          int64 `json:"pending"`
	Approved         int64 `json:"approved"`
	Rejected         int64 `json:"rejected"`
}

// StatsService aggregates counts across the stores for the dashboard.
type StatsService struct {
	users       repository.UserRepository
	submissions repository.SubmissionRepository
	approved    repository.ApprovedRepository
	rejected    repository.RejectedRepository
}

func NewStatsService(
	users repository.UserRepository,
	submissions repository.SubmissionRepository,
	approved repository.ApprovedRepository,
	rejected repository.RejectedRepository,
) *StatsService {
	return &StatsService{
		users:       users,
		submissions: submissions,
		approved:    approved,
		rejected:    rejected,
	}
}

// GetDashboardStats returns the aggregate counts, served from cache when warm.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	err := cache.CacheAside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		var err error
		if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
			return err
		}
		if stats.TotalSubmissions, err = s.submissions.Count(ctx); err != nil {
			return err
		}
		if stats.Pending, err = s.submissions.CountByStatus(ctx, models.SubmissionStatusPending); err != nil {
			return err
		}
		if stats.Approved, err = s.approved.Count(ctx); err != nil {
			return err
		}
		stats.Rejected, err = s.rejected.Count(ctx)
		return err
	})
	if err != nil {
		return nil, models.NewPersistenceError("dashboard stats", err)
	}
	return &stats, nil
}
