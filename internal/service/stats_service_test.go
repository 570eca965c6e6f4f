package service

import (
	"context"
	"testing"

	"newsdesk/internal/database"
	"newsdesk/internal/models"
	"newsdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	subs := repository.NewSubmissionRepository(db)
	approved := repository.NewApprovedRepository(db)
	rejected := repository.NewRejectedRepository(db)

	require.NoError(t, users.Create(ctx, &models.User{Name: "Admin", Email: "admin@example.com", Password: "hash"}))
	require.NoError(t, subs.Create(ctx, &models.Submission{Topic: "One"}))
	require.NoError(t, subs.Create(ctx, &models.Submission{Topic: "Two"}))
	require.NoError(t, approved.Append(ctx, &models.ApprovedRecord{
		SubmissionID: 100, Topic: "Done", Status: models.OutcomeStatusApproved, Rating: 4,
	}))

	stats, err := NewStatsService(users, subs, approved, rejected).GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalSubmissions)
	assert.EqualValues(t, 2, stats.Pending)
	assert.EqualValues(t, 1, stats.Approved)
	assert.EqualValues(t, 0, stats.Rejected)
}
