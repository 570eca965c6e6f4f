package repository

import (
	"context"
	"testing"
	"time"

	"newsdesk/internal/database"
	"newsdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_CreateDefaultsStatus(t *testing.T) {
	t.Parallel()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	sub := &models.Submission{Topic: "No status given"}
	require.NoError(t, repo.Create(ctx, sub))
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)
}

func TestSubmissionRepository_ListPendingOrder(t *testing.T) {
	t.Parallel()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	older := &models.Submission{Topic: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Submission{Topic: "newer"}
	marked := &models.Submission{Topic: "marked", Status: models.SubmissionStatusRejected}
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, marked))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "older", pending[0].Topic)
	assert.Equal(t, "newer", pending[1].Topic)
}

func TestSubmissionRepository_DeleteHidesRow(t *testing.T) {
	t.Parallel()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	sub := &models.Submission{Topic: "to delete"}
	require.NoError(t, repo.Create(ctx, sub))
	require.NoError(t, repo.Delete(ctx, sub.ID))

	_, err = repo.GetByID(ctx, sub.ID)
	assert.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestOutcomeRepository_IdempotencyKey(t *testing.T) {
	t.Parallel()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := NewApprovedRepository(db)
	ctx := context.Background()

	record := &models.ApprovedRecord{
		SubmissionID: 42,
		Topic:        "t",
		Status:       models.OutcomeStatusApproved,
		Rating:       3,
	}
	require.NoError(t, repo.Append(ctx, record))

	// The submission ID is unique across the store; a double write fails.
	dup := &models.ApprovedRecord{SubmissionID: 42, Status: models.OutcomeStatusApproved}
	assert.Error(t, repo.Append(ctx, dup))

	exists, err := repo.ExistsForSubmission(ctx, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForSubmission(ctx, 43)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRejectedRepository_ListByStatus(t *testing.T) {
	t.Parallel()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := NewRejectedRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &models.RejectedRecord{
		SubmissionID:    1,
		RejectionReason: "off topic",
		Status:          models.OutcomeStatusRejected,
	}))

	records, err := repo.ListByStatus(ctx, models.OutcomeStatusRejected)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "off topic", records[0].RejectionReason)

	records, err = repo.ListByStatus(ctx, "SomethingElse")
	require.NoError(t, err)
	assert.Empty(t, records)
}
