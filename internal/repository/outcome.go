package repository

import (
	"context"

	"newsdesk/internal/models"

	"gorm.io/gorm"
)

// Outcome store adapters are append-and-read only. No update or delete is
// exposed: finalized decisions are an immutable audit trail. Callers must not
// assume any ordering from ListByStatus beyond store default.

// ApprovedRepository is the adapter for the approved outcome store.
type ApprovedRepository interface {
	Append(ctx context.Context, record *models.ApprovedRecord) error
	ListByStatus(ctx context.Context, status string) ([]models.ApprovedRecord, error)
	ExistsForSubmission(ctx context.Context, submissionID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// RejectedRepository is the adapter for the rejected outcome store.
type RejectedRepository interface {
	Append(ctx context.Context, record *models.RejectedRecord) error
	ListByStatus(ctx context.Context, status string) ([]models.RejectedRecord, error)
	ExistsForSubmission(ctx context.Context, submissionID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type approvedRepository struct {
	db *gorm.DB
}

// NewApprovedRepository creates a new approved-store adapter.
func NewApprovedRepository(db *gorm.DB) ApprovedRepository {
	return &approvedRepository{db: db}
}

func (r *approvedRepository) Append(ctx context.Context, record *models.ApprovedRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *approvedRepository) ListByStatus(ctx context.Context, status string) ([]models.ApprovedRecord, error) {
	var records []models.ApprovedRecord
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&records).Error
	return records, err
}

func (r *approvedRepository) ExistsForSubmission(ctx context.Context, submissionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ApprovedRecord{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count > 0, err
}

func (r *approvedRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ApprovedRecord{}).Count(&count).Error
	return count, err
}

type rejectedRepository struct {
	db *gorm.DB
}

// NewRejectedRepository creates a new rejected-store adapter.
func NewRejectedRepository(db *gorm.DB) RejectedRepository {
	return &rejectedRepository{db: db}
}

func (r *rejectedRepository) Append(ctx context.Context, record *models.RejectedRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *rejectedRepository) ListByStatus(ctx context.Context, status string) ([]models.RejectedRecord, error) {
	var records []models.RejectedRecord
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&records).Error
	return records, err
}

func (r *rejectedRepository) ExistsForSubmission(ctx context.Context, submissionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RejectedRecord{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count > 0, err
}

func (r *rejectedRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RejectedRecord{}).Count(&count).Error
	return count, err
}
