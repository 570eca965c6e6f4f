// Package repository contains data-access interfaces and their GORM implementations.
package repository

import (
	"context"

	"newsdesk/internal/models"

	"gorm.io/gorm"
)

// SubmissionRepository defines the interface for submission store operations.
// The moderation engine is the only writer.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	List(ctx context.Context, limit, offset int) ([]models.Submission, error)
	ListPending(ctx context.Context) ([]models.Submission, error)
	Update(ctx context.Context, submission *models.Submission) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.Status == "" {
		submission.Status = models.SubmissionStatusPending
	}
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) List(ctx context.Context, limit, offset int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListPending(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where("status = ?", models.SubmissionStatusPending).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *submissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Submission{}, id).Error
}

func (r *submissionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Count(&count).Error
	return count, err
}

func (r *submissionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
