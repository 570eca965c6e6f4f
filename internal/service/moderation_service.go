// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsdesk/internal/cache"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/notifications"
	"newsdesk/internal/observability"
	"newsdesk/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ModerationService drives the submission lifecycle: pending items are edited
// and deleted freely, approval and rejection run as a two-step
// request-then-finalize flow, and finalized items move atomically into the
// outcome stores.
type ModerationService struct {
	db          *gorm.DB
	submissions repository.SubmissionRepository
	approved    repository.ApprovedRepository
	rejected    repository.RejectedRepository
	notifier    *notifications.Notifier
	hub         *notifications.SnapshotHub
}

// NewModerationService returns a new ModerationService. notifier and hub may
// be nil; change fan-out is then skipped.
func NewModerationService(
	db *gorm.DB,
	submissions repository.SubmissionRepository,
	approved repository.ApprovedRepository,
	rejected repository.RejectedRepository,
	notifier *notifications.Notifier,
	hub *notifications.SnapshotHub,
) *ModerationService {
	return &ModerationService{
		db:          db,
		submissions: submissions,
		approved:    approved,
		rejected:    rejected,
		notifier:    notifier,
		hub:         hub,
	}
}

// notifyPendingChanged fans a pending-queue change out to every consumer:
// cache keys are dropped, the local hub rebroadcasts, and other replicas are
// signalled over Redis. Best-effort; the mutation has already committed.
func (s *ModerationService) notifyPendingChanged(ctx context.Context) {
	cache.InvalidateModeration(ctx)
	if s.hub != nil {
		s.hub.NotifyChanged(ctx)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishPendingChanged(ctx); err != nil {
			middleware.Logger.Warn("pending-changed publish failed", "error", err.Error())
		}
	}
}

// missingFields lists the required submission fields that are empty.
func missingFields(sub *models.Submission) []string {
	var missing []string
	if sub.Topic == "" {
		missing = append(missing, "topic")
	}
	if sub.Reporter == "" {
		missing = append(missing, "reporter")
	}
	if sub.Content == "" {
		missing = append(missing, "content")
	}
	if sub.Image == "" {
		missing = append(missing, "image")
	}
	return missing
}

func (s *ModerationService) getSubmission(ctx context.Context, id uint) (*models.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("submission", id)
		}
		return nil, models.NewPersistenceError("get submission", err)
	}
	return sub, nil
}

// GetSubmission returns a single submission by ID.
func (s *ModerationService) GetSubmission(ctx context.Context, id uint) (*models.Submission, error) {
	return s.getSubmission(ctx, id)
}

// ListSubmissions returns a page of submissions, newest first.
func (s *ModerationService) ListSubmissions(ctx context.Context, limit, offset int) ([]models.Submission, error) {
	subs, err := s.submissions.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewPersistenceError("list submissions", err)
	}
	return subs, nil
}

// ListPending returns the full pending queue, oldest first. This is the
// snapshot shape pushed to subscribers on every change.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.submissions.ListPending(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("list pending", err)
	}
	return subs, nil
}

// CreateSubmission stores a new submission. Status defaults to pending;
// incomplete drafts are accepted and gated later at approval time.
func (s *ModerationService) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	span, ctx := observability.NewSpan(ctx, "moderation.CreateSubmission")
	defer span.End()

	if sub.Status == "" {
		sub.Status = models.SubmissionStatusPending
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		span.SetError(err)
		return models.NewPersistenceError("create submission", err)
	}
	span.AddAttributes(attribute.Int("submission.id", int(sub.ID)))
	s.notifyPendingChanged(ctx)
	return nil
}

// EditSubmission overwrites a pending submission's editable fields. An empty
// status on the input resets the submission to pending.
func (s *ModerationService) EditSubmission(ctx context.Context, id uint, input *models.Submission) (*models.Submission, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.EditSubmission")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(id)))

	sub, err := s.getSubmission(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	sub.Topic = input.Topic
	sub.Reporter = input.Reporter
	sub.Content = input.Content
	sub.Image = input.Image
	sub.Status = input.Status
	if sub.Status == "" {
		sub.Status = models.SubmissionStatusPending
	}

	if err := s.submissions.Update(ctx, sub); err != nil {
		span.SetError(err)
		return nil, models.NewPersistenceError("update submission", err)
	}
	s.notifyPendingChanged(ctx)
	return sub, nil
}

// DeleteSubmission removes a submission without any moderation gate.
func (s *ModerationService) DeleteSubmission(ctx context.Context, id uint) error {
	span, ctx := observability.NewSpan(ctx, "moderation.DeleteSubmission")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(id)))

	if _, err := s.getSubmission(ctx, id); err != nil {
		span.SetError(err)
		return err
	}
	if err := s.submissions.Delete(ctx, id); err != nil {
		span.SetError(err)
		return models.NewPersistenceError("delete submission", err)
	}
	s.notifyPendingChanged(ctx)
	return nil
}

// RequestApproval gates entry to the approval flow. The submission must carry
// every required field; otherwise the request is refused and nothing is
// mutated. On success it returns a decision payload prefilled from the stored
// submission, ready for feedback and rating.
func (s *ModerationService) RequestApproval(ctx context.Context, id uint) (*models.ModerationDecision, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.RequestApproval")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(id)))

	sub, err := s.getSubmission(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if missing := missingFields(sub); len(missing) > 0 {
		middleware.ModerationValidationFailures.WithLabelValues("request_approval").Inc()
		err := models.NewValidationError(fmt.Sprintf("submission is incomplete, missing: %s", strings.Join(missing, ", ")))
		span.SetError(err)
		return nil, err
	}

	return &models.ModerationDecision{
		SubmissionID: sub.ID,
		Topic:        sub.Topic,
		Reporter:     sub.Reporter,
		Content:      sub.Content,
		Image:        sub.Image,
	}, nil
}

// FinalizeApproval commits an approval: it re-validates the stored submission,
// checks the rating, then writes the approved record and removes the source in
// one transaction. Retrying a finalize whose record already exists returns the
// existing record unchanged.
func (s *ModerationService) FinalizeApproval(ctx context.Context, decision *models.ModerationDecision) (*models.ApprovedRecord, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.FinalizeApproval")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(decision.SubmissionID)))

	if decision.Rating < 0 || decision.Rating > 5 {
		middleware.ModerationValidationFailures.WithLabelValues("finalize_approval").Inc()
		err := models.NewValidationError(fmt.Sprintf("rating must be between 0 and 5, got %d", decision.Rating))
		span.SetError(err)
		return nil, err
	}

	// Retried finalize: the outcome already exists, only the source cleanup
	// may be outstanding.
	if existing, done, err := s.existingApproval(ctx, decision.SubmissionID); err != nil {
		span.SetError(err)
		return nil, err
	} else if done {
		return existing, nil
	}

	sub, err := s.getSubmission(ctx, decision.SubmissionID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if missing := missingFields(sub); len(missing) > 0 {
		middleware.ModerationValidationFailures.WithLabelValues("finalize_approval").Inc()
		err := models.NewValidationError(fmt.Sprintf("submission is incomplete, missing: %s", strings.Join(missing, ", ")))
		span.SetError(err)
		return nil, err
	}

	record := &models.ApprovedRecord{
		SubmissionID: sub.ID,
		Topic:        sub.Topic,
		Content:      sub.Content,
		Reporter:     sub.Reporter,
		Image:        sub.Image,
		Status:       models.OutcomeStatusApproved,
		Feedback:     decision.Feedback,
		Rating:       decision.Rating,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewApprovedRepository(tx).Append(ctx, record); err != nil {
			return err
		}
		return repository.NewSubmissionRepository(tx).Delete(ctx, sub.ID)
	})
	if err != nil {
		span.SetError(err)
		return nil, models.NewPersistenceError("finalize approval", err)
	}

	middleware.ModerationDecisions.WithLabelValues("approved").Inc()
	middleware.Logger.Info("submission approved",
		"submission_id", sub.ID,
		"rating", decision.Rating,
	)
	s.notifyPendingChanged(ctx)
	return record, nil
}

// existingApproval returns the already-written approved record for a
// submission, cleaning up a surviving source row if the earlier finalize died
// between its two writes.
func (s *ModerationService) existingApproval(ctx context.Context, submissionID uint) (*models.ApprovedRecord, bool, error) {
	exists, err := s.approved.ExistsForSubmission(ctx, submissionID)
	if err != nil {
		return nil, false, models.NewPersistenceError("check approved record", err)
	}
	if !exists {
		return nil, false, nil
	}

	var record models.ApprovedRecord
	if err := s.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&record).Error; err != nil {
		return nil, false, models.NewPersistenceError("load approved record", err)
	}
	if err := s.submissions.Delete(ctx, submissionID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, models.NewPersistenceError("delete submission", err)
	}
	return &record, true, nil
}

// RequestRejection opens the rejection flow. Unlike approval there is no
// completeness gate: anything can be rejected.
func (s *ModerationService) RequestRejection(ctx context.Context, id uint) (*models.ModerationDecision, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.RequestRejection")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(id)))

	sub, err := s.getSubmission(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &models.ModerationDecision{
		SubmissionID: sub.ID,
		Topic:        sub.Topic,
		Reporter:     sub.Reporter,
		Content:      sub.Content,
		Image:        sub.Image,
	}, nil
}

// FinalizeRejection commits a rejection. The reason is mandatory after
// trimming. The submission is marked rejected, the rejected record written and
// the source removed in one transaction. Idempotent on retry.
func (s *ModerationService) FinalizeRejection(ctx context.Context, id uint, reason string) (*models.RejectedRecord, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.FinalizeRejection")
	defer span.End()
	span.AddAttributes(attribute.Int("submission.id", int(id)))

	reason = strings.TrimSpace(reason)
	if reason == "" {
		middleware.ModerationValidationFailures.WithLabelValues("finalize_rejection").Inc()
		err := models.NewValidationError("rejection reason is required")
		span.SetError(err)
		return nil, err
	}

	if existing, done, err := s.existingRejection(ctx, id); err != nil {
		span.SetError(err)
		return nil, err
	} else if done {
		return existing, nil
	}

	sub, err := s.getSubmission(ctx, id)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	record := &models.RejectedRecord{
		SubmissionID:    sub.ID,
		Topic:           sub.Topic,
		Content:         sub.Content,
		Reporter:        sub.Reporter,
		Image:           sub.Image,
		RejectionReason: reason,
		Status:          models.OutcomeStatusRejected,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txSubs := repository.NewSubmissionRepository(tx)
		if err := txSubs.UpdateStatus(ctx, sub.ID, models.SubmissionStatusRejected); err != nil {
			return err
		}
		if err := repository.NewRejectedRepository(tx).Append(ctx, record); err != nil {
			return err
		}
		return txSubs.Delete(ctx, sub.ID)
	})
	if err != nil {
		span.SetError(err)
		return nil, models.NewPersistenceError("finalize rejection", err)
	}

	middleware.ModerationDecisions.WithLabelValues("rejected").Inc()
	middleware.Logger.Info("submission rejected",
		"submission_id", sub.ID,
		"reason", reason,
	)
	s.notifyPendingChanged(ctx)
	return record, nil
}

func (s *ModerationService) existingRejection(ctx context.Context, submissionID uint) (*models.RejectedRecord, bool, error) {
	exists, err := s.rejected.ExistsForSubmission(ctx, submissionID)
	if err != nil {
		return nil, false, models.NewPersistenceError("check rejected record", err)
	}
	if !exists {
		return nil, false, nil
	}

	var record models.RejectedRecord
	if err := s.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&record).Error; err != nil {
		return nil, false, models.NewPersistenceError("load rejected record", err)
	}
	if err := s.submissions.Delete(ctx, submissionID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, models.NewPersistenceError("delete submission", err)
	}
	return &record, true, nil
}

// ListApproved returns all approved outcome records, cached briefly.
func (s *ModerationService) ListApproved(ctx context.Context) ([]models.ApprovedRecord, error) {
	var records []models.ApprovedRecord
	err := cache.CacheAside(ctx, cache.ApprovedListKey, &records, cache.OutcomeListTTL, func() error {
		var err error
		records, err = s.approved.ListByStatus(ctx, models.OutcomeStatusApproved)
		return err
	})
	if err != nil {
		return nil, models.NewPersistenceError("list approved", err)
	}
	return records, nil
}

// ListRejected returns all rejected outcome records, cached briefly.
func (s *ModerationService) ListRejected(ctx context.Context) ([]models.RejectedRecord, error) {
	var records []models.RejectedRecord
	err := cache.CacheAside(ctx, cache.RejectedListKey, &records, cache.OutcomeListTTL, func() error {
		var err error
		records, err = s.rejected.ListByStatus(ctx, models.OutcomeStatusRejected)
		return err
	})
	if err != nil {
		return nil, models.NewPersistenceError("list rejected", err)
	}
	return records, nil
}

// Reconcile sweeps the submission store for rows whose outcome record already
// exists, the residue of a finalize that crashed between its writes, and
// removes them. Returns the number of rows cleaned up. Run at startup and on
// demand.
func (s *ModerationService) Reconcile(ctx context.Context) (int, error) {
	span, ctx := observability.NewSpan(ctx, "moderation.Reconcile")
	defer span.End()

	subs, err := s.submissions.List(ctx, -1, 0)
	if err != nil {
		span.SetError(err)
		return 0, models.NewPersistenceError("list submissions", err)
	}

	cleaned := 0
	for i := range subs {
		sub := &subs[i]

		approved, err := s.approved.ExistsForSubmission(ctx, sub.ID)
		if err != nil {
			span.SetError(err)
			return cleaned, models.NewPersistenceError("check approved record", err)
		}
		rejected := false
		if !approved {
			rejected, err = s.rejected.ExistsForSubmission(ctx, sub.ID)
			if err != nil {
				span.SetError(err)
				return cleaned, models.NewPersistenceError("check rejected record", err)
			}
		}
		if !approved && !rejected {
			continue
		}

		partial := models.NewPartialCompletionError(sub.ID)
		middleware.Logger.Warn("reconciling partially finalized submission",
			"submission_id", sub.ID,
			"error", partial.Error(),
		)
		if err := s.submissions.Delete(ctx, sub.ID); err != nil {
			span.SetError(err)
			return cleaned, models.NewPersistenceError("delete submission", err)
		}
		cleaned++
	}

	span.AddAttributes(attribute.Int("reconcile.cleaned", cleaned))
	if cleaned > 0 {
		s.notifyPendingChanged(ctx)
	}
	return cleaned, nil
}
