package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/models"
	"newsdesk/internal/notifications"
	"newsdesk/internal/repository"
	"newsdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestServer(t *testing.T) (*Server, *fiber.App, string) {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret-key-at-least-32-chars!!",
		Port:      "8460",
		Env:       "test",
	}

	s := &Server{
		config:         cfg,
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		submissionRepo: repository.NewSubmissionRepository(db),
		approvedRepo:   repository.NewApprovedRepository(db),
		rejectedRepo:   repository.NewRejectedRepository(db),
	}
	s.snapshotHub = notifications.NewSnapshotHub(s.submissionRepo.ListPending)
	s.hubs = []wireableHub{s.snapshotHub}
	s.moderationService = service.NewModerationService(
		db, s.submissionRepo, s.approvedRepo, s.rejectedRepo, nil, s.snapshotHub)
	s.userService = service.NewUserService(s.userRepo)
	s.statsService = service.NewStatsService(
		s.userRepo, s.submissionRepo, s.approvedRepo, s.rejectedRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	hash, err := bcrypt.GenerateFromPassword([]byte("AdminPass123!!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: string(hash), IsAdmin: true}
	require.NoError(t, db.Create(admin).Error)

	token, err := s.generateToken(admin.ID, admin.Name)
	require.NoError(t, err)

	return s, app, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func completeSubmissionBody() map[string]any {
	return map[string]any{
		"topic":    "Harbor expansion approved",
		"reporter": "Lee Osei",
		"content":  "The port authority signed off on the expansion after two years of review.",
		"image":    "data:image/png;base64,iVBORw0KGgo=",
	}
}

func TestModerationFlowOverHTTP(t *testing.T) {
	t.Parallel()
	_, app, token := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, completeSubmissionBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Submission](t, resp)
	assert.Equal(t, models.SubmissionStatusPending, created.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/submissions/pending", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending := decodeBody[[]models.Submission](t, resp)
	require.Len(t, pending, 1)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/approval-request", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decision := decodeBody[models.ModerationDecision](t, resp)
	assert.Equal(t, created.ID, decision.SubmissionID)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/approve", created.ID), token,
		map[string]any{"feedback": "Good coverage", "rating": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	record := decodeBody[models.ApprovedRecord](t, resp)
	assert.Equal(t, models.OutcomeStatusApproved, record.Status)
	assert.Equal(t, "Good coverage", record.Feedback)
	assert.Equal(t, 4, record.Rating)

	resp = doJSON(t, app, http.MethodGet, "/api/approved", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeBody[[]models.ApprovedRecord](t, resp)
	require.Len(t, approved, 1)

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/submissions/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody[service.DashboardStats](t, resp)
	assert.EqualValues(t, 1, stats.Approved)
	assert.EqualValues(t, 0, stats.Pending)
}

func TestApprovalRequestIncompleteSubmission(t *testing.T) {
	t.Parallel()
	_, app, token := setupTestServer(t)

	body := completeSubmissionBody()
	body["image"] = ""
	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[models.Submission](t, resp)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/approval-request", created.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errResp := decodeBody[models.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
}

func TestApproveRatingOutOfRange(t *testing.T) {
	t.Parallel()
	_, app, token := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, completeSubmissionBody())
	created := decodeBody[models.Submission](t, resp)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/approve", created.ID), token,
		map[string]any{"feedback": "x", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing moved.
	resp = doJSON(t, app, http.MethodGet, "/api/approved", token, nil)
	approved := decodeBody[[]models.ApprovedRecord](t, resp)
	assert.Empty(t, approved)
}

func TestRejectFlowOverHTTP(t *testing.T) {
	t.Parallel()
	_, app, token := setupTestServer(t)

	// Incomplete submissions can still be rejected.
	body := completeSubmissionBody()
	body["content"] = ""
	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, body)
	created := decodeBody[models.Submission](t, resp)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/rejection-request", created.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/reject", created.ID), token,
		map[string]any{"reason": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/submissions/%d/reject", created.ID), token,
		map[string]any{"reason": "Unverified source"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	record := decodeBody[models.RejectedRecord](t, resp)
	assert.Equal(t, "Unverified source", record.RejectionReason)
	assert.Equal(t, models.OutcomeStatusRejected, record.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/rejected", token, nil)
	rejected := decodeBody[[]models.RejectedRecord](t, resp)
	require.Len(t, rejected, 1)
}

func TestUpdateAndDeleteSubmission(t *testing.T) {
	t.Parallel()
	_, app, token := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, completeSubmissionBody())
	created := decodeBody[models.Submission](t, resp)

	update := completeSubmissionBody()
	update["topic"] = "Harbor expansion delayed"
	resp = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/api/submissions/%d", created.ID), token, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.Submission](t, resp)
	assert.Equal(t, "Harbor expansion delayed", updated.Topic)
	assert.Equal(t, models.SubmissionStatusPending, updated.Status)

	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/submissions/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/submissions/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReconcileEndpoint(t *testing.T) {
	t.Parallel()
	s, app, token := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", token, completeSubmissionBody())
	created := decodeBody[models.Submission](t, resp)

	// Outcome record exists but the source row survived.
	require.NoError(t, s.db.Create(&models.RejectedRecord{
		SubmissionID:    created.ID,
		Topic:           created.Topic,
		RejectionReason: "stale",
		Status:          models.OutcomeStatusRejected,
	}).Error)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/reconcile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[map[string]int](t, resp)
	assert.Equal(t, 1, result["cleaned"])

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/submissions/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/submissions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
