package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"balangay/internal/review/handler/mocks"
	"balangay/internal/review/models"
	"balangay/internal/review/service"
	id "balangay/pkg/domain"
	dErrors "balangay/pkg/domain-errors"
	"balangay/pkg/requestcontext"
)

type ReviewHandlerSuite struct {
	suite.Suite
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerSuite))
}

func newTestHandler(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger)
	r := chi.NewRouter()
	handler.RegisterAdmin(r)
	handler.RegisterResident(r)
	return r, mockService
}

func approvedOutcome(residentID id.ResidentID) *service.Outcome {
	return &service.Outcome{
		Status: &models.ProfileStatus{
			ResidentID: residentID,
			Status:     models.StatusApproved,
			UpdatedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
	}
}

func (s *ReviewHandlerSuite) TestHandleApprove() {
	router, mockService := newTestHandler(s.T())
	residentID := id.NewResidentID()

	mockService.EXPECT().
		Approve(gomock.Any(), residentID).
		Return(approvedOutcome(residentID), nil)

	req := httptest.NewRequest(http.MethodPost, "/residents/"+residentID.String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), residentID.String(), resp.ResidentID)
	assert.Equal(s.T(), 1, resp.Status)
	assert.Equal(s.T(), "approved", resp.StatusLabel)
	assert.Empty(s.T(), resp.Warning)
}

func (s *ReviewHandlerSuite) TestHandleApproveMalformedID() {
	router, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodPost, "/residents/not-a-uuid/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ReviewHandlerSuite) TestHandleReject() {
	router, mockService := newTestHandler(s.T())
	residentID := id.NewResidentID()
	reason := "photo does not match the submitted ID"

	mockService.EXPECT().
		Reject(gomock.Any(), residentID, reason).
		Return(&service.Outcome{
			Status: &models.ProfileStatus{
				ResidentID:      residentID,
				Status:          models.StatusRejected,
				RejectionReason: &reason,
				UpdatedAt:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			},
		}, nil)

	body, err := json.Marshal(ReasonRequest{Reason: reason})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/residents/"+residentID.String()+"/reject", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), 2, resp.Status)
	require.NotNil(s.T(), resp.RejectionReason)
	assert.Equal(s.T(), reason, *resp.RejectionReason)
}

func (s *ReviewHandlerSuite) TestHandleRejectEmptyReason() {
	// the service is never called for a blank reason
	router, _ := newTestHandler(s.T())
	residentID := id.NewResidentID()

	body, err := json.Marshal(ReasonRequest{Reason: "   "})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/residents/"+residentID.String()+"/reject", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ReviewHandlerSuite) TestHandleApproveConflict() {
	router, mockService := newTestHandler(s.T())
	residentID := id.NewResidentID()

	mockService.EXPECT().
		Approve(gomock.Any(), residentID).
		Return(nil, dErrors.New(dErrors.CodeInvariantViolation, "cannot approve a profile in state approved"))

	req := httptest.NewRequest(http.MethodPost, "/residents/"+residentID.String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusConflict, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeInvariantViolation), resp["error"])
}

func (s *ReviewHandlerSuite) TestHandleApproveWithNotificationWarning() {
	router, mockService := newTestHandler(s.T())
	residentID := id.NewResidentID()

	outcome := approvedOutcome(residentID)
	outcome.Warning = "resident notification could not be delivered"
	mockService.EXPECT().
		Approve(gomock.Any(), residentID).
		Return(outcome, nil)

	req := httptest.NewRequest(http.MethodPost, "/residents/"+residentID.String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// the transition committed, so the response is still a success
	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(s.T(), resp.Warning)
}

func (s *ReviewHandlerSuite) TestHandleOwnStatus() {
	router, mockService := newTestHandler(s.T())
	residentID := id.NewResidentID()

	mockService.EXPECT().
		Get(gomock.Any(), residentID).
		Return(&models.ProfileStatus{
			ResidentID: residentID,
			Status:     models.StatusPending,
			UpdatedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile/status", nil)
	req = req.WithContext(requestcontext.WithResidentID(context.Background(), residentID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), 3, resp.Status)
	assert.Equal(s.T(), "pending", resp.StatusLabel)
}

func (s *ReviewHandlerSuite) TestHandleOwnStatusUnauthenticated() {
	router, _ := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodGet, "/profile/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}
