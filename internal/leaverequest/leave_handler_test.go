package leaverequest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ImaneBelmiloudi/hr-management/internal/identity"
	leaveerrors "github.com/ImaneBelmiloudi/hr-management/internal/leaverequest/errors"
	"github.com/ImaneBelmiloudi/hr-management/internal/middleware"
	"github.com/ImaneBelmiloudi/hr-management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	listResp   []LeaveRequestResponse
	createResp LeaveRequestResponse
	getResp    LeaveRequestResponse
	statusResp LeaveRequestResponse
	err        error

	gotCreate CreateLeaveRequest
	gotStatus UpdateLeaveStatusRequest
	gotID     uint
	gotActor  identity.Actor
}

func (s *stubService) List(ctx context.Context, actor identity.Actor, statusFilter string) ([]LeaveRequestResponse, error) {
	s.gotActor = actor
	return s.listResp, s.err
}

func (s *stubService) Create(ctx context.Context, actor identity.Actor, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.gotActor = actor
	s.gotCreate = req
	return s.createResp, s.err
}

func (s *stubService) Get(ctx context.Context, actor identity.Actor, id uint) (LeaveRequestResponse, error) {
	s.gotActor = actor
	s.gotID = id
	return s.getResp, s.err
}

func (s *stubService) Update(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveRequest) (LeaveRequestResponse, error) {
	s.gotActor = actor
	s.gotID = id
	return s.getResp, s.err
}

func (s *stubService) UpdateStatus(ctx context.Context, actor identity.Actor, id uint, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error) {
	s.gotActor = actor
	s.gotID = id
	s.gotStatus = req
	return s.statusResp, s.err
}

func (s *stubService) Cancel(ctx context.Context, actor identity.Actor, id uint) error {
	s.gotActor = actor
	s.gotID = id
	return s.err
}

func newTestContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandlerCreate(t *testing.T) {
	svc := &stubService{createResp: LeaveRequestResponse{ID: 1, Status: "pending", Duration: 5}}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests", CreateLeaveRequest{
		Type:      "annual",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-14",
		Reason:    "family trip",
	})
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleEmployee})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Leave request submitted successfully", env.Message)
	assert.Equal(t, "annual", svc.gotCreate.Type)
	assert.Equal(t, uint(10), svc.gotActor.UserID)
}

func TestHandlerCreateMissingFields(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests", gin.H{"type": "annual"})
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleEmployee})

	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "error", decodeEnvelope(t, w).Status)
}

func TestHandlerCreateWithoutActor(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests", CreateLeaveRequest{
		Type:      "annual",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-14",
	})

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decodeEnvelope(t, w).Message)
}

func TestHandlerGetInvalidID(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/leave-requests/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleRH})

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found", decodeEnvelope(t, w).Message)
}

func TestHandlerGetNotFound(t *testing.T) {
	svc := &stubService{err: leaveerrors.ErrLeaveRequestNotFound}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/leave-requests/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleRH})

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(42), svc.gotID)
}

func TestHandlerUpdateStatus(t *testing.T) {
	svc := &stubService{statusResp: LeaveRequestResponse{ID: 1, Status: "approved"}}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests/1/status", UpdateLeaveStatusRequest{
		Status: "approved",
	})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	middleware.SetActor(c, identity.Actor{UserID: 99, Role: identity.RoleRH})

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Leave request approved successfully", env.Message)
	assert.Equal(t, "approved", svc.gotStatus.Status)
}

func TestHandlerUpdateStatusInvalidTarget(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests/1/status", gin.H{
		"status": "escalated",
	})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	middleware.SetActor(c, identity.Actor{UserID: 99, Role: identity.RoleRH})

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlerUpdateStatusForbidden(t *testing.T) {
	svc := &stubService{err: leaveerrors.ErrDecideForbidden}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodPost, "/api/leave-requests/1/status", UpdateLeaveStatusRequest{
		Status: "approved",
	})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleEmployee})

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized to update leave request status", decodeEnvelope(t, w).Message)
}

func TestHandlerCancel(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodDelete, "/api/leave-requests/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	middleware.SetActor(c, identity.Actor{UserID: 10, Role: identity.RoleEmployee})

	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Leave request cancelled successfully", decodeEnvelope(t, w).Message)
	assert.Equal(t, uint(3), svc.gotID)
}

func TestHandlerList(t *testing.T) {
	svc := &stubService{listResp: []LeaveRequestResponse{{ID: 1}, {ID: 2}}}
	h := NewHandler(svc, nil)

	c, w := newTestContext(t, http.MethodGet, "/api/leave-requests", nil)
	middleware.SetActor(c, identity.Actor{UserID: 99, Role: identity.RoleAdmin})

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	items, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}
