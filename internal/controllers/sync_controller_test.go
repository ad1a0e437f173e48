package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yplanner/internal/dto"
	"yplanner/internal/entities"
	apperrors "yplanner/pkg/errors"
	"yplanner/pkg/utils"
)

type fakeSyncService struct {
	result       *dto.SyncResultDTO
	err          error
	lastBranchID uuid.UUID
	calls        int
}

func (f *fakeSyncService) Run(ctx context.Context, branchID uuid.UUID) (*dto.SyncResultDTO, error) {
	f.calls++
	f.lastBranchID = branchID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func performSync(t *testing.T, service *fakeSyncService, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = utils.NewValidator(validator.New())

	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	ctrl := NewSyncController(service, zap.NewNop())
	require.NoError(t, ctrl.HandleSync(e.NewContext(req, rec)))
	return rec
}

func TestSyncController_Success(t *testing.T) {
	branchID := uuid.New()
	service := &fakeSyncService{
		result: &dto.SyncResultDTO{
			Success:  true,
			Staff:    2,
			Services: 1,
			Bookings: 1,
			Details: dto.SyncDetailsDTO{
				Staff:    &dto.EntitySyncResultDTO{Count: 2, Status: entities.SyncOutcomeSuccess},
				Services: &dto.EntitySyncResultDTO{Count: 1, Status: entities.SyncOutcomeSuccess},
				Bookings: &dto.EntitySyncResultDTO{Count: 1, Status: entities.SyncOutcomeSuccess},
			},
		},
	}

	rec := performSync(t, service, `{"branch_id":"`+branchID.String()+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, branchID, service.lastBranchID)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.JSONEq(t, `true`, string(payload["success"]))
	assert.JSONEq(t, `2`, string(payload["staff"]))
	assert.Contains(t, payload, "details")
}

func TestSyncController_MissingBranchID(t *testing.T) {
	service := &fakeSyncService{}

	for _, body := range []string{`{}`, `{"branch_id":""}`, `не json`} {
		rec := performSync(t, service, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"branch_id is required"}`, rec.Body.String())
	}
	assert.Zero(t, service.calls)
}

func TestSyncController_InvalidUUID(t *testing.T) {
	service := &fakeSyncService{}

	rec := performSync(t, service, `{"branch_id":"не-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, service.calls)
}

func TestSyncController_PreconditionErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrBranchNotFound, http.StatusNotFound},
		{apperrors.ErrMissingCompanyID, http.StatusBadRequest},
		{apperrors.ErrMissingPartnerToken, http.StatusBadRequest},
		{apperrors.ErrMissingUserToken, http.StatusBadRequest},
		{errors.New("что-то сломалось"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := performSync(t, &fakeSyncService{err: tc.err}, `{"branch_id":"`+uuid.NewString()+`"}`)
		assert.Equal(t, tc.code, rec.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, tc.err.Error(), payload["error"])
	}
}
