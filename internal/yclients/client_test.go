package yclients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yplanner/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.YClientsConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestClient_FetchStaff_EnvelopeResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/company/123/staff", r.URL.Path)
		assert.Equal(t, "Bearer partner, User user", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.yclients.v2+json", r.Header.Get("Accept"))

		w.Write([]byte(`{"success":true,"data":[
			{"id":10,"name":"Анна","is_active":1},
			{"id":11,"name":"Борис","is_active":"0"}
		]}`))
	})

	staff, err := client.FetchStaff(context.Background(), 123, Auth{PartnerToken: "partner", UserToken: "user"})
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, int64(10), staff[0].ID)
	assert.Equal(t, "Анна", staff[0].Name)
	require.NotNil(t, staff[0].IsActive)
	assert.True(t, bool(*staff[0].IsActive))
	require.NotNil(t, staff[1].IsActive)
	assert.False(t, bool(*staff[1].IsActive))
}

func TestClient_FetchServices_KeyedObjectData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/company/123/services", r.URL.Path)
		// data — объект, значения которого и есть записи.
		w.Write([]byte(`{"success":true,"data":{
			"20":{"id":20,"title":"Стрижка","seance_length":"45"},
			"21":{"id":21,"name":"Окрашивание","duration":90,"online":true}
		}}`))
	})

	services, err := client.FetchServices(context.Background(), 123, Auth{PartnerToken: "partner"})
	require.NoError(t, err)
	require.Len(t, services, 2)

	byID := map[int64]ServiceRecord{}
	for _, s := range services {
		byID[s.ID] = s
	}
	assert.Equal(t, "Стрижка", byID[20].Title)
	assert.Equal(t, 45, int(byID[20].SeanceLength))
	assert.Equal(t, "Окрашивание", byID[21].Name)
	assert.Equal(t, 90, int(byID[21].Duration))
	assert.True(t, bool(byID[21].Online))
}

func TestClient_FetchRecords_DirectListAndDateParams(t *testing.T) {
	from := time.Date(2025, 5, 16, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/records/123", r.URL.Path)
		assert.Equal(t, "2025-05-16", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-07-15", r.URL.Query().Get("end_date"))

		// Ответ без конверта — сразу список.
		w.Write([]byte(`[{"id":100,"staff_id":10,"datetime":"2025-06-01T10:00:00","attendance":1,
			"services":[{"id":20}],"seance_length":45,
			"client":{"name":"Иван","phone":"+79990001122"}}]`))
	})

	records, err := client.FetchRecords(context.Background(), 123, Auth{PartnerToken: "p", UserToken: "u"}, from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(100), records[0].ID)
	assert.Equal(t, int64(10), records[0].StaffID)
	assert.Equal(t, 1, records[0].Attendance)
	require.NotNil(t, records[0].Client)
	assert.Equal(t, "Иван", records[0].Client.Name)
}

func TestClient_RejectedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"meta":{"message":"Недостаточно прав"}}`))
	})

	_, err := client.FetchStaff(context.Background(), 123, Auth{PartnerToken: "p"})
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "staff", rejected.Endpoint)
	assert.Equal(t, "Недостаточно прав", rejected.Message)
}

func TestClient_RejectedResponse_WithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	_, err := client.FetchServices(context.Background(), 123, Auth{PartnerToken: "p"})
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Unknown error", rejected.Message)
}

func TestClient_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal"}`))
	})

	_, err := client.FetchStaff(context.Background(), 123, Auth{PartnerToken: "p"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "staff", apiErr.Endpoint)
}

func TestClient_RecordsForbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false}`))
	})

	now := time.Now()
	_, err := client.FetchRecords(context.Background(), 123, Auth{PartnerToken: "p", UserToken: "u"}, now, now)

	var denied *PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	assert.Contains(t, err.Error(), "User Token")
}

// 403 на staff/services — обычный APIError: специальная диагностика
// прав относится только к эндпоинту записей.
func TestClient_StaffForbidden_IsPlainAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.FetchStaff(context.Background(), 123, Auth{PartnerToken: "p"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	var denied *PermissionDeniedError
	assert.False(t, errors.As(err, &denied))
}

func TestClient_SkipsMalformedRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":10,"name":"Анна"},"мусор",{"id":11,"name":"Борис"}]}`))
	})

	staff, err := client.FetchStaff(context.Background(), 123, Auth{PartnerToken: "p"})
	require.NoError(t, err)
	assert.Len(t, staff, 2)
}
