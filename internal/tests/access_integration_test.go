//go:build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assetflow-api/internal/models"
	"assetflow-api/internal/realtime"
	"assetflow-api/internal/testutil"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAccessRequest(t *testing.T, first, last string) models.AccessRequest {
	t.Helper()
	w := doJSON(t, "POST", "/access-requests", models.CreateAccessRequest{
		EmployeeFirstName: first,
		EmployeeLastName:  last,
		Department:        strPtr("IT"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var a models.AccessRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	return a
}

func TestAccessRequestWorkflow(t *testing.T) {
	testutil.RequireIntegration(t)

	a := createTestAccessRequest(t, "Priya", "Nair")
	assert.Equal(t, "pending", a.Status)
	assert.True(t, strings.HasPrefix(a.RequestNumber, "SAR-"))

	path := fmt.Sprintf("/access-requests/%d/status", a.ID)

	w := doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "in_progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var approved models.AccessRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	assert.NotNil(t, approved.ApprovedAt)

	// approved requests can only complete
	w = doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "rejected", Reason: strPtr("late")})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAccessRequestEventsPublished(t *testing.T) {
	testutil.RequireIntegration(t)

	srv := httptest.NewServer(testServer.Router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// let the registration land before mutating anything
	time.Sleep(50 * time.Millisecond)

	nextEvent := func() realtime.Event {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var ev realtime.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	}

	a := createTestAccessRequest(t, "Omar", "Hassan")
	ev := nextEvent()
	assert.Equal(t, realtime.EventInsert, ev.Type)
	assert.Equal(t, "access_requests", ev.Table)
	assert.NotNil(t, ev.New)

	path := fmt.Sprintf("/access-requests/%d/status", a.ID)
	w := doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "in_progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ev = nextEvent()
	assert.Equal(t, realtime.EventUpdate, ev.Type)
	assert.Equal(t, "access_requests", ev.Table)

	w = doJSON(t, "DELETE", fmt.Sprintf("/access-requests/%d", a.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	ev = nextEvent()
	assert.Equal(t, realtime.EventDelete, ev.Type)
	assert.Equal(t, "access_requests", ev.Table)
	assert.NotNil(t, ev.Old)
	assert.Nil(t, ev.New)
}

func TestAccessRequestRejectionNeedsReason(t *testing.T) {
	testutil.RequireIntegration(t)

	a := createTestAccessRequest(t, "Lena", "Koch")
	path := fmt.Sprintf("/access-requests/%d/status", a.ID)

	w := doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "rejected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, "PUT", path, models.UpdateAccessRequestStatus{Status: "rejected", Reason: strPtr("duplicate request")})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rejected models.AccessRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejected))
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "duplicate request", *rejected.RejectionReason)
}
