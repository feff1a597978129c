//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsfusion/sportsfusion/internal/auth"
	"github.com/sportsfusion/sportsfusion/internal/dashboard"
	"github.com/sportsfusion/sportsfusion/internal/training"
)

func (s *IntegrationTestSuite) doJSON(
	ctx context.Context,
	method, path string,
	body any,
	cookie *http.Cookie,
) *http.Response {
	t := s.T()
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t require.TestingT, resp *http.Response, target any) {
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBytes, target))
}

func selectedSport(id, name, categoryID, categoryTitle string) training.SelectedSport {
	var sport training.SelectedSport
	sport.ID = id
	sport.Name = name
	sport.Category.ID = categoryID
	sport.Category.Title = categoryTitle
	return sport
}

// The whole registration journey against a real server: register, login,
// start a mixed session, register every activity through the wizard, read
// the dashboard, delete the session.
func (s *IntegrationTestSuite) TestRegistrationFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// unauthenticated dashboard requests bounce to the login page
	resp := s.doJSON(ctx, "GET", "/dashboard/sessions", nil, nil)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Fsessions", resp.Header.Get("Location"))

	// register + login
	resp = s.doJSON(ctx, "POST", "/register", auth.RegisterRequest{
		Name:     "Flow User",
		Email:    "flow@sportsfusion.app",
		Password: "testpass",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerResp auth.RegisterResponse
	decodeBody(t, resp, &registerResp)
	require.NotEmpty(t, registerResp.ID)

	resp = s.doJSON(ctx, "POST", "/a/login", auth.Credentials{
		Email:    "flow@sportsfusion.app",
		Password: "testpass",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NoError(t, resp.Body.Close())
	require.NotNil(t, sessionCookie)

	resp = s.doJSON(ctx, "GET", "/a/me", nil, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meResp auth.MeResponse
	decodeBody(t, resp, &meResp)
	assert.Equal(t, registerResp.ID, meResp.ID)
	assert.Equal(t, "flow@sportsfusion.app", meResp.Email)

	// start a session with one sport per mode
	resp = s.doJSON(ctx, "POST", "/dashboard/activities/session", training.StartSessionRequest{
		Sports: []training.SelectedSport{
			selectedSport("musculación", "Musculación", "strength", "Fuerza"),
			selectedSport("yoga", "Yoga", "duration", "Duración"),
			selectedSport("running", "Running", "distance", "Distancia + Tiempo"),
		},
	}, sessionCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var startResp training.StartSessionResponse
	decodeBody(t, resp, &startResp)
	require.NotEmpty(t, startResp.SessionID)
	require.Len(t, startResp.Activities, 3)

	activityByMode := make(map[training.Mode]training.Activity)
	for _, activity := range startResp.Activities {
		activityByMode[activity.Mode] = activity
	}
	require.Len(t, activityByMode, 3)

	// wizard starts with the strength activity
	progressPath := fmt.Sprintf("/dashboard/activities/session/%s/progress", startResp.SessionID)
	resp = s.doJSON(ctx, "GET", progressPath, nil, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var progress training.Progress
	decodeBody(t, resp, &progress)
	require.NotNil(t, progress.Next)
	assert.Equal(t, activityByMode[training.ModeStrength].ID, progress.Next.ID)
	assert.False(t, progress.Finished)

	// register all three activities
	resp = s.doJSON(ctx, "POST", "/dashboard/activities/strength", map[string]any{
		"activityId":  activityByMode[training.ModeStrength].ID,
		"series":      4,
		"repetitions": 12,
		"weight":      37.5,
	}, sessionCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.doJSON(ctx, "POST", "/dashboard/activities/duration", map[string]any{
		"activityId": activityByMode[training.ModeDuration].ID,
		"duration":   5400,
	}, sessionCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var firstDetail training.AddDetailResponse
	decodeBody(t, resp, &firstDetail)

	resp = s.doJSON(ctx, "POST", "/dashboard/activities/distance", map[string]any{
		"activityId": activityByMode[training.ModeDistance].ID,
		"distance":   5,
		"time":       1500,
		"ritmo":      300,
	}, sessionCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.doJSON(ctx, "GET", progressPath, nil, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &progress)
	assert.Nil(t, progress.Next)
	assert.True(t, progress.Finished)

	// resubmitting a registered activity stores a second row
	resp = s.doJSON(ctx, "POST", "/dashboard/activities/duration", map[string]any{
		"activityId": activityByMode[training.ModeDuration].ID,
		"duration":   5400,
	}, sessionCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var resubmitDetail training.AddDetailResponse
	decodeBody(t, resp, &resubmitDetail)
	assert.NotEqual(t, firstDetail.DetailID, resubmitDetail.DetailID)

	var durationRows int
	require.NoError(t, s.DB.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM actividades_duracion WHERE actividad_id = $1`,
		activityByMode[training.ModeDuration].ID,
	).Scan(&durationRows))
	assert.Equal(t, 2, durationRows)

	// dashboard surfaces the session with mode-shaped data
	resp = s.doJSON(ctx, "GET", "/dashboard/sessions", nil, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listResp dashboard.ListSessionsResponse
	decodeBody(t, resp, &listResp)
	require.Len(t, listResp.Sessions, 1)
	assert.Equal(t, startResp.SessionID, listResp.Sessions[0].ID)
	require.Len(t, listResp.Sessions[0].Activities, 3)

	// delete the session: every activity loses its detail rows
	deletePath := "/dashboard/activities/session/" + startResp.SessionID
	resp = s.doJSON(ctx, "DELETE", deletePath, nil, sessionCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleteResp training.DeleteSessionResponse
	decodeBody(t, resp, &deleteResp)
	assert.Equal(t, startResp.SessionID, deleteResp.DeletedID)

	for _, table := range []string{
		"actividades_fuerza",
		"actividades_duracion",
		"actividades_distancia",
	} {
		var count int
		require.NoError(t, s.DB.QueryRow(
			ctx,
			fmt.Sprintf(
				`SELECT COUNT(*) FROM %s WHERE actividad_id IN
					(SELECT id FROM actividades WHERE sesion_id = $1)`,
				table,
			),
			startResp.SessionID,
		).Scan(&count))
		assert.Zero(t, count, table)
	}

	resp = s.doJSON(ctx, "DELETE", deletePath, nil, sessionCookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
