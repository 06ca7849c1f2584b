package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velorace/internal/config"
	"velorace/internal/engine"
	"velorace/internal/model"
	"velorace/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	eng, err := engine.New(context.Background(), store.NewMemory(), engine.WithLogger(log))
	require.NoError(t, err)

	s, unsubscribe := NewServer(eng, config.Config{IOTimeout: time.Second}, log)
	t.Cleanup(unsubscribe)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func state(t *testing.T, s *Server) *model.Document {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc model.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return &doc
}

func TestStateHidesPasswords(t *testing.T) {
	s := newTestServer(t)
	doc := state(t, s)
	require.Len(t, doc.Users, 3)
	for _, u := range doc.Users {
		assert.Empty(t, u.Password)
	}
}

func TestLoginAndLogActivity(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/activities", `{"distance":5,"duration":25,"type":"Run"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/login", `{"identifier":"TrailBlazer","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/login", `{"identifier":"TrailBlazer","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res engine.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)

	rec = do(t, s, http.MethodPost, "/api/activities", `{"date":"2026-03-01","distance":5,"duration":25,"type":"Run"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var act model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &act))
	assert.Equal(t, 72, act.XPEarned)

	assert.Equal(t, 2572, state(t, s).UserByID("u1").PersonalXP)

	rec = do(t, s, http.MethodDelete, "/api/activities/"+act.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2500, state(t, s).UserByID("u1").PersonalXP)
}

func TestPurchaseRefusal(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/login", `{"identifier":"pace@example.com","password":"password123"}`)

	rec := do(t, s, http.MethodPost, "/api/cravings/cheat-meal/purchase", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/cravings/cheat-meal/purchase", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var res engine.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Need 200 Credits (You have 80)", res.Message)
	assert.False(t, res.Success)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/signup", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/signup", `{"username":"PaceMaker","email":"a@b.c","password":"p"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/signup", `{"username":"Newbie","email":"new@example.com","password":"p","location":"Kochi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, state(t, s).Communities, "Kochi-Beginner")
}

func TestInvalidBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPut, "/api/goals", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/logout", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "velorace_engine_subscribers")
}

func TestScheduleEventSweep(t *testing.T) {
	s := newTestServer(t)

	_, err := scheduleEventSweep(s.engine, "not a schedule", time.Second, s.log)
	assert.Error(t, err)

	c, err := scheduleEventSweep(s.engine, "@hourly", time.Second, s.log)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}

func TestHubOnChange(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := newHub(log)

	h.onChange(engine.Change{Operation: "addActivity"})
	msg := <-h.broadcast

	var got struct {
		Type string        `json:"type"`
		Data engine.Change `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "state-update", got.Type)
	assert.Equal(t, "addActivity", got.Data.Operation)
}
