package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(nil)

	server := newTestServer(t, testServerDeps{store: store, redis: mr})
	recorder := doJSON(server, http.MethodGet, "/v1/healthz", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"ok"}`, recorder.Body.String())
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	mr := miniredis.RunT(t)
	store := new(MockStore)
	store.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	server := newTestServer(t, testServerDeps{store: store, redis: mr})
	recorder := doJSON(server, http.MethodGet, "/v1/healthz", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"status":"unavailable","database":"unavailable","redis":"ok"}`, recorder.Body.String())
}
