// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxnetwork/staking/health"
)

type fixture struct {
	logLevel slog.LevelVar
	apiLogs  atomic.Bool
	health   *health.Health
	handler  http.Handler
}

func newFixture() *fixture {
	f := &fixture{health: health.New(time.Minute)}
	f.logLevel.Set(slog.LevelInfo)
	f.handler = HTTPHandler(&f.logLevel, &f.apiLogs, f.health)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, path, r)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestLogLevel(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/admin/loglevel", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var response logLevelResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "INFO", response.CurrentLevel)

	rr = f.do(t, http.MethodPost, "/admin/loglevel", []byte(`{"level":"debug"}`))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, "DEBUG", response.CurrentLevel)
	assert.Equal(t, slog.LevelDebug, f.logLevel.Level())

	rr = f.do(t, http.MethodPost, "/admin/loglevel", []byte(`{"level":"invalid_body"}`))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	var errResponse errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid verbosity level", errResponse.ErrorMessage)

	rr = f.do(t, http.MethodPost, "/admin/loglevel", []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPILogs(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodPost, "/admin/apilogs", []byte(`{"enabled":true}`))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.apiLogs.Load())

	rr = f.do(t, http.MethodGet, "/admin/apilogs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var response apiLogsRequest
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.True(t, response.Enabled)
}

func TestHealth(t *testing.T) {
	f := newFixture()

	rr := f.do(t, http.MethodGet, "/admin/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	f.health.DrivingStatus(true)
	f.health.NewSession(3)
	rr = f.do(t, http.MethodGet, "/admin/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status health.Status
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
	assert.True(t, status.Healthy)
	assert.Equal(t, uint32(3), *status.LastRotation.Session)
}
