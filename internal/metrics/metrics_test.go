// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHash(OpHash, time.Millisecond)
		m.RecordAuth(FlowLogin, ResultSuccess)
		m.RecordTokenIssued()
		m.RecordTokensRevoked(3)
		m.RecordVersionConflict()
		m.RecordHTTP(http.MethodGet, "/api/users/me", http.StatusOK, time.Millisecond)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.RecordAuth(FlowLogin, ResultFailure)
	m.RecordAuth(FlowLogin, ResultFailure)
	m.RecordAuth(FlowLogin, ResultSuccess)
	m.RecordTokenIssued()
	m.RecordTokensRevoked(2)
	m.RecordTokensRevoked(0)
	m.RecordVersionConflict()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authAttempts.WithLabelValues(FlowLogin, ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authAttempts.WithLabelValues(FlowLogin, ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokensIssued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tokensRevoked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.versionConflicts))
}

func TestMetrics_Histograms(t *testing.T) {
	m := New()

	m.RecordHash(OpHash, 50*time.Millisecond)
	m.RecordHash(OpVerify, 40*time.Millisecond)
	m.RecordHTTP(http.MethodPost, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.hashDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodPost, "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordTokenIssued()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "shelf_auth_tokens_issued_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
