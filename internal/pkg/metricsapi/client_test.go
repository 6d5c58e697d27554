package metricsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(config.MetricsAPIConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestFetchAggregate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/aggregates/department:d1", r.URL.Path)
		assert.Equal(t, "30d", r.URL.Query().Get("time_range"))
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":{"completion_rate":77,"total_tasks":10}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	got, err := client.FetchAggregate(context.Background(), "department:d1", analytics.FilterCriteria{
		TimeRange: analytics.Range30Days,
		Status:    analytics.TaskCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 77, *got.Summary.CompletionRate)
	assert.Equal(t, 10, *got.Summary.TotalTasks)
	assert.Nil(t, got.Summary.TotalMembers)
}

func TestFetchAggregate_NotFoundMeansNoPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	got, err := client.FetchAggregate(context.Background(), "org", analytics.FilterCriteria{TimeRange: analytics.RangeAll})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFetchAggregate_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	got, err := client.FetchAggregate(context.Background(), "org", analytics.FilterCriteria{TimeRange: analytics.RangeAll})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchAggregate_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2)
	_, err := client.FetchAggregate(context.Background(), "org", analytics.FilterCriteria{TimeRange: analytics.RangeAll})
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestFetchAggregate_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("bad key"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	_, err := client.FetchAggregate(context.Background(), "org", analytics.FilterCriteria{TimeRange: analytics.RangeAll})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchAggregate_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(srv.URL, 5)
	_, err := client.FetchAggregate(ctx, "org", analytics.FilterCriteria{TimeRange: analytics.RangeAll})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
