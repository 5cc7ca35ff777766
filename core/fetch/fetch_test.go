package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(attempts int) *Client {
	return New(5*time.Second, attempts, time.Millisecond, zap.NewNop())
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	outcome, body, err := newTestClient(3).Get(context.Background(), srv.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, OK, outcome)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	outcome, _, err := newTestClient(4).Get(context.Background(), srv.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, OK, outcome)
	assert.Equal(t, 3, calls)
}

func TestGet_NotFoundNoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	outcome, body, err := newTestClient(4).Get(context.Background(), srv.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, NotFound, outcome)
	assert.Nil(t, body)
	assert.Equal(t, 1, calls, "4xx must not be retried")
}

func TestGet_RateLimitExhausted(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	outcome, _, err := newTestClient(3).Get(context.Background(), srv.URL, nil)
	assert.Error(t, err)
	assert.Equal(t, RateLimited, outcome)
	assert.Equal(t, 3, calls)
}

func TestGet_EmptyBodyIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outcome, _, err := newTestClient(2).Get(context.Background(), srv.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, NotFound, outcome)
}

func TestGet_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(5*time.Second, 5, time.Second, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, err := c.Get(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
