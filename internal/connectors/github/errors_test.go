package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifiers(t *testing.T) {
	unauthorized := fmt.Errorf("fetch page 1: %w", &APIError{StatusCode: http.StatusUnauthorized})
	notFound := fmt.Errorf("get pull request 7: %w", &APIError{StatusCode: http.StatusNotFound})
	limited := &RateLimitError{StatusCode: http.StatusTooManyRequests}
	other := errors.New("connection reset")

	tests := []struct {
		name         string
		err          error
		unauthorized bool
		notFound     bool
		rateLimited  bool
	}{
		{"unauthorized", unauthorized, true, false, false},
		{"not found", notFound, false, true, false},
		{"rate limited", limited, false, false, true},
		{"other", other, false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
		})
	}
}

func TestClient_BadCredentials(t *testing.T) {
	client, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})

	_, err := client.FetchPage(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 0, client.RateLimiter().Cooldowns())
}
