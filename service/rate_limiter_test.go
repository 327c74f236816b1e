package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/google/go-github/v66/github"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewHourlyRateLimiter(t *testing.T) {
	t.Run("Disabled when the limit is zero", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(0, 0)

		assert.Equal(t, rate.Inf, limiter.Limit())
		assert.True(t, limiter.Allow())
	})

	t.Run("Used tokens are consumed", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(2, 1)

		assert.True(t, limiter.Allow())
		assert.False(t, limiter.Allow())
	})

	t.Run("Fully used quota", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(5, 5)

		assert.False(t, limiter.Allow())
	})

	t.Run("Drain consumes the remaining tokens", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(10, 0)
		drainRateLimiter(limiter)

		assert.False(t, limiter.Allow())
	})

	t.Run("Repeated drains do not put the limiter in debt", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(60, 59)
		drainRateLimiter(limiter)
		drainRateLimiter(limiter)

		tokens := limiter.Tokens()
		assert.GreaterOrEqual(t, tokens, 0.0)
		assert.Less(t, tokens, 1.0)
		assert.False(t, limiter.Allow())
	})

	t.Run("Drained limiter recovers after one refill interval", func(t *testing.T) {
		limiter := NewHourlyRateLimiter(3600, 0)
		drainRateLimiter(limiter)
		drainRateLimiter(limiter)

		// one token per second at 3600 requests per hour
		assert.False(t, limiter.AllowN(time.Now(), 1))
		assert.True(t, limiter.AllowN(time.Now().Add(1100*time.Millisecond), 1))
	})
}

// TestNewGraphQLRateLimiter will test function NewGraphQLRateLimiter
func TestNewGraphQLRateLimiter(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedAllow bool
		expectedBurst int
	}{
		{
			name:          "Quota reported by github",
			status:        http.StatusOK,
			body:          `{"resources": {"graphql": {"limit": 10, "remaining": 4}}}`,
			expectedAllow: true,
			expectedBurst: 10,
		},
		{
			name:          "Quota already exhausted",
			status:        http.StatusOK,
			body:          `{"resources": {"graphql": {"limit": 10, "remaining": 0}}}`,
			expectedAllow: false,
			expectedBurst: 10,
		},
		{
			name:          "No graphql quota without token",
			status:        http.StatusOK,
			body:          `{"resources": {"core": {"limit": 60, "remaining": 60}, "graphql": {"limit": 0, "remaining": 0}}}`,
			expectedAllow: true,
			expectedBurst: 5000,
		},
		{
			name:          "Github unavailable",
			status:        http.StatusServiceUnavailable,
			body:          `{"message": "unavailable"}`,
			expectedAllow: true,
			expectedBurst: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockedHTTPClient := githubMock.NewMockedHTTPClient(
				githubMock.WithRequestMatchHandler(
					githubMock.GetRateLimit,
					http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						writeJSON(t, w, tt.status, tt.body)
					}),
				),
			)

			conf := config.GetDefault()
			limiter := NewGraphQLRateLimiter(context.Background(), conf.Github, github.NewClient(mockedHTTPClient))

			assert.Equal(t, tt.expectedBurst, limiter.Burst())
			assert.Equal(t, tt.expectedAllow, limiter.Allow())
		})
	}
}
