package service

import (
	"context"
	"time"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NewGraphQLRateLimiter setup the local limiter from the graphql quota currently reported by github.
// Tokens already used (by this token elsewhere) are consumed so the local limiter matches github.
// When github does not report a graphql quota (request failed, no token), the configured hourly limit is used.
func NewGraphQLRateLimiter(ctx context.Context, cfg config.GithubConfig, githubClient *github.Client) *rate.Limiter {
	log.Debug("loading current graphql rate limit from github")

	rateLimits, _, err := githubClient.RateLimit.Get(ctx)
	if err != nil || rateLimits.GetGraphQL() == nil || rateLimits.GetGraphQL().Limit == 0 {
		log.WithError(err).WithField("hourlyLimit", cfg.DefaultHourlyLimit).Warn("github graphql rate limit unavailable, using configured hourly limit")
		return NewHourlyRateLimiter(cfg.DefaultHourlyLimit, 0)
	}

	graphQL := rateLimits.GetGraphQL()

	log.WithFields(log.Fields{
		"totalAvailable":    graphQL.Limit,
		"remainingRequests": graphQL.Remaining,
	}).Debug("will setup local rate limiter with graphql rate limits infos from github")

	return NewHourlyRateLimiter(graphQL.Limit, graphQL.Limit-graphQL.Remaining)
}

// NewHourlyRateLimiter allow limit requests per hour, with a burst of limit, and consume used tokens
// a limit lower or equal to zero disable the local limiter
func NewHourlyRateLimiter(limit int, used int) *rate.Limiter {
	if limit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	limiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(limit)), limit)

	if used > 0 {
		limiter.ReserveN(time.Now(), min(used, limit))
	}

	return limiter
}

// drainRateLimiter consume every available token, github told us the quota is exhausted
// the limiter never goes into debt, so it recovers at the refill rate like the github quota does
func drainRateLimiter(limiter *rate.Limiter) {
	if limiter.Limit() == rate.Inf {
		return
	}

	now := time.Now()
	if available := int(limiter.TokensAt(now)); available > 0 {
		limiter.ReserveN(now, available)
	}
}
