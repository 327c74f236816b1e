package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/Scalingo/sclng-yearly-stats/model"
	"github.com/Scalingo/sclng-yearly-stats/stats"
	"github.com/google/go-github/v66/github"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

type StatsService interface {
	FetchStats(ctx context.Context, username string) (model.StatsRecord, error)
	FetchStatsBatch(ctx context.Context, usernames []string) ([]model.BatchStatsResult, error)
}

type statsService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config

	// concurrent calls for the same username share one upstream request
	inflight *singleflight.Group
}

// NewStatsService build the service issuing the graphql user stats query
// a single query is sent for each username, there is no retry: failures are classified and returned
func NewStatsService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) StatsService {
	return statsService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
		inflight:          &singleflight.Group{},
	}
}

func (s statsService) FetchStats(ctx context.Context, username string) (model.StatsRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.StatsRecord{}, model.NewStatsError(model.ErrorKindInvalidInput, "Username is required", nil)
	}

	// github logins are case insensitive
	result, err, shared := s.inflight.Do(strings.ToLower(username), func() (interface{}, error) {
		return s.fetchStats(ctx, username)
	})

	if shared {
		log.WithField("username", username).Debug("stats request shared with an in-flight request")
	}

	if err != nil {
		return model.StatsRecord{}, err
	}

	return result.(model.StatsRecord), nil
}

// fetchStats execute the graphql query and aggregate the answer
func (s statsService) fetchStats(ctx context.Context, username string) (model.StatsRecord, error) {
	if !s.githubRateLimiter.Allow() {
		log.WithField("username", username).Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return model.StatsRecord{}, model.NewStatsError(
			model.ErrorKindRateLimited,
			"github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
			nil,
		)
	}

	log.WithFields(log.Fields{
		"username": username,
		"year":     s.config.Github.Year,
	}).Info("fetch yearly stats from github")

	// the upstream call is detached from the caller cancellation since its result can be shared
	requestCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx),
		time.Duration(s.config.Github.RequestTimeoutSeconds)*time.Second,
	)
	defer cancel()

	req, err := s.githubClient.NewRequest(http.MethodPost, graphQLPath, NewUserStatsRequest(username, s.config.Github))
	if err != nil {
		log.WithError(err).Error("unable to build github graphql request")
		return model.StatsRecord{}, model.NewStatsError(model.ErrorKindUpstreamFailure, "unable to build GitHub request", err)
	}

	var response model.UserStatsResponse
	if _, err := s.githubClient.Do(requestCtx, req, &response); err != nil {
		return model.StatsRecord{}, s.handleRequestErrors(username, err)
	}

	s.trackRateLimit(response.Data)

	if len(response.Errors) > 0 {
		return model.StatsRecord{}, s.handleRequestErrors(username, GraphQLErrors(response.Errors))
	}

	if response.Data == nil || response.Data.User == nil {
		log.WithField("username", username).Info("github user not found")
		return model.StatsRecord{}, model.NewStatsError(model.ErrorKindNotFound, "User not found", nil)
	}

	return stats.Aggregate(*response.Data.User, s.config.Github.Year), nil
}

// FetchStatsBatch fetch the stats of several usernames using goroutines
// the number of parallel requests is limited by MaxParallelTasksAllowed, results keep the input order
func (s statsService) FetchStatsBatch(ctx context.Context, usernames []string) ([]model.BatchStatsResult, error) {
	usernames, err := s.normalizeBatch(usernames)
	if err != nil {
		return nil, err
	}

	swg := sizedwaitgroup.New(s.config.Tasks.MaxParallelTasksAllowed)
	results := make(chan model.BatchStatsResult, len(usernames))

	for i, username := range usernames {
		swg.Add()
		go func(index int, username string) {
			defer swg.Done()

			record, err := s.FetchStats(ctx, username)
			results <- model.BatchStatsResult{Index: index, Username: username, Record: record, Err: err}
		}(i, username)
	}

	log.WithField("numberOfUsers", len(usernames)).Debug("waiting for all batch stats requests to be finished")
	swg.Wait()
	close(results)

	ordered := make([]model.BatchStatsResult, len(usernames))
	for result := range results {
		ordered[result.Index] = result
	}

	return ordered, nil
}

// normalizeBatch trim usernames and remove duplicates (case insensitive), keeping the first occurrence
func (s statsService) normalizeBatch(usernames []string) ([]string, error) {
	if len(usernames) == 0 {
		return nil, model.NewStatsError(model.ErrorKindInvalidInput, "At least one username is required", nil)
	}

	seen := make(map[string]bool, len(usernames))
	normalized := make([]string, 0, len(usernames))

	for _, username := range usernames {
		username = strings.TrimSpace(username)
		if username == "" {
			return nil, model.NewStatsError(model.ErrorKindInvalidInput, "Usernames must not be empty", nil)
		}

		if key := strings.ToLower(username); !seen[key] {
			seen[key] = true
			normalized = append(normalized, username)
		}
	}

	if len(normalized) > s.config.Tasks.MaxBatchSize {
		return nil, model.NewStatsError(model.ErrorKindInvalidInput, "Too many usernames in a single batch", nil)
	}

	return normalized, nil
}

// trackRateLimit keep the local rate limiter in line with the quota reported in the answer
func (s statsService) trackRateLimit(data *model.UserStatsData) {
	if data == nil || data.RateLimit == nil {
		return
	}

	log.WithFields(log.Fields{
		"remainingRequests": data.RateLimit.Remaining,
		"resetAt":           data.RateLimit.ResetAt,
	}).Debug("github graphql rate limit")

	if data.RateLimit.Remaining == 0 {
		drainRateLimiter(s.githubRateLimiter)
	}
}

// handleRequestErrors classify every upstream error at the same location
// rate limit errors also drain the local rate limiter to keep it up to date
func (s statsService) handleRequestErrors(username string, err error) error {
	kind := ClassifyUpstreamError(err)
	entry := log.WithError(err).WithFields(log.Fields{"username": username, "kind": kind})

	switch kind {
	case model.ErrorKindRateLimited:
		drainRateLimiter(s.githubRateLimiter)
		entry.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
	case model.ErrorKindUnauthenticated:
		if s.config.Github.Token == "" {
			entry.Warning("github rejected an unauthenticated request, consider setting GITHUB_TOKEN")
		} else {
			entry.Error("github rejected the configured token")
		}
	case model.ErrorKindNotFound:
		entry.Info("github user not found")
	default:
		entry.Error("error catched when fetching data from github")
	}

	return model.NewStatsError(kind, upstreamMessage(err), err)
}
