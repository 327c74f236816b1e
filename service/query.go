package service

import (
	"time"

	"github.com/Scalingo/sclng-yearly-stats/config"
	"github.com/Scalingo/sclng-yearly-stats/model"
	"github.com/Scalingo/sclng-yearly-stats/stats"
)

// graphql path relative to the github client base url
const graphQLPath = "graphql"

const userStatsQuery = `
query UserStats($login: String!, $from: DateTime!, $to: DateTime!, $maxCommitRepositories: Int!, $maxOwnedRepositories: Int!) {
  rateLimit { remaining resetAt }
  user(login: $login) {
    login
    name
    avatarUrl(size: 200)
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalPullRequestContributions
      totalIssueContributions
      totalPullRequestReviewContributions
      restrictedContributionsCount
      contributionCalendar {
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
      commitContributionsByRepository(maxRepositories: $maxCommitRepositories) {
        repository {
          nameWithOwner
          languages(first: 1, orderBy: { field: SIZE, direction: DESC }) {
            edges {
              size
              node { name }
            }
          }
        }
        contributions { totalCount }
      }
    }
    repositories(
      privacy: PUBLIC
      isFork: false
      ownerAffiliations: OWNER
      orderBy: { field: STARGAZERS, direction: DESC }
      first: $maxOwnedRepositories
    ) {
      edges {
        node {
          name
          createdAt
          stargazerCount
        }
      }
    }
  }
}
`

// NewUserStatsRequest build the single query sent to github for a username
func NewUserStatsRequest(username string, cfg config.GithubConfig) model.GraphQLRequest {
	from, to := stats.YearBounds(cfg.Year)

	return model.GraphQLRequest{
		Query: userStatsQuery,
		Variables: map[string]interface{}{
			"login":                 username,
			"from":                  from.Format(time.RFC3339),
			"to":                    to.Format(time.RFC3339),
			"maxCommitRepositories": cfg.MaxCommitRepositories,
			"maxOwnedRepositories":  cfg.MaxOwnedRepositories,
		},
	}
}
