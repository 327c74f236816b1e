package model

import "time"

// GraphQLRequest is the body posted to the github graphql endpoint
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type GraphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"` // NOT_FOUND, RATE_LIMITED, FORBIDDEN, ...
}

// UserStatsResponse is the raw answer of the user stats query
// Data can be partially filled when Errors is not empty
type UserStatsResponse struct {
	Data   *UserStatsData `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type UserStatsData struct {
	RateLimit *GraphQLRateLimit `json:"rateLimit"`
	User      *GithubUser       `json:"user"`
}

type GraphQLRateLimit struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

type GithubUser struct {
	Login                   string                  `json:"login"`
	Name                    *string                 `json:"name"` // not every account has a display name
	AvatarURL               string                  `json:"avatarUrl"`
	ContributionsCollection ContributionsCollection `json:"contributionsCollection"`
	Repositories            RepositoryConnection    `json:"repositories"`
}

type ContributionsCollection struct {
	TotalCommitContributions            int                              `json:"totalCommitContributions"`
	TotalPullRequestContributions       int                              `json:"totalPullRequestContributions"`
	TotalIssueContributions             int                              `json:"totalIssueContributions"`
	TotalPullRequestReviewContributions int                              `json:"totalPullRequestReviewContributions"`
	RestrictedContributionsCount        int                              `json:"restrictedContributionsCount"`
	ContributionCalendar                ContributionCalendar             `json:"contributionCalendar"`
	CommitContributionsByRepository     []CommitContributionByRepository `json:"commitContributionsByRepository"`
}

type ContributionCalendar struct {
	Weeks []ContributionWeek `json:"weeks"`
}

type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

type CommitContributionByRepository struct {
	Repository    CommittedRepository `json:"repository"`
	Contributions struct {
		TotalCount int `json:"totalCount"`
	} `json:"contributions"`
}

type CommittedRepository struct {
	NameWithOwner string             `json:"nameWithOwner"`
	Languages     LanguageConnection `json:"languages"`
}

type LanguageConnection struct {
	Edges []LanguageEdge `json:"edges"`
}

type LanguageEdge struct {
	Size int `json:"size"`
	Node struct {
		Name string `json:"name"`
	} `json:"node"`
}

type RepositoryConnection struct {
	Edges []RepositoryEdge `json:"edges"`
}

type RepositoryEdge struct {
	Node RepositoryNode `json:"node"`
}

type RepositoryNode struct {
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	StargazerCount int       `json:"stargazerCount"`
}
