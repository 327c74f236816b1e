package model

import "time"

// ContributionDay is one cell of the contribution calendar
type ContributionDay struct {
	Date              string `json:"date"` // YYYY-MM-DD
	ContributionCount int    `json:"contributionCount"`
}

// RepositoryCommitContribution is one repository the user committed to during the year
type RepositoryCommitContribution struct {
	RepositoryIdentifier string
	PrimaryLanguage      *string // largest language by size, nil when github reports none
	CommitCount          int
}

// RepositorySummary is one public, non-fork repository owned by the user
type RepositorySummary struct {
	Name      string
	CreatedAt time.Time
	StarCount int
}

// StatsRecord is the yearly card returned to the clients
type StatsRecord struct {
	Username    string      `json:"username"`
	DisplayName *string     `json:"name,omitempty"`
	AvatarURL   string      `json:"avatarUrl"`
	Year        int         `json:"year"`
	Totals      StatsTotals `json:"totals"`
}

type StatsTotals struct {
	TotalContributions int     `json:"totalContributions"`
	TotalCommits       int     `json:"totalCommits"`
	TotalPRs           int     `json:"totalPRs"`
	TotalIssues        int     `json:"totalIssues"`
	TotalStars         int     `json:"totalStars"` // stars of repositories created during the year
	LongestStreak      int     `json:"longestStreak"`
	TopLanguage        *string `json:"topLanguage,omitempty"`
	TotalReviews       int     `json:"totalReviews"`
}
