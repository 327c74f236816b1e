// Package stats turns the raw github graphql answer into a yearly StatsRecord.
// Every function is pure: no I/O, no mutation of the inputs and no error path.
package stats

import (
	"time"

	"github.com/Scalingo/sclng-yearly-stats/model"
)

// Aggregate flattens the user answer and computes the derived metrics for the given year
func Aggregate(user model.GithubUser, year int) model.StatsRecord {
	collection := user.ContributionsCollection

	return model.StatsRecord{
		Username:    user.Login,
		DisplayName: user.Name,
		AvatarURL:   user.AvatarURL,
		Year:        year,
		Totals: model.StatsTotals{
			TotalContributions: TotalContributions(collection),
			TotalCommits:       collection.TotalCommitContributions,
			TotalPRs:           collection.TotalPullRequestContributions,
			TotalIssues:        collection.TotalIssueContributions,
			TotalStars:         StarsInYear(FlattenRepositories(user.Repositories), year),
			LongestStreak:      LongestStreak(FlattenCalendar(collection.ContributionCalendar)),
			TopLanguage:        TopLanguage(FlattenCommitContributions(collection.CommitContributionsByRepository)),
			TotalReviews:       collection.TotalPullRequestReviewContributions,
		},
	}
}

// TotalContributions is the sum of the five contribution kinds reported by github
// the calendar days are never used here, private contributions only exist in the restricted counter
func TotalContributions(collection model.ContributionsCollection) int {
	return collection.TotalCommitContributions +
		collection.TotalPullRequestContributions +
		collection.TotalIssueContributions +
		collection.TotalPullRequestReviewContributions +
		collection.RestrictedContributionsCount
}

// LongestStreak return the longest run of consecutive days with at least one contribution
// days must be in chronological order without gaps, as github returns them
func LongestStreak(days []model.ContributionDay) int {
	longest, current := 0, 0

	for _, day := range days {
		if day.ContributionCount > 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	return longest
}

// TopLanguage return the language with the most commits across the committed repositories
// repositories without language are ignored, nil is returned when none is left
// on equal totals the language seen first wins, so the result depends on github ordering
func TopLanguage(contributions []model.RepositoryCommitContribution) *string {
	totals := make(map[string]int)
	order := make([]string, 0)

	for _, c := range contributions {
		if c.PrimaryLanguage == nil || *c.PrimaryLanguage == "" {
			continue
		}

		language := *c.PrimaryLanguage
		if _, found := totals[language]; !found {
			order = append(order, language)
		}
		totals[language] += c.CommitCount
	}

	if len(order) == 0 {
		return nil
	}

	top := order[0]
	for _, language := range order[1:] {
		if totals[language] > totals[top] {
			top = language
		}
	}

	return &top
}

// StarsInYear sum the stars of the repositories created in [year-01-01, year+1-01-01) UTC
// github does not expose when a star was given, so this only approximates the stars earned in the year
func StarsInYear(repos []model.RepositorySummary, year int) int {
	start, end := YearBounds(year)
	total := 0

	for _, r := range repos {
		createdAt := r.CreatedAt.UTC()
		if !createdAt.Before(start) && createdAt.Before(end) {
			total += r.StarCount
		}
	}

	return total
}

// YearBounds return the half-open UTC interval covering the year
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
