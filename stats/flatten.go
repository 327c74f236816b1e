package stats

import "github.com/Scalingo/sclng-yearly-stats/model"

// FlattenCalendar concatenate the days of every week, keeping github ordering
func FlattenCalendar(calendar model.ContributionCalendar) []model.ContributionDay {
	days := make([]model.ContributionDay, 0, len(calendar.Weeks)*7)

	for _, week := range calendar.Weeks {
		days = append(days, week.ContributionDays...)
	}

	return days
}

// FlattenCommitContributions keep only the largest language of each repository
// the query asks for a single language ordered by size, so the first edge is the primary one
func FlattenCommitContributions(raw []model.CommitContributionByRepository) []model.RepositoryCommitContribution {
	contributions := make([]model.RepositoryCommitContribution, 0, len(raw))

	for _, r := range raw {
		contribution := model.RepositoryCommitContribution{
			RepositoryIdentifier: r.Repository.NameWithOwner,
			CommitCount:          r.Contributions.TotalCount,
		}

		if edges := r.Repository.Languages.Edges; len(edges) > 0 && edges[0].Node.Name != "" {
			language := edges[0].Node.Name
			contribution.PrimaryLanguage = &language
		}

		contributions = append(contributions, contribution)
	}

	return contributions
}

func FlattenRepositories(connection model.RepositoryConnection) []model.RepositorySummary {
	repos := make([]model.RepositorySummary, 0, len(connection.Edges))

	for _, edge := range connection.Edges {
		repos = append(repos, model.RepositorySummary{
			Name:      edge.Node.Name,
			CreatedAt: edge.Node.CreatedAt,
			StarCount: edge.Node.StargazerCount,
		})
	}

	return repos
}
