package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/Scalingo/sclng-yearly-stats/model"
)

const (
	cardWidth  = 600
	cardHeight = 340
)

//go:embed templates/card.svg.tmpl
var cardTemplate string

var cardTmpl = template.Must(
	template.New("card").
		Funcs(template.FuncMap{
			"column":   func(i int) int { return 40 + (i%4)*135 },
			"row":      func(i int) int { return 170 + (i/4)*90 },
			"subtract": func(a, b int) int { return a - b },
		}).
		Parse(cardTemplate),
)

type cardTile struct {
	Label string
	Value string
}

type cardViewModel struct {
	Width  int
	Height int

	Title     string
	Subtitle  string
	AvatarURL string
	Year      int

	Tiles []cardTile
}

// RenderCard build the yearly stats card as an SVG document
func RenderCard(record model.StatsRecord) ([]byte, error) {
	title := record.Username
	if record.DisplayName != nil && *record.DisplayName != "" {
		title = *record.DisplayName
	}

	topLanguage := "-"
	if record.Totals.TopLanguage != nil {
		topLanguage = *record.Totals.TopLanguage
	}

	totals := record.Totals
	vm := cardViewModel{
		Width:     cardWidth,
		Height:    cardHeight,
		Title:     title,
		Subtitle:  fmt.Sprintf("@%s · %d in review", record.Username, record.Year),
		AvatarURL: record.AvatarURL,
		Year:      record.Year,
		Tiles: []cardTile{
			{Label: "Contributions", Value: strconv.Itoa(totals.TotalContributions)},
			{Label: "Commits", Value: strconv.Itoa(totals.TotalCommits)},
			{Label: "Pull requests", Value: strconv.Itoa(totals.TotalPRs)},
			{Label: "Issues", Value: strconv.Itoa(totals.TotalIssues)},
			{Label: "Reviews", Value: strconv.Itoa(totals.TotalReviews)},
			{Label: "Longest streak", Value: fmt.Sprintf("%d days", totals.LongestStreak)},
			{Label: "Stars (new repos)", Value: strconv.Itoa(totals.TotalStars)},
			{Label: "Top language", Value: topLanguage},
		},
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}
	return buf.Bytes(), nil
}

// CardFilename is the name proposed to the browser when the card is downloaded
func CardFilename(record model.StatsRecord) string {
	return fmt.Sprintf("%s-%d-stats.svg", record.Username, record.Year)
}
