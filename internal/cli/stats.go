package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

const barWidth = 30

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

type StatsCmd struct {
	FilterFlags `embed:""`

	JSON bool `help:"Print statistics as JSON."`
}

type statsOutput struct {
	Total        int                     `json:"total"`
	AverageScore float64                 `json:"averageScore"`
	Bands        map[models.MoodBand]int `json:"bands"`
	TopWords     []wordOutput            `json:"topWords"`
	RecentScores []int                   `json:"recentScores"`
}

type wordOutput struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	filter, err := c.filter(ctx)
	if err != nil {
		return err
	}
	stats, err := ctx.Journal.Stats(filter)
	if err != nil {
		return err
	}

	if c.JSON {
		out := statsOutput{
			Total:        stats.Total,
			AverageScore: stats.AverageScore,
			Bands:        stats.Bands,
			TopWords:     make([]wordOutput, len(stats.TopWords)),
			RecentScores: stats.RecentScores,
		}
		for i, w := range stats.TopWords {
			out.TopWords[i] = wordOutput{Word: w.Word, Count: w.Count}
		}
		enc := json.NewEncoder(ctx.out())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	}

	if stats.Total == 0 {
		ctx.println("No entries to summarize.")
		return nil
	}

	ctx.println(titleStyle.Render("Journal statistics"))
	ctx.printf("Entries:       %d\n", stats.Total)
	ctx.printf("Average mood:  %.1f\n", stats.AverageScore)
	ctx.println()

	ctx.println(labelStyle.Render("Mood"))
	bands := []struct {
		band  models.MoodBand
		label string
	}{
		{models.BandHigh, fmt.Sprintf("high (%d-%d)", constants.CalmMaxScore+1, constants.MoodScoreMax)},
		{models.BandMid, fmt.Sprintf("mid (%d-%d)", constants.SadMaxScore+1, constants.CalmMaxScore)},
		{models.BandLow, fmt.Sprintf("low (%d-%d)", constants.MoodScoreMin, constants.SadMaxScore)},
	}
	for _, b := range bands {
		count := stats.Bands[b.band]
		style := moodStyle(bandScore(b.band))
		ctx.printf("  %s %s %d\n", centered(b.label, 14), style.Render(bar(count, stats.Total, barWidth)), count)
	}

	if len(stats.RecentScores) > 0 {
		ctx.println()
		ctx.printf("%s %s\n", labelStyle.Render("Recent"), sparkline(stats.RecentScores))
	}

	if len(stats.TopWords) > 0 {
		ctx.println()
		ctx.println(labelStyle.Render("Words"))
		words := make([]string, len(stats.TopWords))
		for i, w := range stats.TopWords {
			words[i] = fmt.Sprintf("%s×%d", w.Word, w.Count)
		}
		ctx.println("  " + tagStyle.Render(strings.Join(words, "  ")))
	}
	return nil
}

// bandScore is a representative score used to color a band.
func bandScore(band models.MoodBand) int {
	switch band {
	case models.BandLow:
		return constants.MoodScoreMin
	case models.BandMid:
		return constants.MoodScoreDefault
	default:
		return constants.MoodScoreMax
	}
}

// sparkline draws scores oldest to newest. RecentScores is newest first.
func sparkline(scores []int) string {
	var b strings.Builder
	for i := len(scores) - 1; i >= 0; i-- {
		idx := scores[i] * (len(sparkRunes) - 1) / constants.MoodScoreMax
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
