package journal

import (
	"sort"
	"strings"
	"unicode"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

// WordCount is one row of the word cloud.
type WordCount struct {
	Word  string
	Count int
}

// Stats summarizes a set of entries.
type Stats struct {
	Total        int
	TopWords     []WordCount
	Bands        map[models.MoodBand]int
	AverageScore float64
	// RecentScores holds the scores of the newest entries, newest first.
	RecentScores []int
}

// fillerWords are dropped from the word cloud: the default feelings and
// the stock filler "不错".
var fillerWords = append([]string{"不错"}, models.DefaultFeelings()...)

func isFiller(word string) bool {
	for _, f := range fillerWords {
		if f == word {
			return true
		}
	}
	return false
}

// cleanWord keeps letters and digits only.
func cleanWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, word)
}

// ComputeStats derives statistics from entries ordered newest first.
func ComputeStats(entries []models.DiaryEntry) Stats {
	stats := Stats{
		Total: len(entries),
		Bands: map[models.MoodBand]int{
			models.BandLow:  0,
			models.BandMid:  0,
			models.BandHigh: 0,
		},
		TopWords:     []WordCount{},
		RecentScores: []int{},
	}

	freq := make(map[string]int)
	sum := 0
	for i, entry := range entries {
		words := append(strings.Split(entry.Content.Feeling, " "), entry.Tags...)
		for _, w := range words {
			w = cleanWord(w)
			if w == "" || isFiller(w) {
				continue
			}
			freq[w]++
		}

		stats.Bands[models.BandForScore(entry.MoodScore)]++
		sum += entry.MoodScore
		if i < constants.MoodCloudLimit {
			stats.RecentScores = append(stats.RecentScores, entry.MoodScore)
		}
	}
	if len(entries) > 0 {
		stats.AverageScore = float64(sum) / float64(len(entries))
	}

	for word, count := range freq {
		stats.TopWords = append(stats.TopWords, WordCount{Word: word, Count: count})
	}
	sort.Slice(stats.TopWords, func(i, j int) bool {
		if stats.TopWords[i].Count != stats.TopWords[j].Count {
			return stats.TopWords[i].Count > stats.TopWords[j].Count
		}
		return stats.TopWords[i].Word < stats.TopWords[j].Word
	})
	if len(stats.TopWords) > constants.TopWordsLimit {
		stats.TopWords = stats.TopWords[:constants.TopWordsLimit]
	}

	return stats
}

// Stats computes statistics over the entries matching filter.
func (s *Service) Stats(filter Filter) (Stats, error) {
	entries, err := s.List(filter)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(entries), nil
}
