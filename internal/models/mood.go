package models

import "github.com/julianstephens/worthy/internal/constants"

// Mood is the coarse mood label of an entry. Any string is accepted; the
// constants below are the labels the application knows how to present.
type Mood string

const (
	MoodGrateful Mood = "grateful"
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodProud    Mood = "proud"
	MoodLoved    Mood = "loved"
	MoodHopeful  Mood = "hopeful"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodNeutral  Mood = "neutral"
)

// MoodBand is one of the three score zones: 0-35, 36-65, 66-100.
type MoodBand string

const (
	BandLow  MoodBand = "low"
	BandMid  MoodBand = "mid"
	BandHigh MoodBand = "high"
)

// BandForScore places a mood score in its zone.
func BandForScore(score int) MoodBand {
	switch {
	case score <= constants.SadMaxScore:
		return BandLow
	case score <= constants.CalmMaxScore:
		return BandMid
	default:
		return BandHigh
	}
}

// MoodFromScore derives the coarse label stored alongside a score.
func MoodFromScore(score int) Mood {
	switch BandForScore(score) {
	case BandLow:
		return MoodSad
	case BandMid:
		return MoodCalm
	default:
		return MoodHappy
	}
}

// DefaultFeeling is the mood description used when the user leaves it empty.
func DefaultFeeling(score int) string {
	switch BandForScore(score) {
	case BandLow:
		return "低落"
	case BandMid:
		return "平静"
	default:
		return "开心"
	}
}

// DefaultFeelings lists every text DefaultFeeling can produce.
func DefaultFeelings() []string {
	return []string{"低落", "平静", "开心"}
}

// ValidMoodScore reports whether score is within 0-100.
func ValidMoodScore(score int) bool {
	return score >= constants.MoodScoreMin && score <= constants.MoodScoreMax
}
