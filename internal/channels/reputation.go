// Package channels classifies video content sources into reputation tiers
// for grade-level demographic matching.
package channels

import "strings"

// Tier identifies how a channel relates to elementary audiences.
type Tier int

// Channel tiers. TierBlacklisted marks channels whose content targets
// audiences well beyond K-6.
const (
	TierUnknown     Tier = 0
	TierKidFocused  Tier = 1
	TierEducational Tier = 2
	TierBlacklisted Tier = -1
)

// gradeRange is the grade band a channel is calibrated for.
type gradeRange struct {
	min int
	max int
}

// Channels explicitly designed for elementary students.
var kidFocused = map[string]gradeRange{
	"crash course kids":        {3, 6},
	"national geographic kids": {2, 5},
	"pbs learningmedia":        {1, 8},
	"free school":              {3, 7},
	"homeschool pop":           {1, 5},
	"brainpop":                 {3, 8},
	"flocabulary":              {3, 8},
	"history for kids":         {2, 6},
	"simple history":           {4, 8},
	"peekaboo kidz":            {1, 4},
	"happy learning english":   {2, 6},
	"smile and learn":          {1, 5},
}

// General educational channels, often but not always appropriate.
var educational = map[string]gradeRange{
	"national geographic": {3, 12},
	"history channel":     {5, 12},
	"biography":           {5, 12},
	"smithsonian":         {4, 12},
	"discovery":           {4, 12},
	"pbs":                 {3, 12},
	"ted-ed":              {6, 12},
	"scishow":             {6, 12},
}

// Channels explicitly too advanced for elementary use. "crashcourse"
// (one word) is the high-school channel, distinct from "crash course kids".
var blacklisted = []string{
	"crashcourse",
	"khan academy",
	"mit opencourseware",
	"stanford",
	"yale courses",
	"coursera",
	"udacity",
}

// TierOf determines which tier a channel belongs to. Matching is
// case-insensitive substring matching; the blacklist wins over both tiers.
func TierOf(channelName string) Tier {
	name := strings.ToLower(channelName)

	for _, bad := range blacklisted {
		if strings.Contains(name, bad) {
			return TierBlacklisted
		}
	}
	for key := range kidFocused {
		if strings.Contains(name, key) {
			return TierKidFocused
		}
	}
	for key := range educational {
		if strings.Contains(name, key) {
			return TierEducational
		}
	}
	return TierUnknown
}

// DemographicScore rates how well a channel matches a target grade level.
//
// Returns one of:
//
//	4.0 perfect match (kid-focused, grade in range)
//	3.0 close match (kid-focused, within 2 grades of range)
//	2.0 kid-focused outside range, or general educational in range
//	1.0 general educational outside range
//	0.5 unknown channel
//	0.0 blacklisted
func DemographicScore(channelName string, gradeLevel int) float64 {
	name := strings.ToLower(channelName)

	switch TierOf(channelName) {
	case TierBlacklisted:
		return 0.0
	case TierKidFocused:
		for key, r := range kidFocused {
			if !strings.Contains(name, key) {
				continue
			}
			if gradeLevel >= r.min && gradeLevel <= r.max {
				return 4.0
			}
			if abs(gradeLevel-r.min) <= 2 || abs(gradeLevel-r.max) <= 2 {
				return 3.0
			}
			return 2.0
		}
	case TierEducational:
		for key, r := range educational {
			if !strings.Contains(name, key) {
				continue
			}
			if gradeLevel >= r.min && gradeLevel <= r.max {
				return 2.0
			}
			return 1.0
		}
	}
	return 0.5
}

// Appropriate reports whether a channel may be offered to elementary
// students at all.
func Appropriate(channelName string) bool {
	return TierOf(channelName) != TierBlacklisted
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
