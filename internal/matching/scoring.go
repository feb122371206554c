package matching

import (
	"strings"
	"time"
)

// Factor weights. Every constant is a tuning parameter of the ranking and must
// stay in sync with the ranking behaviour clients were built against.
const (
	exactSkillWeight   = 40.0
	partialSkillWeight = 10.0

	experienceMetPoints     = 20.0
	experienceCloseBonus    = 5.0
	experienceCloseGapYears = 2
	experienceGapPenalty    = 2
	experiencePenaltyCap    = 10

	locationMatchPoints  = 12.0
	locationRemotePoints = 8.0
	locationRegionPoints = 5.0

	titleKeywordWeight = 10.0
	titleExactBonus    = 5.0

	salaryHighThreshold = 100000.0
	salaryMidThreshold  = 75000.0
	salaryLowThreshold  = 50000.0

	recentPostingDays  = 7
	recentPostingBonus = 3.0
	freshPostingDays   = 30
	freshPostingBonus  = 1.0

	maxJitter = 2.0
)

// titleKeywords is the fixed role vocabulary used for title similarity.
var titleKeywords = []string{"developer", "engineer", "manager", "analyst", "designer", "scientist", "specialist"}

// computeSkillsScore awards up to 50 points for required skills found in the
// profile. A required skill counts as partial when any profile skill contains it
// or is contained by it; exact matches are then subtracted from that count.
func computeSkillsScore(userSkills, required []string) float64 {
	if len(required) == 0 || len(userSkills) == 0 {
		return 0
	}

	userSet := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		userSet[s] = true
	}

	exact := 0
	substring := 0
	for _, skill := range required {
		if userSet[skill] {
			exact++
		}
		for _, us := range userSkills {
			if strings.Contains(us, skill) || strings.Contains(skill, us) {
				substring++
				break
			}
		}
	}
	partial := substring - exact

	total := float64(len(required))
	return float64(exact)/total*exactSkillWeight + float64(partial)/total*partialSkillWeight
}

// computeExperienceScore rewards meeting the requirement, with a bonus for a
// close fit, and applies a capped penalty when under-qualified.
func computeExperienceScore(years, required int) float64 {
	if years >= required {
		score := experienceMetPoints
		if years-required <= experienceCloseGapYears {
			score += experienceCloseBonus
		}
		return score
	}
	penalty := min((required-years)*experienceGapPenalty, experiencePenaltyCap)
	return -float64(penalty)
}

// computeLocationScore compares lower-cased locations. The three bonuses stack.
func computeLocationScore(userLocation, jobLocation string) float64 {
	if userLocation == "" || jobLocation == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(jobLocation, userLocation) || strings.Contains(userLocation, jobLocation) {
		score += locationMatchPoints
	}
	if strings.Contains(jobLocation, "remote") {
		score += locationRemotePoints
	}
	userRegion := regionOf(userLocation)
	jobRegion := regionOf(jobLocation)
	if userRegion != "" && userRegion == jobRegion {
		score += locationRegionPoints
	}
	return score
}

// regionOf returns the trimmed second comma-separated segment ("WA" in "Seattle, WA").
func regionOf(location string) string {
	parts := strings.Split(location, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// computeTitleScore scores shared role keywords relative to the seeker's own
// keywords, plus a bonus for identical titles.
func computeTitleScore(userTitle, jobTitle string) float64 {
	if userTitle == "" || jobTitle == "" {
		return 0
	}

	userKeywords := keywordsIn(userTitle)
	jobKeywords := keywordsIn(jobTitle)

	common := 0
	for _, kw := range userKeywords {
		for _, jk := range jobKeywords {
			if kw == jk {
				common++
				break
			}
		}
	}

	score := 0.0
	if common > 0 {
		score += float64(common) / float64(max(len(userKeywords), 1)) * titleKeywordWeight
	}
	if userTitle == jobTitle {
		score += titleExactBonus
	}
	return score
}

func keywordsIn(title string) []string {
	var found []string
	for _, kw := range titleKeywords {
		if strings.Contains(title, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// computeCompensationScore gives a slight preference to better-paid postings.
// Both bounds must be present.
func computeCompensationScore(salaryMin, salaryMax *int) float64 {
	if salaryMin == nil || salaryMax == nil {
		return 0
	}
	avg := (float64(*salaryMin) + float64(*salaryMax)) / 2
	switch {
	case avg > salaryHighThreshold:
		return 3
	case avg > salaryMidThreshold:
		return 2
	case avg > salaryLowThreshold:
		return 1
	default:
		return 0
	}
}

// computeRecencyScore boosts postings younger than a week, and less so younger
// than a month.
func computeRecencyScore(createdAt, now time.Time) float64 {
	daysOld := now.Sub(createdAt).Hours() / 24
	switch {
	case daysOld < recentPostingDays:
		return recentPostingBonus
	case daysOld < freshPostingDays:
		return freshPostingBonus
	default:
		return 0
	}
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
