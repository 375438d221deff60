package service

import (
	"strings"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

// Recommendation texts, selected by the daily study/rest rule chain.
const (
	RecommendationStartSmall  = "Start a small 5-minute study session to build momentum."
	RecommendationFocusMore   = "You rested more than you studied. Try to focus more tomorrow."
	RecommendationTakeBreaks  = "Great job! But remember to take healthy breaks."
	RecommendationNiceBalance = "Nice balance today. Keep your routine going!"
)

// Productivity labels for the weekly total.
const (
	ProductivityNone     = "No Study"
	ProductivityLow      = "Low Productivity"
	ProductivityModerate = "Moderately Productive"
	ProductivityHigh     = "Highly Productive"
)

// Weekly advice texts, selected by the average-minutes band.
const (
	adviceNoStudy = "No study time recorded yet this week, and that is okay. " +
		"Every big journey starts with a single small step. " +
		"Try a short 5 to 10 minute session today; consistency matters more than big numbers."
	adviceLight = "You have started putting in study time and that already counts. " +
		"Keep the streak alive with small daily sessions and it will add up before you know it."
	adviceSteady = "You are studying consistently this week. " +
		"That steady rhythm is exactly how good habits are built. Keep it up!"
	adviceStrong = "Strong study numbers this week! " +
		"You are clearly putting in the work. Remember to rest too so the effort stays sustainable."
	adviceHeavyWeek = " It also looks like the week felt heavy more than once. " +
		"Be gentle with yourself, take real breaks, and talk to someone you trust. You are not alone."
)

// negativeMoodKeywords flag a day as heavy when any of them appears in the
// recorded mood text.
var negativeMoodKeywords = []string{"sad", "stressed", "tired", "lonely", "anxious", "overwhelmed"}

// InsightService computes rule-based advice, productivity labels,
// recommendations and classroom emotion analytics. It is stateless; every
// method is a pure function over its inputs.
type InsightService struct{}

// NewInsightService constructs the insight engine.
func NewInsightService() *InsightService {
	return &InsightService{}
}

// WeeklyAdvice picks the advice band for the average daily study minutes and
// appends the heavy-week suffix when three or more of the week's moods read
// negative.
func (s *InsightService) WeeklyAdvice(averageMinutes float64, moods []string) string {
	var advice string
	switch {
	case averageMinutes == 0:
		advice = adviceNoStudy
	case averageMinutes < 30:
		advice = adviceLight
	case averageMinutes < 60:
		advice = adviceSteady
	default:
		advice = adviceStrong
	}
	if countNegativeMoods(moods) >= 3 {
		advice += adviceHeavyWeek
	}
	return advice
}

// ProductivityLabel maps the weekly study total to its label.
func (s *InsightService) ProductivityLabel(totalMinutes int) string {
	switch {
	case totalMinutes == 0:
		return ProductivityNone
	case totalMinutes < 30:
		return ProductivityLow
	case totalMinutes < 90:
		return ProductivityModerate
	default:
		return ProductivityHigh
	}
}

// Recommendation applies the daily study/rest rules in order: no study at
// all, more rest than study, long study without balance, then the default.
func (s *InsightService) Recommendation(studyMinutes, restMinutes int) string {
	switch {
	case studyMinutes == 0:
		return RecommendationStartSmall
	case restMinutes > studyMinutes:
		return RecommendationFocusMore
	case studyMinutes > 120:
		return RecommendationTakeBreaks
	default:
		return RecommendationNiceBalance
	}
}

// EmotionCounts tallies in-window check-ins per emotion. Every emotion
// appears in the result, zero-filled.
func (s *InsightService) EmotionCounts(checkIns map[string]models.EmotionCheckIn, days []string) map[models.Emotion]int {
	counts := make(map[models.Emotion]int, len(models.EmotionChoices))
	for _, emotion := range models.EmotionChoices {
		counts[emotion] = 0
	}
	inWindow := make(map[string]struct{}, len(days))
	for _, d := range days {
		inWindow[d] = struct{}{}
	}
	for _, checkIn := range checkIns {
		if _, ok := inWindow[checkIn.Date]; !ok {
			continue
		}
		if _, known := counts[checkIn.Emotion]; known {
			counts[checkIn.Emotion]++
		}
	}
	return counts
}

// TopEmotion resolves the dominant emotion from a tally. Ties go to the
// emotion listed first in the fixed enumeration. A zero tally yields no top
// emotion and the not-enough-data message.
func (s *InsightService) TopEmotion(counts map[models.Emotion]int) (models.Emotion, string) {
	var top models.Emotion
	max := 0
	for _, emotion := range models.EmotionChoices {
		if counts[emotion] > max {
			max = counts[emotion]
			top = emotion
		}
	}
	if max == 0 {
		return "", models.NoAnalyticsDataMessage
	}
	return top, models.ClassGuidanceMessages[top]
}

func countNegativeMoods(moods []string) int {
	count := 0
	for _, mood := range moods {
		lowered := strings.ToLower(mood)
		for _, keyword := range negativeMoodKeywords {
			if strings.Contains(lowered, keyword) {
				count++
				break
			}
		}
	}
	return count
}
