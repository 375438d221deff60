package models

import "time"

// Emotion is one of the ten fixed check-in categories.
type Emotion string

const (
	EmotionHappy       Emotion = "Happy"
	EmotionExcited     Emotion = "Excited"
	EmotionCalm        Emotion = "Calm"
	EmotionMotivated   Emotion = "Motivated"
	EmotionTired       Emotion = "Tired"
	EmotionSad         Emotion = "Sad"
	EmotionStressed    Emotion = "Stressed"
	EmotionAnxious     Emotion = "Anxious"
	EmotionOverwhelmed Emotion = "Overwhelmed"
	EmotionBored       Emotion = "Bored"
)

// EmotionChoices is the fixed enumeration. Its order is load-bearing: the
// analytics top-emotion tie-break picks the first emotion in this order that
// reaches the maximum count.
var EmotionChoices = []Emotion{
	EmotionHappy, EmotionExcited, EmotionCalm, EmotionMotivated,
	EmotionTired, EmotionSad, EmotionStressed, EmotionAnxious,
	EmotionOverwhelmed, EmotionBored,
}

// ValidEmotion reports whether the label is one of the fixed categories.
func ValidEmotion(e Emotion) bool {
	for _, choice := range EmotionChoices {
		if choice == e {
			return true
		}
	}
	return false
}

// EmotionMessages maps each emotion to the affect message shown to the
// submitter right after checking in.
var EmotionMessages = map[Emotion]string{
	EmotionHappy:       "Love that energy! Share some of it with your classmates today.",
	EmotionExcited:     "Excitement is contagious. Channel it into learning something new!",
	EmotionCalm:        "Calm is a superpower. Keep breathing and take it one step at a time.",
	EmotionMotivated:   "While the motivation is fresh, start that small task you have been putting off.",
	EmotionTired:       "Feeling tired is valid. Rest when you can, you are not lazy, just human.",
	EmotionSad:         "Heavy days happen and you are not alone. Reach out to a friend or teacher you trust.",
	EmotionStressed:    "One thing at a time. Break the big tasks into tiny steps and start with the smallest.",
	EmotionAnxious:     "Your worries are real, but they do not define you. Slow breaths, one small action at a time.",
	EmotionOverwhelmed: "When everything hits at once, pick just the next best step. You do not have to finish it all today.",
	EmotionBored:       "Maybe your mind wants something new. Try a different way of studying or help a classmate out.",
}

// ClassGuidanceMessages maps the dominant weekly emotion to advice for the
// Class Rep viewing analytics.
var ClassGuidanceMessages = map[Emotion]string{
	EmotionHappy:       "A lot of happy check-ins this week. Acknowledge it and celebrate small wins with the class!",
	EmotionExcited:     "Plenty of excitement this week. A good moment to introduce a new activity or project.",
	EmotionCalm:        "The class looks calm overall. Keep the peaceful pace going.",
	EmotionMotivated:   "Lots of motivated students! Consider offering a small challenge or enrichment task.",
	EmotionTired:       "Many are tired. Maybe open with a light warm-up or a short breathing break.",
	EmotionSad:         "Several students feel down this week. A short check-in and some encouragement could help.",
	EmotionStressed:    "Most students feel stressed. Consider slowing down, clarifying deadlines, or sharing study tips.",
	EmotionAnxious:     "Many feel anxious. Clear instructions and reassurance from you could really help.",
	EmotionOverwhelmed: "Many feel overwhelmed. Breaking tasks into smaller steps could make a difference.",
	EmotionBored:       "Boredom is trending. Try adding movement, games, or group work to the lesson.",
}

// NoAnalyticsDataMessage is returned when no check-ins fall inside the
// trailing window.
const NoAnalyticsDataMessage = "Not enough check-ins this week to read the overall mood of the class."

// EmotionCheckIn is one account's latest check-in for one classroom. At most
// one per account per classroom per day.
type EmotionCheckIn struct {
	Username    string    `json:"username"`
	Emotion     Emotion   `json:"emotion"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeelingRow is one member's check-in as shown on the feelings page.
type FeelingRow struct {
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Emotion     Emotion `json:"emotion"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	PictureFile string  `json:"picture_file,omitempty"`
}

// HelpMessage is an anonymous classroom help request. The sender is recorded
// only for seen-by bookkeeping and is never exposed to readers.
type HelpMessage struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Date   string   `json:"date"`
	Time   string   `json:"time"`
	SeenBy []string `json:"-"`
}

// Announcement is a Class Rep broadcast shown newest-first.
type Announcement struct {
	ID       string    `json:"id"`
	Sender   string    `json:"sender"`
	Text     string    `json:"text"`
	Date     string    `json:"date"`
	PostedAt time.Time `json:"posted_at"`
}

// EmotionAnalytics aggregates check-ins over the trailing 7-day window.
type EmotionAnalytics struct {
	Days       []string        `json:"days"`
	Counts     map[Emotion]int `json:"counts"`
	Detailed   []FeelingRow    `json:"detailed"`
	TopEmotion Emotion         `json:"top_emotion,omitempty"`
	TopMessage string          `json:"top_message"`
}
