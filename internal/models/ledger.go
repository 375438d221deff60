package models

import "time"

// DateLayout is the calendar-date key format used across all ledgers.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock display format for check-ins and messages.
const TimeLayout = "03:04 PM"

// MoodEntry is the free-text mood recorded for one calendar day. A later
// write on the same day overwrites the earlier one.
type MoodEntry struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// StudySession is one immutable study record. Multiple sessions on the same
// day stay separate entries and are summed on read.
type StudySession struct {
	Date        string    `json:"date"`
	Minutes     int       `json:"minutes"`
	RestSeconds int       `json:"rest_seconds,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// DayTotal is the summed study minutes for one day of the trailing window.
type DayTotal struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// SummaryRow combines mood and study minutes for one day.
type SummaryRow struct {
	Date    string `json:"date"`
	Mood    string `json:"mood"`
	Minutes int    `json:"minutes"`
}

// WeeklySummary is the computed trailing-7-day view.
type WeeklySummary struct {
	Rows             []SummaryRow `json:"rows"`
	TotalMinutes     int          `json:"total_minutes"`
	AverageMinutes   float64      `json:"average_minutes"`
	TotalRestMinutes int          `json:"total_rest_minutes"`
	Advice           string       `json:"advice"`
	Productivity     string       `json:"productivity"`
	Recommendation   string       `json:"recommendation"`
}

// HelpNote is a personal anonymous help request outside any classroom.
type HelpNote struct {
	Date string `json:"date"`
	Text string `json:"text"`
}
