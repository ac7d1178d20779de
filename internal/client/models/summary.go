// Package models defines the client-side data models of newsdigest. They
// mirror the backend's JSON payloads; the backend owns them and the client
// only reads them, apart from the mark-read side effect.
package models

import "time"

// Summary is a single AI-generated digest of news on a topic.
type Summary struct {
	ID      ID       `json:"id"`
	Topic   string   `json:"topic"`
	Title   string   `json:"title"`
	Text    string   `json:"summary"`
	Sources []string `json:"sources"`
	// Timestamp is kept verbatim; the backend has sent several layouts.
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"isRead"`
}

// timestampLayouts lists the layouts accepted by ParseTimestamp, in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the summary timestamp.
func (s Summary) ParseTimestamp() (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s.Timestamp)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ReadResult is returned by the backend after a summary is marked read.
type ReadResult struct {
	PointsEarned  int  `json:"points_earned"`
	TotalPoints   int  `json:"total_points"`
	ReadingStreak int  `json:"reading_streak"`
	StreakUpdated bool `json:"streak_updated"`
}
