package models

// Profile is the public profile of a user.
type Profile struct {
	UserID         ID       `json:"user_id"`
	Email          string   `json:"email"`
	Points         int      `json:"points"`
	FollowerCount  int      `json:"followerCount"`
	FollowingCount int      `json:"followingCount"`
	TopTopics      []string `json:"topTopics"`
	ReadingStreak  int      `json:"readingStreak"`
	IsFollowing    bool     `json:"isFollowing"`
}

// FollowResult reports the relationship after a follow toggle.
type FollowResult struct {
	Following     bool `json:"following"`
	FollowerCount int  `json:"followerCount"`
}

// TopicCount is one bar of the topics chart.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// DailyCount is one bar of the daily reads chart.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Dashboard holds the aggregate reading stats of the current user.
type Dashboard struct {
	TotalRead     int          `json:"total_read"`
	Points        int          `json:"points"`
	ReadingStreak int          `json:"reading_streak"`
	LongestStreak int          `json:"longest_streak"`
	TopicsRead    []TopicCount `json:"topics_read"`
	DailyReads    []DailyCount `json:"daily_reads"`
}

// ChatMessage is a single turn in a conversation with the assistant.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest asks the assistant a question, optionally about one summary.
type ChatRequest struct {
	Message   string        `json:"message"`
	SummaryID string        `json:"summary_id,omitempty"`
	History   []ChatMessage `json:"history,omitempty"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Reply string `json:"reply"`
}
