package model

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Conversation is one chat turn: the user's message and the companion's reply.
type Conversation struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	UserMessage string     `db:"user_message" json:"user_message"`
	BotResponse string     `db:"bot_response" json:"bot_response"`
	Topics      StringList `db:"topics" json:"topics"`
	Sentiment   string     `db:"sentiment" json:"sentiment"`
	Source      string     `db:"source" json:"source"` // responder that produced BotResponse
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
