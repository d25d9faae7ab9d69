package chat

import (
	"time"

	"github.com/mindfulai/backend/internal/sentiment"
)

// Sentiment is the persisted sentiment sub-record of an exchange.
type Sentiment struct {
	Score       int     `gorm:"column:sentiment_score;not null" json:"score"`
	Comparative float64 `gorm:"column:sentiment_comparative;not null" json:"comparative"`
	Label       string  `gorm:"column:sentiment_label;type:varchar(16);index;not null" json:"label"`
}

func sentimentFrom(r sentiment.Result) Sentiment {
	return Sentiment{Score: r.Score, Comparative: r.Comparative, Label: string(r.Label)}
}

// Exchange is one user message and its reply. Rows are written exactly once
// and never mutated.
type Exchange struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	UserMessage string    `gorm:"type:text;not null" json:"user_message"`
	BotReply    string    `gorm:"type:text;not null" json:"bot_reply"`
	IsCrisis    bool      `gorm:"index;not null" json:"is_crisis"`
	Sentiment   Sentiment `gorm:"embedded" json:"sentiment"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Exchange) TableName() string { return "chat_exchanges" }

// Turn is one prior conversation message supplied by the caller. Turns are
// transient context for the model; only the resulting exchange is persisted.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
