package assessment

import (
	"encoding/json"
	"time"
)

// Assessment is one completed PHQ-9 questionnaire. Answers are stored as a
// JSON array so the row works on both sqlite and mysql.
type Assessment struct {
	ID         string    `gorm:"primaryKey;size:26" json:"id"`
	UserID     string    `gorm:"type:varchar(64);index;not null" json:"user_id"`
	Answers    string    `gorm:"type:text;not null" json:"-"`
	TotalScore int       `gorm:"not null" json:"total_score"`
	Severity   string    `gorm:"type:varchar(32);index;not null" json:"severity"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Assessment) TableName() string { return "assessments" }

func (a *Assessment) AnswerValues() ([]int, error) {
	var out []int
	if err := json.Unmarshal([]byte(a.Answers), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeAnswers(answers []int) (string, error) {
	b, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
