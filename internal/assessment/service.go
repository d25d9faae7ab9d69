package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mindfulai/backend/internal/common"
)

const (
	questionCount = 9
	maxAnswer     = 3
)

var (
	ErrAnswerCount = fmt.Errorf("assessment: exactly %d answers required", questionCount)
	ErrAnswerRange = fmt.Errorf("assessment: each answer must be between 0 and %d", maxAnswer)
)

// PHQ-9 severity bands.
const (
	SeverityMinimal          = "Minimal"
	SeverityMild             = "Mild"
	SeverityModerate         = "Moderate"
	SeverityModeratelySevere = "Moderately Severe"
	SeveritySevere           = "Severe"
)

// SeverityFor maps a 0-27 total score to its PHQ-9 band.
func SeverityFor(score int) string {
	switch {
	case score >= 0 && score <= 4:
		return SeverityMinimal
	case score >= 5 && score <= 9:
		return SeverityMild
	case score >= 10 && score <= 14:
		return SeverityModerate
	case score >= 15 && score <= 19:
		return SeverityModeratelySevere
	case score >= 20 && score <= 27:
		return SeveritySevere
	}
	return "Unknown"
}

type Interpretation struct {
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

var interpretations = map[string]Interpretation{
	SeverityMinimal: {
		Message:        "Your responses suggest minimal depression symptoms. Continue to monitor your mental health and practice self-care.",
		Recommendation: "Maintain healthy habits like exercise, sleep, and social connections.",
	},
	SeverityMild: {
		Message:        "Your responses suggest mild depression symptoms. Consider talking to someone you trust about how you're feeling.",
		Recommendation: "Consider lifestyle changes, stress management techniques, or talking to a counselor.",
	},
	SeverityModerate: {
		Message:        "Your responses suggest moderate depression symptoms. It's recommended to speak with a mental health professional.",
		Recommendation: "Schedule an appointment with a therapist or counselor. Treatment can be very effective.",
	},
	SeverityModeratelySevere: {
		Message:        "Your responses suggest moderately severe depression symptoms. Professional help is strongly recommended.",
		Recommendation: "Please contact a mental health professional soon. Consider medication and therapy options.",
	},
	SeveritySevere: {
		Message:        "Your responses suggest severe depression symptoms. Immediate professional help is needed.",
		Recommendation: "Please contact a mental health professional or crisis helpline immediately. Your well-being is important.",
	},
}

// InterpretationFor returns the fixed interpretation text for a band.
func InterpretationFor(severity string) Interpretation {
	if in, ok := interpretations[severity]; ok {
		return in
	}
	return Interpretation{
		Message:        "Unable to interpret results.",
		Recommendation: "Please consult a mental health professional.",
	}
}

type SubmitResult struct {
	AssessmentID   string         `json:"assessment_id"`
	TotalScore     int            `json:"total_score"`
	Severity       string         `json:"severity"`
	Interpretation Interpretation `json:"interpretation"`
	Timestamp      time.Time      `json:"timestamp"`
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Submit validates, scores and persists one questionnaire.
func (s *Service) Submit(ctx context.Context, userID string, answers []int) (*SubmitResult, error) {
	if len(answers) != questionCount {
		return nil, ErrAnswerCount
	}
	total := 0
	for _, a := range answers {
		if a < 0 || a > maxAnswer {
			return nil, ErrAnswerRange
		}
		total += a
	}

	if userID == "" {
		userID = "anonymous"
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, fmt.Errorf("assessment: new id: %w", err)
	}
	encoded, err := encodeAnswers(answers)
	if err != nil {
		return nil, fmt.Errorf("assessment: encode answers: %w", err)
	}

	severity := SeverityFor(total)
	record := &Assessment{
		ID:         id,
		UserID:     userID,
		Answers:    encoded,
		TotalScore: total,
		Severity:   severity,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("assessment: persist: %w", err)
	}

	return &SubmitResult{
		AssessmentID:   record.ID,
		TotalScore:     total,
		Severity:       severity,
		Interpretation: InterpretationFor(severity),
		Timestamp:      record.CreatedAt,
	}, nil
}

type HistoryEntry struct {
	ID       string    `json:"id"`
	Score    int       `json:"score"`
	Severity string    `json:"severity"`
	Date     time.Time `json:"date"`
}

func (s *Service) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	records, err := s.repo.ListRecent(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		out = append(out, HistoryEntry{
			ID:       r.ID,
			Score:    r.TotalScore,
			Severity: r.Severity,
			Date:     r.CreatedAt,
		})
	}
	return out, nil
}

// IsValidationError reports whether err comes from request validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrAnswerCount) || errors.Is(err, ErrAnswerRange)
}
