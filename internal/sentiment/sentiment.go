package sentiment

type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Result is the scored sentiment of a single message. Comparative is the
// raw score normalized by token count.
type Result struct {
	Score       int     `json:"score"`
	Comparative float64 `json:"comparative"`
	Label       Label   `json:"label"`
}

// CrisisSentinel is the fixed sentiment assigned to every crisis-flagged
// exchange. The message itself is never scored on that branch.
func CrisisSentinel() Result {
	return Result{Score: -10, Comparative: -1.5, Label: Negative}
}

// LabelFor derives the label from a raw score.
func LabelFor(score int) Label {
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return Neutral
	}
}
