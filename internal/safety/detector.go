package safety

import "strings"

// DefaultCrisisPhrases is the fixed phrase list. Matching is substring,
// case-insensitive, and any single hit flags the message.
var DefaultCrisisPhrases = []string{
	"suicide",
	"kill myself",
	"self harm",
	"end my life",
	"i want to die",
	"take my life",
	"end it all",
}

// Detector flags messages containing crisis language. The phrase list is
// fixed at construction and never changes at runtime.
type Detector struct {
	phrases []string
}

func NewDetector(phrases []string) *Detector {
	if len(phrases) == 0 {
		phrases = DefaultCrisisPhrases
	}
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Detector{phrases: lowered}
}

// Detect is a pure function of the lowercased message text.
func (d *Detector) Detect(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
