package sentiment

import (
	"strings"
	"unicode"
)

// Analyzer is the lexicon-scoring capability consumed by the chat pipeline.
type Analyzer interface {
	Analyze(text string) (Result, error)
}

// lexicon is an AFINN-style valence table. Scores range -5..5; words absent
// from the table contribute nothing.
var lexicon = map[string]int{
	// positive
	"good": 3, "great": 3, "better": 2, "best": 3, "fine": 2,
	"happy": 3, "happiness": 3, "joy": 3, "glad": 3, "hope": 2,
	"hopeful": 2, "love": 3, "loved": 3, "like": 2, "liked": 2,
	"calm": 2, "relaxed": 2, "peaceful": 2, "grateful": 3, "thankful": 2,
	"thanks": 2, "thank": 2, "excited": 3, "proud": 2, "confident": 2,
	"support": 2, "supported": 2, "helpful": 2, "helping": 2, "improve": 2,
	"improving": 2, "improved": 2, "progress": 2, "strong": 2, "stronger": 2,
	"motivated": 2, "energetic": 2, "rested": 2, "comfort": 2, "comforted": 2,
	"wonderful": 4, "amazing": 4, "awesome": 4, "fantastic": 4,

	// negative
	"bad": -3, "worse": -3, "worst": -3, "sad": -2, "sadness": -2,
	"unhappy": -2, "depressed": -2, "depression": -2, "miserable": -3,
	"hopeless": -2, "worthless": -2, "helpless": -2, "lonely": -2,
	"alone": -2, "isolated": -2, "anxious": -2, "anxiety": -2,
	"panic": -3, "afraid": -2, "scared": -2, "fear": -2, "worried": -3,
	"worry": -3, "stress": -1, "stressed": -2, "overwhelmed": -2,
	"tired": -2, "exhausted": -2, "drained": -2, "numb": -2,
	"angry": -3, "anger": -3, "frustrated": -2, "frustrating": -2,
	"upset": -2, "hurt": -2, "hurting": -2, "pain": -2, "painful": -2,
	"crying": -2, "cry": -1, "cried": -2, "guilt": -3, "guilty": -3,
	"ashamed": -2, "shame": -2, "failure": -2, "failed": -2, "useless": -2,
	"terrible": -3, "awful": -3, "horrible": -3, "hate": -3, "hated": -3,
	"insomnia": -2, "nightmare": -3, "grief": -2, "grieving": -2,
	"empty": -1, "lost": -3, "broken": -1, "struggling": -2, "struggle": -2,
}

// LexiconAnalyzer scores text by summing lexicon valences over its tokens.
type LexiconAnalyzer struct{}

func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{}
}

func (a *LexiconAnalyzer) Analyze(text string) (Result, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Result{Label: Neutral}, nil
	}

	score := 0
	for _, tok := range tokens {
		score += lexicon[tok]
	}

	return Result{
		Score:       score,
		Comparative: float64(score) / float64(len(tokens)),
		Label:       LabelFor(score),
	}, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}
