package assessment

type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

type Questionnaire struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

var frequencyOptions = []Option{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "Several days"},
	{Value: 2, Label: "More than half the days"},
	{Value: 3, Label: "Nearly every day"},
}

var questionTexts = []string{
	"Have you had little interest or pleasure in doing things you usually enjoy?",
	"Have you been feeling down, depressed, or hopeless?",
	"Have you had trouble falling asleep, staying asleep, or sleeping too much?",
	"Have you been feeling tired or having little energy?",
	"Have you had changes in your appetite - eating too much or too little?",
	"Have you been feeling bad about yourself or feeling like you've let yourself or your family down?",
	"Have you had trouble concentrating on things like reading or watching TV?",
	"Have you been moving or speaking so slowly that others noticed? Or being so restless that you're moving around more than usual?",
	"Have you had thoughts that you would be better off not being here, or thoughts of hurting yourself?",
}

// Questions returns the fixed PHQ-9 questionnaire payload.
func Questions() Questionnaire {
	questions := make([]Question, 0, len(questionTexts))
	for i, text := range questionTexts {
		questions = append(questions, Question{
			ID:       i + 1,
			Question: text,
			Options:  frequencyOptions,
		})
	}
	return Questionnaire{
		Title:       "PHQ-9 Depression Screening",
		Description: "Over the last 2 weeks, how often have you experienced any of the following?",
		Questions:   questions,
	}
}
