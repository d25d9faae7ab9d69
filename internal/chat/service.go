package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mindfulai/backend/internal/ai"
	"github.com/mindfulai/backend/internal/common"
	"github.com/mindfulai/backend/internal/safety"
	"github.com/mindfulai/backend/internal/sentiment"
)

// FallbackReply replaces the model output whenever the model capability
// fails. The underlying failure is logged and alerted, never surfaced.
const FallbackReply = "I'm having trouble processing that right now. Please try again in a moment, or consider reaching out to a mental health professional for support."

var (
	// ErrEmptyMessage rejects missing or whitespace-only input.
	ErrEmptyMessage = errors.New("chat: message is empty")

	// ErrCrisisPersist marks a persistence failure on the crisis branch.
	// The crisis reply is still returned to the caller; this error exists
	// so the failure is never silent.
	ErrCrisisPersist = errors.New("chat: failed to persist crisis exchange")
)

// Alert event kinds published to the safety alert queue.
const (
	AlertCrisisIntervention  = "crisis_intervention"
	AlertCrisisPersistFailed = "crisis_persist_failure"
	AlertModelExhausted      = "model_exhausted"
)

// AlertSink receives safety telemetry. Publishing is best-effort: failures
// are logged and must never gate the user-facing reply.
type AlertSink interface {
	Alert(ctx context.Context, kind, detail string) error
}

// Outcome is the caller-visible result of one pipeline run.
type Outcome struct {
	Reply     string
	IsCrisis  bool
	Sentiment sentiment.Result
}

// Service runs the message pipeline:
// validate -> detect crisis -> classify sentiment -> dispatch -> persist.
type Service struct {
	repo          *Repo
	provider      ai.Provider
	detector      *safety.Detector
	analyzer      sentiment.Analyzer
	alerts        AlertSink
	historyWindow int
}

func NewService(repo *Repo, provider ai.Provider, detector *safety.Detector, analyzer sentiment.Analyzer, historyWindow int) *Service {
	if detector == nil {
		detector = safety.NewDetector(nil)
	}
	if historyWindow <= 0 || historyWindow > 100 {
		historyWindow = 10
	}
	return &Service{
		repo:          repo,
		provider:      provider,
		detector:      detector,
		analyzer:      analyzer,
		historyWindow: historyWindow,
	}
}

// SetAlertSink attaches an optional telemetry sink.
func (s *Service) SetAlertSink(sink AlertSink) { s.alerts = sink }

func (s *Service) Send(ctx context.Context, message string, history []Turn) (*Outcome, error) {
	// 1) validate
	msg := strings.TrimSpace(message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	// 2) crisis detection, always before any model call
	isCrisis := s.detector.Detect(msg)

	// 3) sentiment: crisis gets the fixed sentinel, never a measurement
	var snt sentiment.Result
	if isCrisis {
		snt = sentiment.CrisisSentinel()
	} else {
		snt = s.classify(msg)
	}

	// 4) dispatch
	var reply string
	if isCrisis {
		reply = safety.CrisisReply
	} else {
		reply = s.generateReply(ctx, msg, history)
	}

	outcome := &Outcome{Reply: reply, IsCrisis: isCrisis, Sentiment: snt}

	// 5) persist exactly once, synchronously, before replying
	id, err := common.NewULID()
	if err != nil {
		return nil, fmt.Errorf("chat: new exchange id: %w", err)
	}
	exchange := &Exchange{
		ID:          id,
		UserMessage: msg,
		BotReply:    reply,
		IsCrisis:    isCrisis,
		Sentiment:   sentimentFrom(snt),
	}
	if err := s.repo.Create(ctx, exchange); err != nil {
		if isCrisis {
			// The single most safety-critical failure mode: the user must
			// still receive the helpline reply, and the loss has to be loud.
			log.Printf("CRITICAL: crisis exchange not persisted: %v", err)
			s.alert(ctx, AlertCrisisPersistFailed, err.Error())
			return outcome, fmt.Errorf("%w: %v", ErrCrisisPersist, err)
		}
		return nil, fmt.Errorf("chat: persist exchange: %w", err)
	}

	if isCrisis {
		s.alert(ctx, AlertCrisisIntervention, "crisis phrases matched, scripted reply sent")
	}
	return outcome, nil
}

// classify runs the lexicon scorer. A missing or failing scorer degrades to
// neutral rather than failing the request.
func (s *Service) classify(msg string) sentiment.Result {
	if s.analyzer == nil {
		log.Printf("chat: sentiment analyzer unavailable, defaulting to neutral")
		return sentiment.Result{Label: sentiment.Neutral}
	}
	res, err := s.analyzer.Analyze(msg)
	if err != nil {
		log.Printf("chat: sentiment analyzer failed, defaulting to neutral: %v", err)
		return sentiment.Result{Label: sentiment.Neutral}
	}
	return res
}

// generateReply invokes the model and maps every failure to FallbackReply.
// Raw model errors never reach the caller.
func (s *Service) generateReply(ctx context.Context, msg string, history []Turn) string {
	prompt := BuildPrompt(msg, history, s.historyWindow)

	reply, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		log.Printf("chat: model invocation failed: %v", err)
		s.alert(ctx, AlertModelExhausted, err.Error())
		return FallbackReply
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		log.Printf("chat: model returned empty reply: %v", ai.ErrEmptyResponse)
		s.alert(ctx, AlertModelExhausted, ai.ErrEmptyResponse.Error())
		return FallbackReply
	}
	return reply
}

func (s *Service) alert(ctx context.Context, kind, detail string) {
	if s.alerts == nil {
		return
	}
	if err := s.alerts.Alert(ctx, kind, detail); err != nil {
		log.Printf("chat: alert publish failed kind=%s err=%v", kind, err)
	}
}
