package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/mindfulai/backend/internal/ai"
	"github.com/mindfulai/backend/internal/safety"
	"github.com/mindfulai/backend/internal/sentiment"
	"gorm.io/gorm"
)

type recordingProvider struct {
	lastPrompt string
	reply      string
	err        error
}

func (p *recordingProvider) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	p.lastPrompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type recordingSink struct {
	kinds []string
}

func (s *recordingSink) Alert(ctx context.Context, kind, detail string) error {
	_ = ctx
	_ = detail
	s.kinds = append(s.kinds, kind)
	return nil
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(text string) (sentiment.Result, error) {
	_ = text
	return sentiment.Result{}, errors.New("lexicon unavailable")
}

type failingSink struct {
	calls int
}

func (s *failingSink) Alert(ctx context.Context, kind, detail string) error {
	_ = ctx
	_ = kind
	_ = detail
	s.calls++
	return errors.New("broker unavailable")
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one in-memory database per test; pooling would hand out empty ones
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Exchange{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, provider ai.Provider) *Service {
	t.Helper()
	return NewService(NewRepo(db), provider, safety.NewDetector(nil), sentiment.NewLexiconAnalyzer(), 10)
}

func TestSendCrisisMessage(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "model reply"}
	svc := newTestService(t, db, prov)

	out, err := svc.Send(context.Background(), "I want to die today", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !out.IsCrisis {
		t.Fatalf("expected crisis flag")
	}
	if out.Reply != safety.CrisisReply {
		t.Fatalf("expected scripted crisis reply, got %q", out.Reply)
	}
	if !strings.Contains(out.Reply, "+91-9152987821") {
		t.Fatalf("crisis reply missing helpline")
	}
	if out.Sentiment.Score != -10 || out.Sentiment.Comparative != -1.5 || out.Sentiment.Label != sentiment.Negative {
		t.Fatalf("expected sentinel sentiment, got %+v", out.Sentiment)
	}
	if prov.lastPrompt != "" {
		t.Fatalf("model must not be invoked on the crisis branch")
	}

	var ex Exchange
	if err := db.First(&ex).Error; err != nil {
		t.Fatalf("query exchange: %v", err)
	}
	if !ex.IsCrisis || ex.Sentiment.Score != -10 || ex.Sentiment.Label != "negative" {
		t.Fatalf("persisted exchange wrong: %+v", ex)
	}
	if ex.BotReply != safety.CrisisReply {
		t.Fatalf("persisted reply differs from crisis script")
	}
}

func TestSendNormalMessage(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "  That sounds tough. Want to talk about it?  "}
	svc := newTestService(t, db, prov)

	out, err := svc.Send(context.Background(), "I'm feeling stressed about work", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out.IsCrisis {
		t.Fatalf("unexpected crisis flag")
	}
	if out.Reply != "That sounds tough. Want to talk about it?" {
		t.Fatalf("expected trimmed model reply, got %q", out.Reply)
	}
	if out.Sentiment.Score == -10 {
		t.Fatalf("non-crisis exchange must not carry the sentinel")
	}
	if out.Sentiment.Label != sentiment.Negative {
		t.Fatalf("expected negative lexicon label for stressed message, got %s", out.Sentiment.Label)
	}

	if !strings.Contains(prov.lastPrompt, SystemPrompt) {
		t.Fatalf("prompt missing system persona")
	}
	if !strings.Contains(prov.lastPrompt, "User: I'm feeling stressed about work") {
		t.Fatalf("prompt missing user message: %q", prov.lastPrompt)
	}

	var count int64
	if err := db.Model(&Exchange{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one persisted exchange, got %d", count)
	}
}

func TestSendAppliesHistoryWindow(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := NewService(NewRepo(db), prov, safety.NewDetector(nil), sentiment.NewLexiconAnalyzer(), 3)

	history := []Turn{
		{Role: RoleUser, Content: "turn-1"},
		{Role: RoleAssistant, Content: "turn-2"},
		{Role: RoleUser, Content: "turn-3"},
		{Role: RoleAssistant, Content: "turn-4"},
		{Role: RoleUser, Content: "turn-5"},
	}
	if _, err := svc.Send(context.Background(), "hello there", history); err != nil {
		t.Fatalf("send: %v", err)
	}

	if strings.Contains(prov.lastPrompt, "turn-1") || strings.Contains(prov.lastPrompt, "turn-2") {
		t.Fatalf("prompt should only carry the most recent window: %q", prov.lastPrompt)
	}
	for _, want := range []string{"turn-3", "turn-4", "turn-5"} {
		if !strings.Contains(prov.lastPrompt, want) {
			t.Fatalf("prompt missing windowed turn %s", want)
		}
	}
	if strings.Index(prov.lastPrompt, "turn-3") > strings.Index(prov.lastPrompt, "turn-5") {
		t.Fatalf("history must be oldest first")
	}
}

func TestSendModelFailureFallsBack(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{err: &ai.ExhaustedError{Attempts: 4, Last: &ai.ModelError{Kind: ai.KindQuota, Model: "gemini-2.5-flash", Err: errors.New("quota exceeded")}}}
	svc := newTestService(t, db, prov)
	sink := &recordingSink{}
	svc.SetAlertSink(sink)

	out, err := svc.Send(context.Background(), "I feel sad and alone", nil)
	if err != nil {
		t.Fatalf("model failure must not fail the request: %v", err)
	}
	if out.Reply != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", out.Reply)
	}
	if out.IsCrisis {
		t.Fatalf("unexpected crisis flag")
	}
	if out.Sentiment.Score == -10 || out.Sentiment.Label != sentiment.Negative {
		t.Fatalf("expected real lexicon sentiment, got %+v", out.Sentiment)
	}

	var ex Exchange
	if err := db.First(&ex).Error; err != nil {
		t.Fatalf("exchange must still be persisted: %v", err)
	}
	if ex.BotReply != FallbackReply || ex.IsCrisis {
		t.Fatalf("persisted exchange wrong: %+v", ex)
	}

	found := false
	for _, k := range sink.kinds {
		if k == AlertModelExhausted {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected model_exhausted alert, got %v", sink.kinds)
	}
}

func TestSendEmptyModelReplyFallsBack(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "   "}
	svc := newTestService(t, db, prov)

	out, err := svc.Send(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out.Reply != FallbackReply {
		t.Fatalf("expected fallback reply for empty model output, got %q", out.Reply)
	}
}

func TestSendRejectsEmptyInput(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := newTestService(t, db, prov)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), in, nil)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("input %q: expected ErrEmptyMessage, got %v", in, err)
		}
	}
	if prov.lastPrompt != "" {
		t.Fatalf("model must not be called for invalid input")
	}

	var count int64
	if err := db.Model(&Exchange{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("nothing may be persisted for invalid input, got %d rows", count)
	}
}

func TestSendCrisisPersistFailureStillReplies(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := newTestService(t, db, prov)
	sink := &recordingSink{}
	svc.SetAlertSink(sink)

	// force the write to fail
	if err := db.Migrator().DropTable(&Exchange{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	out, err := svc.Send(context.Background(), "i want to end it all", nil)
	if !errors.Is(err, ErrCrisisPersist) {
		t.Fatalf("expected ErrCrisisPersist, got %v", err)
	}
	if out == nil || out.Reply != safety.CrisisReply {
		t.Fatalf("crisis reply must survive a persistence failure")
	}

	found := false
	for _, k := range sink.kinds {
		if k == AlertCrisisPersistFailed {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected crisis_persist_failure alert, got %v", sink.kinds)
	}
}

func TestSendScorerFailureDefaultsToNeutral(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "I'm here for you."}
	svc := NewService(NewRepo(db), prov, safety.NewDetector(nil), failingAnalyzer{}, 10)

	out, err := svc.Send(context.Background(), "I feel sad and alone", nil)
	if err != nil {
		t.Fatalf("scorer failure must not fail the request: %v", err)
	}
	if out.Reply != "I'm here for you." {
		t.Fatalf("expected model reply, got %q", out.Reply)
	}
	if out.Sentiment.Score != 0 || out.Sentiment.Comparative != 0 || out.Sentiment.Label != sentiment.Neutral {
		t.Fatalf("expected neutral zero sentiment, got %+v", out.Sentiment)
	}

	var ex Exchange
	if err := db.First(&ex).Error; err != nil {
		t.Fatalf("exchange must still be persisted: %v", err)
	}
	if ex.Sentiment.Score != 0 || ex.Sentiment.Comparative != 0 || ex.Sentiment.Label != "neutral" {
		t.Fatalf("persisted sentiment wrong: %+v", ex.Sentiment)
	}
}

func TestSendNilAnalyzerDefaultsToNeutral(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := NewService(NewRepo(db), prov, safety.NewDetector(nil), nil, 10)

	out, err := svc.Send(context.Background(), "just checking in", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out.Sentiment.Score != 0 || out.Sentiment.Label != sentiment.Neutral {
		t.Fatalf("expected neutral sentiment with no analyzer, got %+v", out.Sentiment)
	}
}

func TestSendAlertFailureDoesNotGateReply(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := newTestService(t, db, prov)
	sink := &failingSink{}
	svc.SetAlertSink(sink)

	out, err := svc.Send(context.Background(), "i want to end it all", nil)
	if err != nil {
		t.Fatalf("alert publish failure must not fail the request: %v", err)
	}
	if out.Reply != safety.CrisisReply {
		t.Fatalf("expected crisis reply, got %q", out.Reply)
	}
	if sink.calls == 0 {
		t.Fatalf("sink was never invoked")
	}

	var ex Exchange
	if err := db.First(&ex).Error; err != nil {
		t.Fatalf("query exchange: %v", err)
	}
	if !ex.IsCrisis {
		t.Fatalf("persisted exchange must keep the crisis flag")
	}
}

func TestSendDetectionIndependentOfHistory(t *testing.T) {
	db := openTestDB(t)
	prov := &recordingProvider{reply: "ok"}
	svc := newTestService(t, db, prov)

	out1, err := svc.Send(context.Background(), "I want to die", nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	out2, err := svc.Send(context.Background(), "I want to die", []Turn{
		{Role: RoleUser, Content: "lovely weather today"},
		{Role: RoleAssistant, Content: "glad to hear it"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out1.IsCrisis != out2.IsCrisis || !out1.IsCrisis {
		t.Fatalf("crisis detection must not depend on history")
	}
}
