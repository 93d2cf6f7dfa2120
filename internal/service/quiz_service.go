package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"matchwell/internal/cache"
	"matchwell/internal/model"
	"matchwell/internal/payload"
	"matchwell/internal/quiz"
)

var (
	// ErrTooFewAnswers is returned when a submission has fewer answered
	// questions than the minimum the UI should have enforced.
	ErrTooFewAnswers = errors.New("answer at least 2 questions before submitting")

	// ErrBadPayload is returned when a share request carries a string
	// that does not decode to a valid payload.
	ErrBadPayload = errors.New("encoded payload did not decode")
)

// minAnswered is the submission precondition. The scorer itself
// tolerates empty input; this guard belongs to the submission surface.
const minAnswered = 2

// Default source tags per submission flow.
const (
	SourceTier1    = "quiz_tier1"
	SourceTier2    = "quiz_tier2"
	SourceCombined = "quiz_combined"
)

// Submission is one quiz submission: the answers plus attribution
// captured from the submitting page's URL.
type Submission struct {
	Answers model.Answers
	Source  string
	UTM     map[string]string
}

// QuizOutcome bundles what a submission produces: the scored result,
// the payload, and its encoded form for the results URL.
type QuizOutcome struct {
	Result  *model.TierResult       `json:"result"`
	Payload *model.ResultsPayloadV1 `json:"payload"`
	Encoded string                  `json:"encoded"`
}

// QuizService runs submissions through score → rank → gates → payload
// and fans out the side effects (stats counter, analytics event, live
// dashboard broadcast).
type QuizService struct {
	tier1 *model.QuestionSet
	tier2 *model.QuestionSet

	stats       cache.StatsCache
	shares      cache.ShareCache
	sink        *EventSink
	broadcaster Broadcaster
	log         *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(tier1, tier2 *model.QuestionSet, stats cache.StatsCache, shares cache.ShareCache, sink *EventSink, log *zap.Logger) *QuizService {
	return &QuizService{
		tier1:  tier1,
		tier2:  tier2,
		stats:  stats,
		shares: shares,
		sink:   sink,
		log:    log,
	}
}

// SetBroadcaster sets the broadcaster for live dashboard events
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Tier1Questions exposes the Tier 1 bank for the question endpoints.
func (s *QuizService) Tier1Questions() *model.QuestionSet { return s.tier1 }

// Tier2Questions exposes the Tier 2 bank for the question endpoints.
func (s *QuizService) Tier2Questions() *model.QuestionSet { return s.tier2 }

// ScoreTier1 scores a broad-screener submission.
func (s *QuizService) ScoreTier1(ctx context.Context, sub Submission) (*QuizOutcome, error) {
	if sub.Answers.Answered() < minAnswered {
		return nil, ErrTooFewAnswers
	}
	result := s.scoreTier(sub.Answers, model.Tier1)
	return s.finish(ctx, result, sub, SourceTier1)
}

// ScoreTier2 scores a standalone Tier 2 submission, including gate
// derivation.
func (s *QuizService) ScoreTier2(ctx context.Context, sub Submission) (*QuizOutcome, error) {
	if sub.Answers.Answered() < minAnswered {
		return nil, ErrTooFewAnswers
	}
	result := s.scoreTier(sub.Answers, model.Tier2)
	return s.finish(ctx, result, sub, SourceTier2)
}

// ScoreCombined merges a Tier 1 submission with an optional Tier 2
// refinement. Tier 2 answers may be empty, in which case the Tier 1
// result passes through.
func (s *QuizService) ScoreCombined(ctx context.Context, tier1Answers, tier2Answers model.Answers, sub Submission) (*QuizOutcome, error) {
	if tier1Answers.Answered() < minAnswered {
		return nil, ErrTooFewAnswers
	}
	t1 := s.scoreTier(tier1Answers, model.Tier1)

	var t2 *model.TierResult
	if tier2Answers.Answered() > 0 {
		t2 = s.scoreTier(tier2Answers, model.Tier2)
	}

	combined := quiz.Combine(t1, t2)
	return s.finish(ctx, combined, sub, SourceCombined)
}

func (s *QuizService) scoreTier(answers model.Answers, tier model.Tier) *model.TierResult {
	set := s.tier1
	if tier == model.Tier2 {
		set = s.tier2
	}

	scored := quiz.Score(answers, set)
	ranked := quiz.Rank(scored.Scores, quiz.StrategyForTier(tier))

	result := &model.TierResult{
		Tier:       tier,
		Scores:     scored.Scores,
		Reasons:    scored.Reasons,
		Top:        ranked.Top,
		Medication: ranked.Medication,
		Confidence: ranked.Confidence,
	}
	if tier == model.Tier2 {
		result.Gates = quiz.DeriveGates(answers)
	}
	return result
}

// finish builds the payload, encodes it, and fans out side effects.
// Side-effect failures are logged, never surfaced: the user still gets
// their results.
func (s *QuizService) finish(ctx context.Context, result *model.TierResult, sub Submission, defaultSource string) (*QuizOutcome, error) {
	source := sub.Source
	if source == "" {
		source = defaultSource
	}

	p := buildPayload(result, source, sub.UTM)
	encoded, err := payload.Encode(p)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for m, sc := range result.Scores {
		if m != model.ModalityMedication {
			total += sc
		}
	}

	if total > 0 && len(p.Top) > 0 {
		if err := s.stats.IncrementModality(ctx, p.Top[0]); err != nil {
			s.log.Warn("stats increment failed", zap.Error(err))
		}
	}

	if s.sink != nil {
		props := map[string]string{
			"tier":   tierTag(result.Tier),
			"source": source,
			"med":    string(p.Med),
		}
		if len(p.Top) > 0 {
			props["top"] = string(p.Top[0])
		}
		if p.Confidence != nil {
			props["confidence"] = string(p.Confidence.Level)
		}
		s.sink.Enqueue(model.Event{Name: model.EventQuizCompleted, Props: props})
	}

	if s.broadcaster != nil {
		summary := map[string]interface{}{
			"tier": result.Tier,
			"top":  p.Top,
		}
		if p.Confidence != nil {
			summary["confidence"] = p.Confidence.Level
		}
		s.broadcaster.BroadcastStats("quiz_completed", summary)
	}

	return &QuizOutcome{Result: result, Payload: p, Encoded: encoded}, nil
}

func buildPayload(result *model.TierResult, source string, utm map[string]string) *model.ResultsPayloadV1 {
	meta := &model.PayloadMeta{
		Source: source,
		TS:     time.Now().UTC().Format(time.RFC3339),
		UTM:    filterUTM(utm),
	}

	return &model.ResultsPayloadV1{
		V:          model.PayloadVersion,
		Top:        result.Top,
		Med:        result.Medication,
		Reasons:    quiz.PresentReasons(result.Reasons, result.Top),
		Confidence: result.Confidence,
		Gates:      result.Gates,
		Meta:       meta,
	}
}

// filterUTM keeps only the five standard campaign parameters with
// non-empty values.
func filterUTM(utm map[string]string) map[string]string {
	if len(utm) == 0 {
		return nil
	}
	kept := make(map[string]string)
	for _, key := range model.UTMKeys {
		if v := utm[key]; v != "" {
			kept[key] = v
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func tierTag(t model.Tier) string {
	if t == model.Tier2 {
		return "2"
	}
	return "1"
}

// Share stores an already-encoded payload under a short code. The
// string is decoded first so garbage never gets a share link.
func (s *QuizService) Share(ctx context.Context, encoded string) (string, error) {
	if payload.Decode(encoded) == nil {
		return "", ErrBadPayload
	}
	code := uuid.New().String()[:8]
	if err := s.shares.Set(ctx, code, encoded); err != nil {
		return "", err
	}
	if s.sink != nil {
		s.sink.Enqueue(model.Event{Name: model.EventResultsShared, Props: map[string]string{"code": code}})
	}
	return code, nil
}

// Resolve returns the encoded payload behind a share code, or "" when
// the code is unknown or expired.
func (s *QuizService) Resolve(ctx context.Context, code string) (string, error) {
	return s.shares.Get(ctx, code)
}
