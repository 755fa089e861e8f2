// Package service runs the survey workflow: creation from generated or
// manual questions, delivery to participants, the answer window timer and
// the close hooks that publish results.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"surveybot/extract"
	"surveybot/generator"
	"surveybot/survey"
)

var ErrNoGenerator = errors.New("service: no question generator configured")

const (
	defaultDuration = 5 * time.Minute
	defaultWorkers  = 4
	resultTimeout   = 30 * time.Second
)

// Notifier delivers survey messages to people. Implementations own their
// error reporting; the manager only logs returned errors.
type Notifier interface {
	DeliverOpening(ctx context.Context, p *survey.Participant, s *survey.Survey, window time.Duration) error
	DeliverQuestion(ctx context.Context, p *survey.Participant, s *survey.Survey, index int) error
	DeliverResult(ctx context.Context, creator *survey.Participant, r survey.Result) error
}

// Archive stores the results of closed surveys.
type Archive interface {
	SaveResult(ctx context.Context, r survey.Result) error
}

// BufferStore holds partial answers that must be dropped when a survey closes.
type BufferStore interface {
	Discard(surveyID string)
}

// Options configures a Manager. Archive and Buffers are optional.
type Options struct {
	Generator       generator.Client
	Notifier        Notifier
	Archive         Archive
	Buffers         BufferStore
	DefaultDuration time.Duration
	DeliveryWorkers int
	Logger          *zap.Logger
}

// Manager drives surveys of one community.
type Manager struct {
	community       *survey.Community
	gen             generator.Client
	notifier        Notifier
	archive         Archive
	buffers         BufferStore
	defaultDuration time.Duration
	workers         int
	logger          *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewManager creates a manager. Call Shutdown to stop its background work.
func NewManager(c *survey.Community, opts Options) *Manager {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = defaultDuration
	}
	if opts.DeliveryWorkers <= 0 {
		opts.DeliveryWorkers = defaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		community:       c,
		gen:             opts.Generator,
		notifier:        opts.Notifier,
		archive:         opts.Archive,
		buffers:         opts.Buffers,
		defaultDuration: opts.DefaultDuration,
		workers:         opts.DeliveryWorkers,
		logger:          opts.Logger.Named("manager"),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Community returns the community the manager serves.
func (m *Manager) Community() *survey.Community {
	return m.community
}

// CreateManual compiles a survey from hand-written questions.
func (m *Manager) CreateManual(drafts []survey.Draft, creator *survey.Participant) (*survey.Survey, error) {
	s, err := survey.Compile(drafts, creator, m.community)
	if err != nil {
		return nil, err
	}
	m.logger.Info("survey created", zap.String("survey_id", s.ID), zap.String("source", "manual"))
	return s, nil
}

// CreateAuto asks the generator for questions about topic and compiles them.
// A reply without usable questions is retried once with a stricter prompt.
func (m *Manager) CreateAuto(ctx context.Context, topic string, creator *survey.Participant) (*survey.Survey, error) {
	if m.gen == nil {
		return nil, ErrNoGenerator
	}
	// Fail before spending a generator call.
	if err := m.community.CheckCreate(); err != nil {
		return nil, err
	}

	if hc, ok := m.gen.(generator.HistoryClearer); ok {
		if resp := hc.ClearHistory(ctx); !resp.Success {
			m.logger.Warn("clear generator history failed", zap.String("error_code", resp.ErrorCode))
		}
	}

	drafts, code := m.generate(ctx, generator.Prompt(topic))
	if len(drafts) == 0 {
		m.logger.Info("no usable questions, retrying with strict prompt",
			zap.String("topic", topic), zap.String("error_code", code))
		drafts, code = m.generate(ctx, generator.StrictPrompt(topic))
	}
	if len(drafts) == 0 {
		m.logger.Warn("generator produced no usable questions",
			zap.String("topic", topic), zap.String("error_code", code))
		if code != "" {
			return nil, fmt.Errorf("%w (generator: %s)", survey.ErrTooFewQuestions, code)
		}
		return nil, fmt.Errorf("%w: generator reply held no usable questions", survey.ErrTooFewQuestions)
	}

	s, err := survey.Compile(drafts, creator, m.community)
	if err != nil {
		return nil, err
	}
	m.logger.Info("survey created",
		zap.String("survey_id", s.ID),
		zap.String("source", "generator"),
		zap.Int("questions", len(s.Questions)))
	return s, nil
}

// generate returns the drafts recovered from one generator reply and the
// reply's error code when it failed.
func (m *Manager) generate(ctx context.Context, prompt string) ([]survey.Draft, string) {
	resp := m.gen.SendPrompt(ctx, prompt)
	if !resp.Success {
		return nil, resp.ErrorCode
	}
	qs := extract.Questions(resp.Text())
	drafts := make([]survey.Draft, 0, len(qs))
	for _, q := range qs {
		drafts = append(drafts, survey.Draft{Text: q.Text, Options: q.Options})
	}
	return drafts, ""
}

// Open snapshots the current members, opens s and starts delivery and the
// answer window timer. requested <= 0 selects the default duration. ctx
// bounds the background work of this survey.
func (m *Manager) Open(ctx context.Context, s *survey.Survey, requested time.Duration) (time.Duration, error) {
	if requested <= 0 {
		requested = m.defaultDuration
	}
	window, err := s.Open(m.community.Members(), requested)
	if err != nil {
		if s.Abandon() {
			m.logger.Warn("survey abandoned before opening",
				zap.String("survey_id", s.ID), zap.Error(err))
		}
		return 0, err
	}
	s.OnClose(m.handleClosed)
	m.logger.Info("survey opened",
		zap.String("survey_id", s.ID),
		zap.Int("participants", len(s.Participants())),
		zap.Duration("window", window))

	m.goTracked(func() { m.scheduleClose(ctx, s, window) })
	m.goTracked(func() { m.distribute(ctx, s, window) })
	return window, nil
}

func (m *Manager) scheduleClose(ctx context.Context, s *survey.Survey, window time.Duration) {
	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-timer.C:
		if s.Close(survey.ReasonTimeout) {
			m.logger.Info("survey closed by timeout", zap.String("survey_id", s.ID))
		}
	case <-s.Done():
	case <-ctx.Done():
	case <-m.ctx.Done():
	}
}

// distribute sends the opening header and then each question to every
// participant, with at most m.workers participants in flight.
func (m *Manager) distribute(ctx context.Context, s *survey.Survey, window time.Duration) {
	if m.notifier == nil {
		return
	}
	ctx, cancel := mergeDone(ctx, m.ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for _, p := range s.Participants() {
		p := p
		g.Go(func() error {
			m.deliverTo(ctx, p, s, window)
			return nil
		})
	}
	_ = g.Wait()
}

func (m *Manager) deliverTo(ctx context.Context, p *survey.Participant, s *survey.Survey, window time.Duration) {
	log := m.logger.With(zap.String("survey_id", s.ID), zap.Int64("participant", p.ID))
	if err := m.notifier.DeliverOpening(ctx, p, s, window); err != nil {
		log.Warn("deliver opening failed", zap.Error(err))
	}
	for i := range s.Questions {
		if ctx.Err() != nil || s.State() != survey.StateOpen {
			return
		}
		if err := m.notifier.DeliverQuestion(ctx, p, s, i); err != nil {
			log.Warn("deliver question failed", zap.Int("question", i), zap.Error(err))
		}
	}
}

// handleClosed runs once per survey on the goroutine that closed it.
func (m *Manager) handleClosed(s *survey.Survey) {
	if m.buffers != nil {
		m.buffers.Discard(s.ID)
	}
	r, ok := s.Result()
	if !ok {
		return
	}
	m.logger.Info("survey closed",
		zap.String("survey_id", s.ID),
		zap.String("reason", string(r.Reason)),
		zap.Int("respondents", r.Respondents),
		zap.Int("participants", r.Participants))

	m.goTracked(func() { m.publish(s, r) })
}

func (m *Manager) publish(s *survey.Survey, r survey.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), resultTimeout)
	defer cancel()

	if m.archive != nil {
		if err := m.archive.SaveResult(ctx, r); err != nil {
			m.logger.Error("archive result failed", zap.String("survey_id", s.ID), zap.Error(err))
		}
	}
	if m.notifier != nil && s.Creator != nil {
		if err := m.notifier.DeliverResult(ctx, s.Creator, r); err != nil {
			m.logger.Warn("deliver result failed", zap.String("survey_id", s.ID), zap.Error(err))
		}
	}
}

// goTracked runs fn on a goroutine that Shutdown waits for. After Shutdown
// fn runs inline.
func (m *Manager) goTracked(fn func()) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		fn()
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		fn()
	}()
}

// Shutdown cancels pending timers and deliveries and waits for background
// work to finish. Open surveys stay open.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}

// mergeDone returns a context derived from a that is also cancelled when b
// is done.
func mergeDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
