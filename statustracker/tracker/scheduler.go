package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
)

const (
	kickChannelSize   = 256
	resultChannelSize = 256
)

type pollResult struct {
	token  *core.PollToken
	result core.ReconcileResult
}

// PollSchedulerImpl drives every live poll token from one shared ticker.
// Due tokens run in their own goroutine and report back over resultCh; the loop
// is the only place where runs begin and where terminal tokens are stopped.
type PollSchedulerImpl struct {
	registry   core.PollRegistry
	reconciler core.StatusReconciler
	observer   core.ResultObserver
	interval   time.Duration

	// serializes HasToken + Start and Stop
	lock     sync.Mutex
	kickCh   chan string
	resultCh chan pollResult
	logger   hclog.Logger
}

var _ core.PollScheduler = (*PollSchedulerImpl)(nil)

func NewPollScheduler(
	registry core.PollRegistry,
	reconciler core.StatusReconciler,
	observer core.ResultObserver,
	interval time.Duration,
	logger hclog.Logger,
) *PollSchedulerImpl {
	return &PollSchedulerImpl{
		registry:   registry,
		reconciler: reconciler,
		observer:   observer,
		interval:   interval,
		kickCh:     make(chan string, kickChannelSize),
		resultCh:   make(chan pollResult, resultChannelSize),
		logger:     logger,
	}
}

func (s *PollSchedulerImpl) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("Poll scheduler started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Poll scheduler stopped")

			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		case itemID := <-s.kickCh:
			if token := s.registry.GetToken(itemID); token != nil {
				s.launch(ctx, token, time.Now(), true)
			}
		case msg := <-s.resultCh:
			s.handleResult(msg)
		}
	}
}

// StartItem registers a poll for itemID and runs it as soon as possible.
// It returns false if the item already has a live token.
func (s *PollSchedulerImpl) StartItem(itemID string) bool {
	s.lock.Lock()

	if s.registry.HasToken(itemID) {
		s.lock.Unlock()

		return false
	}

	s.registry.Start(itemID, func(ctx context.Context) core.ReconcileResult {
		return s.reconciler.Reconcile(ctx, itemID)
	}, s.interval)

	s.lock.Unlock()

	s.Kick(itemID)

	return true
}

func (s *PollSchedulerImpl) StopItem(itemID string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for token := s.registry.GetToken(itemID); token != nil; token = s.registry.GetToken(itemID) {
		s.registry.Stop(token)
	}
}

// Kick requests an immediate run for itemID. When the kick queue is full the item
// simply waits for the next tick.
func (s *PollSchedulerImpl) Kick(itemID string) {
	select {
	case s.kickCh <- itemID:
	default:
		s.logger.Debug("Kick dropped", "itemID", itemID)
	}
}

func (s *PollSchedulerImpl) ActiveItems() int {
	return len(s.registry.Tokens())
}

func (s *PollSchedulerImpl) tick(ctx context.Context, now time.Time) {
	tokens := s.registry.Tokens()

	telemetry.UpdateActivePollsGauge(len(tokens))

	for _, token := range tokens {
		s.launch(ctx, token, now, false)
	}
}

func (s *PollSchedulerImpl) launch(ctx context.Context, token *core.PollToken, now time.Time, force bool) {
	if !token.TryBeginRun(now, force) {
		if token.IsInFlight() {
			telemetry.UpdateDroppedTicksCounter(1)

			s.logger.Debug("Previous poll still running, tick dropped", "itemID", token.ItemID)
		}

		return
	}

	go func() {
		defer token.EndRun()

		result := token.PollFn(ctx)

		select {
		case s.resultCh <- pollResult{token: token, result: result}:
		case <-ctx.Done():
		}
	}()
}

func (s *PollSchedulerImpl) handleResult(msg pollResult) {
	if s.observer != nil {
		s.observer.Observe(msg.result)
	}

	if msg.result.IsTerminal() {
		s.lock.Lock()
		s.registry.Stop(msg.token)
		s.lock.Unlock()
	}
}
