package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/queue"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
)

// LifecyclePublisherImpl queues lifecycle events and delivers them to the subscribers
// from a single dispatcher goroutine, in publish order
type LifecyclePublisherImpl struct {
	queue       *queue.ConsumerQueue[core.LifecycleEvent]
	subscribers []core.LifecycleSubscriber
	lock        sync.RWMutex
	timeNow     func() time.Time
	logger      hclog.Logger
}

var _ core.LifecyclePublisher = (*LifecyclePublisherImpl)(nil)

func NewLifecyclePublisher(subscribers []core.LifecycleSubscriber, logger hclog.Logger) *LifecyclePublisherImpl {
	return &LifecyclePublisherImpl{
		queue:       queue.NewConsumerQueue[core.LifecycleEvent](),
		subscribers: subscribers,
		timeNow:     time.Now,
		logger:      logger,
	}
}

func (p *LifecyclePublisherImpl) Subscribe(subscriber core.LifecycleSubscriber) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.subscribers = append(p.subscribers, subscriber)
}

func (p *LifecyclePublisherImpl) Publish(
	kind common.ItemKind, event common.LifecycleEventType, record common.HistoryRecord,
) {
	name := common.LifecycleEventName(kind, event)

	p.queue.Add(core.LifecycleEvent{
		Name:        name,
		Kind:        kind,
		Event:       event,
		Record:      record,
		PublishedAt: p.timeNow(),
	})

	telemetry.UpdateLifecycleEventCounter(name, 1)

	p.logger.Info("Lifecycle event published", "name", name, "itemID", record.ItemID)
}

// Start blocks and dispatches events until ctx is done or Dispose is called
func (p *LifecyclePublisherImpl) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		p.queue.Stop()
	}()

	for {
		events := p.queue.WaitForItems()
		if events == nil {
			return
		}

		for _, event := range events {
			p.dispatch(ctx, event)
		}
	}
}

func (p *LifecyclePublisherImpl) Dispose() error {
	p.queue.Stop()

	return nil
}

func (p *LifecyclePublisherImpl) dispatch(ctx context.Context, event core.LifecycleEvent) {
	p.lock.RLock()
	subscribers := append([]core.LifecycleSubscriber{}, p.subscribers...)
	p.lock.RUnlock()

	for _, subscriber := range subscribers {
		if err := subscriber.OnLifecycleEvent(ctx, event); err != nil {
			telemetry.UpdateSubscriberFailureCounter(subscriber.Name(), 1)

			if !common.IsContextDoneErr(err) {
				p.logger.Error("Lifecycle subscriber failed", "subscriber", subscriber.Name(),
					"name", event.Name, "itemID", event.Record.ItemID, "err", err)
			}
		}
	}
}
