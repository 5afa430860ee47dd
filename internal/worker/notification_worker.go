package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/events"
	"github.com/spec-kit/bloglist/internal/service"
)

const defaultQueueSize = 256

// NotificationWorker moves notification delivery off the request path. Events are queued by
// dispatcher subscriptions and handled on a single goroutine.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
	queue         chan events.Event
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// StartNotificationWorker subscribes to every event the notification service handles and
// starts processing. Call Stop on shutdown.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	ctx, cancel := context.WithCancel(ctx)
	w := &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, queueSize),
		cancel:        cancel,
	}

	if dispatcher != nil && notifications != nil {
		for _, eventType := range notifications.EventTypes() {
			dispatcher.Subscribe(eventType, w.enqueue)
		}
	}

	w.wg.Add(1)
	go w.run(ctx)
	return w
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full; dropping event",
			zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
	}
	return nil
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case event := <-w.queue:
			w.handle(ctx, event)
		}
	}
}

// drain handles whatever was queued before shutdown.
func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.handle(context.Background(), event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, event events.Event) {
	if err := w.notifications.Handle(ctx, event); err != nil {
		w.logger.Warn("notification failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}

// Stop cancels the worker and waits for queued events to be handled.
func (w *NotificationWorker) Stop() {
	w.cancel()
	w.wg.Wait()
}
