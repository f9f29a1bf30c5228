// internal/domain/theme/watcher.go
package theme

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
)

// ThemeResolver is what a Watcher refreshes from
type ThemeResolver interface {
	Resolve(ctx context.Context, path string) Effective
}

// Subscriber is the part of the event bus a Watcher listens on
type Subscriber interface {
	Subscribe(kinds ...events.Kind) *events.Subscription
}

// WatcherOptions configures a Watcher
type WatcherOptions struct {
	PollInterval time.Duration
	AdminPrefix  string
}

// Watcher keeps the effective theme of one consumer current. It refreshes on
// start, on navigation, on a polling interval, on theme.changed events and on
// demand. Polling and event refreshes are suspended on admin pages.
type Watcher struct {
	resolver   ThemeResolver
	subscriber Subscriber
	opts       WatcherOptions
	logger     logrus.FieldLogger

	mu      sync.RWMutex
	page    string
	current Effective

	pageCh    chan string
	refreshCh chan struct{}
	updates   chan Effective
	startOnce sync.Once
}

// NewWatcher creates a watcher. subscriber may be nil, leaving polling as the only automatic refresh.
func NewWatcher(resolver ThemeResolver, subscriber Subscriber, opts WatcherOptions, logger logrus.FieldLogger) *Watcher {
	if opts.AdminPrefix == "" {
		opts.AdminPrefix = PageAdmin
	}
	return &Watcher{
		resolver:   resolver,
		subscriber: subscriber,
		opts:       opts,
		logger:     logger,
		pageCh:     make(chan string, 1),
		refreshCh:  make(chan struct{}, 1),
		updates:    make(chan Effective, 1),
	}
}

// Start resolves the theme for page, then keeps it current until ctx is done.
// The updates channel is closed when the watcher stops.
func (w *Watcher) Start(ctx context.Context, page string) {
	w.startOnce.Do(func() {
		w.mu.Lock()
		w.page = page
		w.mu.Unlock()

		// subscribe before the first resolution so no change is missed
		var sub *events.Subscription
		if w.subscriber != nil {
			sub = w.subscriber.Subscribe(events.ThemeChanged)
		}

		w.resolve(ctx)
		go w.run(ctx, sub)
	})
}

// SetPage switches the watched page and resolves it
func (w *Watcher) SetPage(page string) {
	for {
		select {
		case w.pageCh <- page:
			return
		default:
		}
		// replace a navigation the loop has not picked up yet
		select {
		case <-w.pageCh:
		default:
		}
	}
}

// Refresh requests an immediate resolution
func (w *Watcher) Refresh() {
	select {
	case w.refreshCh <- struct{}{}:
	default:
	}
}

// Current returns the latest resolved theme
func (w *Watcher) Current() Effective {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Updates delivers each new resolution. Only the latest unread one is kept.
func (w *Watcher) Updates() <-chan Effective {
	return w.updates
}

// Polling reports whether automatic refreshes run for the current page
func (w *Watcher) Polling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling(w.page)
}

func (w *Watcher) polling(page string) bool {
	return w.opts.PollInterval > 0 && !IsAdminPath(page, w.opts.AdminPrefix)
}

func (w *Watcher) run(ctx context.Context, sub *events.Subscription) {
	defer close(w.updates)

	var changes <-chan events.Event
	if sub != nil {
		defer sub.Close()
		changes = sub.C()
	}

	var ticker *time.Ticker
	var tick <-chan time.Time
	resetTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		w.mu.RLock()
		enabled := w.polling(w.page)
		w.mu.RUnlock()
		if enabled {
			ticker = time.NewTicker(w.opts.PollInterval)
			tick = ticker.C
		}
	}
	resetTicker()
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case page := <-w.pageCh:
			w.mu.Lock()
			w.page = page
			w.mu.Unlock()
			resetTicker()
			w.resolve(ctx)
		case <-w.refreshCh:
			w.resolve(ctx)
		case <-tick:
			w.resolve(ctx)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			w.mu.RLock()
			admin := IsAdminPath(w.page, w.opts.AdminPrefix)
			w.mu.RUnlock()
			if !admin {
				w.resolve(ctx)
			}
		}
	}
}

func (w *Watcher) resolve(ctx context.Context) {
	w.mu.RLock()
	page := w.page
	w.mu.RUnlock()

	eff := w.resolver.Resolve(ctx, page)

	w.mu.Lock()
	w.current = eff
	w.mu.Unlock()

	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- eff:
	default:
		w.logger.WithField("page", eff.Page).Debug("Dropped theme update")
	}
}
