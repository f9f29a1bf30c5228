package redisbus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
)

func TestBridge_CarriesEventsBetweenBuses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	newClient := func() *redis.Client {
		c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { c.Close() })
		return c
	}

	local := events.NewBus(logger.Discard())
	remote := events.NewBus(logger.Discard())

	localBridge := NewBridge(newClient(), "storefront:events", logger.Discard())
	remoteBridge := NewBridge(newClient(), "storefront:events", logger.Discard())
	local.AddSink(localBridge)
	remote.AddSink(remoteBridge)

	require.NoError(t, localBridge.Run(ctx, local))
	require.NoError(t, remoteBridge.Run(ctx, remote))

	localSub := local.Subscribe(events.ThemeChanged)
	defer localSub.Close()
	remoteSub := remote.Subscribe(events.ThemeChanged)
	defer remoteSub.Close()

	local.Publish(ctx, events.Event{Kind: events.ThemeChanged, Hint: "halloween"})

	select {
	case ev := <-remoteSub.C():
		assert.Equal(t, "halloween", ev.Hint)
		assert.Equal(t, local.Origin(), ev.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("event did not reach the other instance")
	}

	// the local subscriber gets the event once, not again from the echo
	select {
	case <-localSub.C():
	case <-time.After(time.Second):
		t.Fatal("local delivery missing")
	}
	select {
	case <-localSub.C():
		t.Fatal("event echoed back to its origin")
	case <-time.After(100 * time.Millisecond):
	}
}
