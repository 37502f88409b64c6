//go:build integration

package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"balangay/internal/feed"
	"balangay/internal/platform/config"
	platformredis "balangay/internal/platform/redis"
	id "balangay/pkg/domain"
	"balangay/pkg/testutil/containers"
)

func newRedisFeed(t *testing.T) *feed.Redis {
	t.Helper()
	rc := containers.GetManager().GetRedis(t)

	client, err := platformredis.New(config.RedisConfig{
		URL:          rc.URL,
		PoolSize:     4,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	return feed.NewRedis(client)
}

func TestRedisFeedDeliversEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	f := newRedisFeed(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := f.Subscribe(ctx)
	require.NoError(t, err)

	sent := feed.Event{
		Kind:       "status",
		ResidentID: id.NewResidentID().String(),
		At:         time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, f.Publish(ctx, sent))

	select {
	case got := <-events:
		require.Equal(t, sent.Kind, got.Kind)
		require.Equal(t, sent.ResidentID, got.ResidentID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for feed event")
	}
}

func TestRedisFeedSubscriptionEndsWithContext(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	f := newRedisFeed(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := f.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-events:
		require.False(t, open, "channel should close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close after context cancel")
	}
}
