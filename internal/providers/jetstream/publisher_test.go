package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/mocks"
	"github.com/leadforge/contact-cache/internal/providers/jetstream"
)

var testConfig = jetstream.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "BILLING",
	SubjectPrefix:  "billing.usage",
	MaxReconnects:  5,
	ReconnectWait:  time.Second,
	ConnectionName: "contact-cache-test",
}

func TestNewPublisher_EnsuresStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	ctx := context.Background()

	natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
		assert.Equal(t, "BILLING", cfg.Name)
		assert.Equal(t, []string{"billing.usage.>"}, cfg.Subjects)
		assert.Equal(t, natsjs.FileStorage, cfg.Storage)
		assert.Equal(t, 24*time.Hour, cfg.Duplicates)
		return nil
	})

	pub, err := jetstream.NewPublisher(ctx, testConfig, natsJS, adapter.NewJSON())
	require.NoError(t, err)
	require.NotNil(t, pub)

	nc.EXPECT().Drain().Return(nil)
	pub.Close()
}

func TestNewPublisher_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("connect", func(t *testing.T) {
		natsJS := mocks.NewMockNatsJetStream(ctrl)
		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers available"))

		_, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "no servers available")
	})

	t.Run("stream", func(t *testing.T) {
		natsJS := mocks.NewMockNatsJetStream(ctrl)
		nc := mocks.NewMockNatsConn(ctrl)
		js := mocks.NewMockJetStream(ctrl)

		natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
		js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(errors.New("insufficient resources"))
		nc.EXPECT().Close()

		_, err := jetstream.NewPublisher(context.Background(), testConfig, natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "failed to ensure stream BILLING")
	})
}

func TestPublisher_PublishUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	ctx := context.Background()

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(nil)

	pub, err := jetstream.NewPublisher(ctx, testConfig, natsJS, adapter.NewJSON())
	require.NoError(t, err)

	event := &domain.UsageEvent{
		ID:             "01J9Z3ZB1Q3X5R7T9V2W4Y6A8C",
		UserID:         "user-1",
		CacheEntryID:   "b4c1f0e2-5d1a-4b8e-9a66-0f0e2d7c3a11",
		SourceType:     domain.SourceTypeGlobalCache,
		ActualCost:     domain.Zero(),
		SavingsAmount:  domain.MustMoney("0.049"),
		Cached:         true,
		OccurredAt:     time.Date(2031, 3, 14, 9, 0, 0, 0, time.UTC),
		CreditsCharged: 0,
	}

	js.EXPECT().
		Publish(ctx, "billing.usage.global_cache", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			assert.Len(t, opts, 1)

			var decoded domain.UsageEvent
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.ID, decoded.ID)
			assert.Equal(t, "0.049", decoded.SavingsAmount.String())
			return &natsjs.PubAck{Stream: "BILLING", Sequence: 1}, nil
		})
	require.NoError(t, pub.PublishUsage(ctx, event))

	js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&natsjs.PubAck{Stream: "BILLING", Duplicate: true}, nil)
	require.NoError(t, pub.PublishUsage(ctx, event))

	js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))
	assert.ErrorContains(t, pub.PublishUsage(ctx, event), "failed to publish usage event")

	assert.Error(t, pub.PublishUsage(ctx, nil))

	nc.EXPECT().Drain().Return(errors.New("already closed"))
	nc.EXPECT().Close()
	pub.Close()
}
