package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/events"
)

// LifecycleNotifier mirrors account lifecycle events onto a Redis channel
// for downstream consumers and logs them.
type LifecycleNotifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	client     *redis.Client
	channel    string
}

// NewLifecycleNotifier creates the notifier.
func NewLifecycleNotifier(dispatcher events.Dispatcher, logger *zap.Logger, client *redis.Client, cfg config.RedisConfig) *LifecycleNotifier {
	return &LifecycleNotifier{
		dispatcher: dispatcher,
		logger:     logger,
		client:     client,
		channel:    cfg.EventChannel,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *LifecycleNotifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventAccountRegistered,
		events.EventAccountActivated,
		events.EventAccountRemoved,
		events.EventAccountSoftDeleted,
		events.EventPasswordChanged,
		events.EventProfileUpdated,
	} {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *LifecycleNotifier) handle(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.Int64("account_id", event.AccountID),
		zap.String("login", event.Login))
	n.publishToRedis(ctx, event)
	return nil
}

func (n *LifecycleNotifier) publishToRedis(ctx context.Context, event events.Event) {
	if n.client == nil || n.channel == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal lifecycle event", zap.Error(err))
		return
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.logger.Warn("publish lifecycle event", zap.Error(err), zap.String("channel", n.channel))
	}
}
