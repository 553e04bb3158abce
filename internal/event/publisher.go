// Package event delivers alert lifecycle notifications to interested
// consumers over Redis pub/sub.
package event

import (
	"context"
	"encoding/json"

	"alerts-srv/internal/alert"
	pkgLog "alerts-srv/pkg/log"
	pkgRedis "alerts-srv/pkg/redis"
)

type redisPublisher struct {
	l     pkgLog.Logger
	redis pkgRedis.IRedis
}

// NewRedisPublisher returns a publisher that broadcasts each event on its
// topic as a Redis channel. Delivery is best-effort; failures are logged and
// never surfaced to the caller.
func NewRedisPublisher(l pkgLog.Logger, redis pkgRedis.IRedis) alert.Publisher {
	return &redisPublisher{l: l, redis: redis}
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.l.Errorf(ctx, "internal.event.Publish.Marshal: %v", err)
		return
	}

	if err := p.redis.Publish(ctx, topic, body); err != nil {
		p.l.Errorf(ctx, "internal.event.Publish: %s: %v", topic, err)
	}
}
