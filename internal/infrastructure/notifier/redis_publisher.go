package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/pkg/logger"
	"fnct-hackathon.backend/pkg/redis"
	"go.uber.org/zap"
)

var rpush = redis.RPush

// RedisDecisionPublisher appends decision events to a Redis list drained by
// the mailer.
type RedisDecisionPublisher struct {
	queue string
}

func NewRedisDecisionPublisher(queue string) *RedisDecisionPublisher {
	return &RedisDecisionPublisher{queue: queue}
}

func (p *RedisDecisionPublisher) Publish(ctx context.Context, event *entities.DecisionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode decision event: %w", err)
	}
	if err := rpush(ctx, p.queue, payload); err != nil {
		return fmt.Errorf("push decision event: %w", err)
	}
	logger.Debug(ctx, "decision event queued",
		zap.String("queue", p.queue),
		zap.String("team_id", event.TeamID.String()),
		zap.String("decision", string(event.Decision)),
	)
	return nil
}

// LogDecisionPublisher only logs events. Used when Redis is not configured.
type LogDecisionPublisher struct{}

func (LogDecisionPublisher) Publish(ctx context.Context, event *entities.DecisionEvent) error {
	logger.Info(ctx, "decision event",
		zap.String("team_id", event.TeamID.String()),
		zap.String("team_name", event.TeamName),
		zap.String("decision", string(event.Decision)),
		zap.Strings("recipients", event.Recipients),
		zap.String("template", event.SubjectTemplate),
	)
	return nil
}
