package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
)

// DecisionPublisher hands committed decisions to the external mailer.
type DecisionPublisher interface {
	Publish(ctx context.Context, event *entities.DecisionEvent) error
}
