package usecases

import (
	"context"
	"time"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"go.uber.org/zap"
)

// NewDecisionEvent builds the mailer payload for a committed transition.
// Recipients are every member's address, leader first.
func NewDecisionEvent(team *entities.Team, region *entities.Region, members []*entities.TeamMember, previous entities.TeamStatus, at time.Time) *entities.DecisionEvent {
	event := &entities.DecisionEvent{
		TeamID:         team.ID,
		TeamName:       team.Name,
		Region:         team.Region,
		PreviousStatus: previous,
		Decision:       team.Status,
		Recipients:     make([]string, 0, len(members)),
		OccurredAt:     at.UTC(),
	}
	if region != nil {
		event.RegionName = region.Name
		event.HackathonDate = region.HackathonDate
	}
	for _, m := range members {
		if m == nil || m.Candidate == nil {
			continue
		}
		if m.Role == entities.MemberRoleLeader {
			event.LeaderName = m.Candidate.FullName()
		}
		if m.Candidate.Email != "" {
			event.Recipients = append(event.Recipients, m.Candidate.Email)
		}
	}

	template := entities.TemplateStatusUpdate
	switch team.Status {
	case entities.TeamStatusFinalAccepted:
		template = entities.TemplateFinalAccepted
	case entities.TeamStatusSelected:
		template = entities.TemplateJurySelected
	}
	event.SubjectTemplate = template + ".subject"
	event.BodyTemplate = template + ".body"
	return event
}

// decisionNotifier hands committed transitions to the publisher. Failures
// are logged and counted; the status change is already durable.
type decisionNotifier struct {
	memberships repositories.MembershipRepository
	regions     repositories.RegionRepository
	publisher   repositories.DecisionPublisher
	metrics     *metrics.Metrics
}

func (n *decisionNotifier) notify(ctx context.Context, team *entities.Team, previous entities.TeamStatus) {
	n.metrics.Decision(string(team.Region), string(team.Status))
	if n.publisher == nil {
		return
	}

	members, err := n.memberships.ListByTeam(ctx, team.ID)
	if err != nil {
		logger.Warn(ctx, "decision event: members unavailable", zap.String("team_id", team.ID.String()), zap.Error(err))
		members = nil
	}
	region, err := n.regions.GetByCode(ctx, team.Region)
	if err != nil {
		logger.Warn(ctx, "decision event: region unavailable", zap.String("region", string(team.Region)), zap.Error(err))
		region = nil
	}

	event := NewDecisionEvent(team, region, members, previous, now())
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.metrics.PublishFailed()
		logger.Error(ctx, "decision event publish failed",
			zap.String("team_id", team.ID.String()),
			zap.String("decision", string(team.Status)),
			zap.Error(err),
		)
	}
}
