package entities

import (
	"time"

	"github.com/google/uuid"
)

// Template identifiers understood by the external mailer.
const (
	TemplateFinalAccepted = "final_accepted"
	TemplateJurySelected  = "jury_selected"
	TemplateStatusUpdate  = "status_update"
)

// DecisionEvent is handed to the notifier after a committed status change.
type DecisionEvent struct {
	TeamID          uuid.UUID  `json:"teamId"`
	TeamName        string     `json:"teamName"`
	Region          RegionCode `json:"region"`
	RegionName      string     `json:"regionName"`
	HackathonDate   time.Time  `json:"hackathonDate"`
	PreviousStatus  TeamStatus `json:"previousStatus"`
	Decision        TeamStatus `json:"decision"`
	LeaderName      string     `json:"leaderName"`
	Recipients      []string   `json:"recipients"`
	SubjectTemplate string     `json:"subjectTemplate"`
	BodyTemplate    string     `json:"bodyTemplate"`
	OccurredAt      time.Time  `json:"occurredAt"`
}
