package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TeamStatus is the submission/selection workflow state of a team.
type TeamStatus string

const (
	TeamStatusDraft         TeamStatus = "draft"
	TeamStatusSubmitted     TeamStatus = "submitted"
	TeamStatusSelected      TeamStatus = "selected"
	TeamStatusRejected      TeamStatus = "rejected"
	TeamStatusWaitlisted    TeamStatus = "waitlisted"
	TeamStatusFinalAccepted TeamStatus = "final_accepted"
	TeamStatusFinalWaitlist TeamStatus = "final_waitlist"
)

// AllTeamStatuses lists every status in workflow order.
var AllTeamStatuses = []TeamStatus{
	TeamStatusDraft,
	TeamStatusSubmitted,
	TeamStatusSelected,
	TeamStatusRejected,
	TeamStatusWaitlisted,
	TeamStatusFinalAccepted,
	TeamStatusFinalWaitlist,
}

// ParseTeamStatus rejects unrecognized values.
func ParseTeamStatus(s string) (TeamStatus, error) {
	for _, st := range AllTeamStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown team status %q", s)
}

// Editable reports whether the team may still be modified.
func (s TeamStatus) Editable() bool {
	return s == TeamStatusDraft
}

// JuryValidated reports whether the team passed first-stage review and is
// therefore eligible for final allocation.
func (s TeamStatus) JuryValidated() bool {
	switch s {
	case TeamStatusSelected, TeamStatusFinalAccepted, TeamStatusFinalWaitlist:
		return true
	}
	return false
}

// JuryReviewable reports whether a first-stage jury decision may be applied.
func (s TeamStatus) JuryReviewable() bool {
	switch s {
	case TeamStatusSubmitted, TeamStatusSelected, TeamStatusRejected, TeamStatusWaitlisted:
		return true
	}
	return false
}

// Team is a group of candidates pursuing one project.
type Team struct {
	ID                        uuid.UUID   `json:"id"`
	Name                      string      `json:"name"`
	Description               string      `json:"description"`
	RequestProfile            string      `json:"requestProfile"`
	RequestedSkills           []string    `json:"requestedSkills"`
	Theme                     Theme       `json:"theme"`
	SecondaryTheme            Theme       `json:"secondaryTheme,omitempty"`
	SecondaryThemeDescription string      `json:"secondaryThemeDescription,omitempty"`
	Region                    RegionCode  `json:"region"`
	LeaderID                  uuid.UUID   `json:"leaderId"`
	Status                    TeamStatus  `json:"status"`
	QualitativeScore          int         `json:"qualitativeScore"`
	MotivationURL             null.String `json:"motivationUrl,omitempty"`
	VideoURL                  null.String `json:"videoUrl,omitempty"`
	PrototypeURL              null.String `json:"prototypeUrl,omitempty"`
	SubmittedAt               null.Time   `json:"submittedAt,omitempty"`
	Version                   int64       `json:"-"`
	CreatedAt                 time.Time   `json:"createdAt"`
	UpdatedAt                 time.Time   `json:"updatedAt"`
}

// CreateTeamInput is the payload for founding a team.
type CreateTeamInput struct {
	Name            string     `json:"name" binding:"required,max=120"`
	Description     string     `json:"description" binding:"required"`
	RequestProfile  string     `json:"requestProfile"`
	RequestedSkills []string   `json:"requestedSkills"`
	Theme           Theme      `json:"theme" binding:"required"`
	SecondaryTheme  Theme      `json:"secondaryTheme"`
	Region          RegionCode `json:"region" binding:"required"`
}

// UpdateTeamInput holds the fields a leader may edit while the team is a draft.
type UpdateTeamInput struct {
	Description               *string   `json:"description"`
	RequestProfile            *string   `json:"requestProfile"`
	RequestedSkills           *[]string `json:"requestedSkills"`
	SecondaryTheme            *Theme    `json:"secondaryTheme"`
	SecondaryThemeDescription *string   `json:"secondaryThemeDescription"`
}

// Deliverables is the final material persisted by the submission gate.
type Deliverables struct {
	MotivationURL             string `json:"motivationUrl"`
	VideoURL                  string `json:"videoUrl"`
	PrototypeURL              string `json:"prototypeUrl"`
	Description               string `json:"description"`
	SecondaryTheme            Theme  `json:"secondaryTheme"`
	SecondaryThemeDescription string `json:"secondaryThemeDescription"`
}

// TeamFilter narrows team listings. Zero values mean "any".
type TeamFilter struct {
	Search   string
	Region   RegionCode
	Theme    Theme
	Statuses []TeamStatus
	Limit    int
	Offset   int
}
