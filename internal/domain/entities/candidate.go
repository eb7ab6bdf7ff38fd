package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Gender is the declared gender category. It only feeds the diversity quota.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// ParseGender rejects anything outside the fixed set.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Candidate is a registered participant.
type Candidate struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Gender       Gender      `json:"gender"`
	University   string      `json:"university"`
	Level        string      `json:"level"`
	Major        string      `json:"major"`
	Region       null.String `json:"region,omitempty"`
	TechSkills   []string    `json:"techSkills"`
	DomainSkills []string    `json:"domainSkills"`
	CVURL        null.String `json:"cvUrl,omitempty"`
	Version      int64       `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// FullName returns "First Last".
func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CandidateInput is the registration/profile payload.
type CandidateInput struct {
	FirstName    string   `json:"firstName" binding:"required,max=100"`
	LastName     string   `json:"lastName" binding:"required,max=100"`
	Email        string   `json:"email" binding:"required,email"`
	Phone        string   `json:"phone" binding:"max=32"`
	Gender       Gender   `json:"gender" binding:"required,oneof=M F O"`
	University   string   `json:"university"`
	Level        string   `json:"level"`
	Major        string   `json:"major"`
	Region       string   `json:"region"`
	TechSkills   []string `json:"techSkills"`
	DomainSkills []string `json:"domainSkills"`
	CVURL        string   `json:"cvUrl"`
}

// CandidateProfile is a candidate with their current team, if any.
type CandidateProfile struct {
	Candidate  *Candidate  `json:"candidate"`
	Membership *Membership `json:"membership,omitempty"`
	Team       *Team       `json:"team,omitempty"`
}
