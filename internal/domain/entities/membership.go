package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleLeader MemberRole = "leader"
	MemberRoleMember MemberRole = "member"
)

func ParseMemberRole(s string) (MemberRole, error) {
	switch r := MemberRole(s); r {
	case MemberRoleLeader, MemberRoleMember:
		return r, nil
	}
	return "", fmt.Errorf("unknown member role %q", s)
}

// Membership binds a candidate to a team. A candidate holds at most one.
type Membership struct {
	ID          uuid.UUID  `json:"id"`
	TeamID      uuid.UUID  `json:"teamId"`
	CandidateID uuid.UUID  `json:"candidateId"`
	Role        MemberRole `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TeamMember is a membership joined with its candidate profile.
type TeamMember struct {
	Membership
	Candidate *Candidate `json:"candidate"`
}
