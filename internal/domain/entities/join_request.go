package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusAccepted JoinRequestStatus = "accepted"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

func ParseJoinRequestStatus(s string) (JoinRequestStatus, error) {
	switch st := JoinRequestStatus(s); st {
	case JoinRequestStatusPending, JoinRequestStatusAccepted, JoinRequestStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown join request status %q", s)
}

// Terminal reports whether no further transition is possible.
func (s JoinRequestStatus) Terminal() bool {
	return s != JoinRequestStatusPending
}

// JoinRequest is a candidate's application to a team.
type JoinRequest struct {
	ID          uuid.UUID         `json:"id"`
	CandidateID uuid.UUID         `json:"candidateId"`
	TeamID      uuid.UUID         `json:"teamId"`
	Status      JoinRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// JoinRequestDetail enriches a request with the candidate or team it refers to.
type JoinRequestDetail struct {
	JoinRequest
	Candidate *Candidate `json:"candidate,omitempty"`
	Team      *Team      `json:"team,omitempty"`
}
