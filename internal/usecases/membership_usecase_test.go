package usecases_test

import (
	"context"
	"sync"
	"testing"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptRequest_RejectsEverySiblingAtomically(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leaders := []uuid.UUID{e.register(t, entities.GenderFemale), e.register(t, entities.GenderMale), e.register(t, entities.GenderFemale)}
	teamA := e.createTeam(t, leaders[0], entities.RegionSouthEast, "A")
	teamB := e.createTeam(t, leaders[1], entities.RegionSouthEast, "B")
	teamD := e.createTeam(t, leaders[2], entities.RegionCentreEast, "D")
	c := e.register(t, entities.GenderFemale)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		reqs = map[uuid.UUID]*entities.JoinRequest{}
	)
	for _, team := range []uuid.UUID{teamA, teamB, teamD} {
		wg.Add(1)
		go func(team uuid.UUID) {
			defer wg.Done()
			req, err := e.membershipUC.SubmitRequest(ctx, c, team)
			assert.NoError(t, err)
			mu.Lock()
			reqs[team] = req
			mu.Unlock()
		}(team)
	}
	wg.Wait()
	require.Len(t, reqs, 3)

	accepted, err := e.membershipUC.AcceptRequest(ctx, leaders[1], reqs[teamB].ID)
	require.NoError(t, err)
	require.Equal(t, entities.JoinRequestStatusAccepted, accepted.Status)

	assert.Equal(t, entities.JoinRequestStatusRejected, e.requestStatus(t, c, teamA))
	assert.Equal(t, entities.JoinRequestStatusAccepted, e.requestStatus(t, c, teamB))
	assert.Equal(t, entities.JoinRequestStatusRejected, e.requestStatus(t, c, teamD))

	membership, err := e.memberships.GetByCandidate(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, teamB, membership.TeamID)
	assert.Equal(t, entities.MemberRoleMember, membership.Role)
}

func TestAcceptRequest_ConcurrentAcceptsForSameCandidate(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	la, lb := e.register(t, entities.GenderMale), e.register(t, entities.GenderMale)
	teamA := e.createTeam(t, la, entities.RegionNorthWest, "A")
	teamB := e.createTeam(t, lb, entities.RegionNorthWest, "B")
	c := e.register(t, entities.GenderFemale)

	reqA, err := e.membershipUC.SubmitRequest(ctx, c, teamA)
	require.NoError(t, err)
	reqB, err := e.membershipUC.SubmitRequest(ctx, c, teamB)
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, call := range []struct {
		leader uuid.UUID
		req    uuid.UUID
	}{{la, reqA.ID}, {lb, reqB.ID}} {
		wg.Add(1)
		go func(i int, leader, req uuid.UUID) {
			defer wg.Done()
			_, errs[i] = e.membershipUC.AcceptRequest(ctx, leader, req)
		}(i, call.leader, call.req)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domainerrors.ErrAlreadyMember)
	}
	assert.Equal(t, 1, successes)

	var memberships int64
	require.NoError(t, e.db.Table("memberships").Where("candidate_id = ?", c).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)

	statuses := []entities.JoinRequestStatus{e.requestStatus(t, c, teamA), e.requestStatus(t, c, teamB)}
	assert.ElementsMatch(t, []entities.JoinRequestStatus{entities.JoinRequestStatusAccepted, entities.JoinRequestStatusRejected}, statuses)
}

func TestAcceptRequest_StaleRequestIsRejected(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	la, lb := e.register(t, entities.GenderMale), e.register(t, entities.GenderMale)
	teamA := e.createTeam(t, la, entities.RegionNorthWest, "A")
	teamB := e.createTeam(t, lb, entities.RegionNorthWest, "B")
	c := e.register(t, entities.GenderFemale)

	reqA, err := e.membershipUC.SubmitRequest(ctx, c, teamA)
	require.NoError(t, err)

	// membership in B appears without going through B's join flow
	require.NoError(t, e.memberships.Create(ctx, &entities.Membership{ID: uuid.New(), TeamID: teamB, CandidateID: c, Role: entities.MemberRoleMember}))

	_, err = e.membershipUC.AcceptRequest(ctx, la, reqA.ID)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyMember)
	assert.Equal(t, entities.JoinRequestStatusRejected, e.requestStatus(t, c, teamA))
}

func TestAcceptRequest_TeamFullAndLeaderOnly(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leader := e.register(t, entities.GenderFemale)
	team := e.createTeam(t, leader, entities.RegionCentreWest, "Full")
	for i := 0; i < 4; i++ {
		e.join(t, leader, e.register(t, entities.GenderMale), team)
	}

	outsider := e.register(t, entities.GenderFemale)
	n, err := e.memberships.CountByTeam(ctx, team)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	_, err = e.membershipUC.SubmitRequest(ctx, outsider, team)
	require.ErrorIs(t, err, domainerrors.ErrTeamFull)

	// stored directly, as if it predated the last accept
	late := &entities.JoinRequest{ID: uuid.New(), CandidateID: outsider, TeamID: team, Status: entities.JoinRequestStatusPending}
	require.NoError(t, e.requests.Create(ctx, late))

	_, err = e.membershipUC.AcceptRequest(ctx, outsider, late.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = e.membershipUC.AcceptRequest(ctx, leader, late.ID)
	require.ErrorIs(t, err, domainerrors.ErrTeamFull)

	n, err = e.memberships.CountByTeam(ctx, team)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, entities.JoinRequestStatusPending, e.requestStatus(t, outsider, team))
}

func TestSubmitRequest_ExistingMemberCreatesNoRow(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	la, lb := e.register(t, entities.GenderMale), e.register(t, entities.GenderMale)
	teamA := e.createTeam(t, la, entities.RegionSouthEast, "A")
	teamB := e.createTeam(t, lb, entities.RegionSouthEast, "B")
	c := e.register(t, entities.GenderFemale)
	e.join(t, la, c, teamA)

	before := e.countRows(t, "join_requests")
	_, err := e.membershipUC.SubmitRequest(ctx, c, teamB)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyMember)
	assert.Equal(t, before, e.countRows(t, "join_requests"))

	// leaders are members of their own team too
	_, err = e.membershipUC.SubmitRequest(ctx, la, teamB)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyMember)
}

func TestSubmitRequest_DuplicateAndNotFound(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leader := e.register(t, entities.GenderMale)
	team := e.createTeam(t, leader, entities.RegionSouthEast, "A")
	c := e.register(t, entities.GenderFemale)

	_, err := e.membershipUC.SubmitRequest(ctx, c, team)
	require.NoError(t, err)
	_, err = e.membershipUC.SubmitRequest(ctx, c, team)
	require.ErrorIs(t, err, domainerrors.ErrDuplicateRequest)

	_, err = e.membershipUC.SubmitRequest(ctx, c, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = e.membershipUC.SubmitRequest(ctx, uuid.New(), team)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSubmitRequest_GuardsTeamVersion(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leader := e.register(t, entities.GenderMale)
	team := e.createTeam(t, leader, entities.RegionSouthEast, "Guarded")
	stale, err := e.teams.GetByID(ctx, team)
	require.NoError(t, err)

	_, err = e.membershipUC.SubmitRequest(ctx, e.register(t, entities.GenderFemale), team)
	require.NoError(t, err)

	// a lock that read the team before the application was filed must not commit
	require.ErrorIs(t, e.teams.BumpVersion(ctx, team, stale.Version), domainerrors.ErrConcurrencyConflict)

	_, err = e.submissionUC.LockAndSubmit(ctx, leader, team, nil)
	require.NoError(t, err)
	_, err = e.membershipUC.SubmitRequest(ctx, e.register(t, entities.GenderFemale), team)
	require.ErrorIs(t, err, domainerrors.ErrTeamLocked)
}

func TestRejectAndCancelRequest(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leader := e.register(t, entities.GenderMale)
	team := e.createTeam(t, leader, entities.RegionSouthEast, "A")
	c1, c2 := e.register(t, entities.GenderFemale), e.register(t, entities.GenderFemale)

	r1, err := e.membershipUC.SubmitRequest(ctx, c1, team)
	require.NoError(t, err)
	r2, err := e.membershipUC.SubmitRequest(ctx, c2, team)
	require.NoError(t, err)

	pending, err := e.membershipUC.ListTeamRequests(ctx, leader, team)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.NotNil(t, pending[0].Candidate)

	_, err = e.membershipUC.ListTeamRequests(ctx, c1, team)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = e.membershipUC.RejectRequest(ctx, c1, r1.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Equal(t, "Only the team leader can perform this action.", domainerrors.Message(err))

	got, err := e.membershipUC.RejectRequest(ctx, leader, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JoinRequestStatusRejected, got.Status)
	// idempotent on terminal requests
	got, err = e.membershipUC.RejectRequest(ctx, leader, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JoinRequestStatusRejected, got.Status)

	_, err = e.membershipUC.CancelRequest(ctx, c1, r2.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Equal(t, "Only the applicant can withdraw this request.", domainerrors.Message(err))
	got, err = e.membershipUC.CancelRequest(ctx, c2, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.JoinRequestStatusRejected, got.Status)

	mine, err := e.membershipUC.ListMyRequests(ctx, c2)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, team, mine[0].Team.ID)

	_, err = e.membershipUC.AcceptRequest(ctx, leader, r2.ID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidState)
}

func TestRemoveMemberAndLeaveTeam(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	leader := e.register(t, entities.GenderFemale)
	team := e.createTeam(t, leader, entities.RegionCentreEast, "A")
	m1, m2 := e.register(t, entities.GenderMale), e.register(t, entities.GenderFemale)
	e.join(t, leader, m1, team)
	e.join(t, leader, m2, team)

	require.ErrorIs(t, e.membershipUC.RemoveMember(ctx, m1, team, m2), domainerrors.ErrUnauthorized)
	require.ErrorIs(t, e.membershipUC.RemoveMember(ctx, leader, team, leader), domainerrors.ErrLeaderRemoval)
	require.ErrorIs(t, e.membershipUC.RemoveMember(ctx, leader, team, uuid.New()), domainerrors.ErrNotFound)
	require.NoError(t, e.membershipUC.RemoveMember(ctx, leader, team, m1))

	require.ErrorIs(t, e.membershipUC.LeaveTeam(ctx, leader, team), domainerrors.ErrLeaderRemoval)
	require.NoError(t, e.membershipUC.LeaveTeam(ctx, m2, team))

	// a pending applicant is turned away when the leader disbands
	applicant := e.register(t, entities.GenderMale)
	_, err := e.membershipUC.SubmitRequest(ctx, applicant, team)
	require.NoError(t, err)

	require.NoError(t, e.membershipUC.LeaveTeam(ctx, leader, team))
	_, err = e.teams.GetByID(ctx, team)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Equal(t, entities.JoinRequestStatusRejected, e.requestStatus(t, applicant, team))
	assert.Zero(t, e.countRows(t, "memberships"))
}
