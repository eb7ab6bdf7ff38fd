package usecases_test

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork runs the callback inline so repository expectations apply.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, c *entities.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) GetByEmail(ctx context.Context, email string) (*entities.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Update(ctx context.Context, c *entities.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepository) BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error {
	return m.Called(ctx, id, expected).Error(0)
}

func (m *MockCandidateRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, t *entities.Team) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, t *entities.Team, expected entities.TeamStatus) error {
	return m.Called(ctx, t, expected).Error(0)
}

func (m *MockTeamRepository) BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error {
	return m.Called(ctx, id, expected).Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTeamRepository) List(ctx context.Context, f entities.TeamFilter) ([]*entities.Team, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Team), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamRepository) CountByRegionAndStatus(ctx context.Context, r entities.RegionCode, s entities.TeamStatus) (int64, error) {
	args := m.Called(ctx, r, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTeamRepository) CountByStatus(ctx context.Context) (map[entities.TeamStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.TeamStatus]int64), args.Error(1)
}

func (m *MockTeamRepository) CountByRegionAndTheme(ctx context.Context) ([]entities.RegionThemeCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RegionThemeCount), args.Error(1)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, ms *entities.Membership) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *MockMembershipRepository) GetByCandidate(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByTeam(ctx context.Context, id uuid.UUID) ([]*entities.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockMembershipRepository) ListByTeams(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*entities.TeamMember, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*entities.TeamMember), args.Error(1)
}

func (m *MockMembershipRepository) CountByTeam(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, teamID, candidateID uuid.UUID) error {
	return m.Called(ctx, teamID, candidateID).Error(0)
}

func (m *MockMembershipRepository) DeleteByTeam(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMembershipRepository) CountByRegion(ctx context.Context) (map[entities.RegionCode]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.RegionCode]int64), args.Error(1)
}

type MockJoinRequestRepository struct {
	mock.Mock
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, r *entities.JoinRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockJoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) FindPending(ctx context.Context, candidateID, teamID uuid.UUID) (*entities.JoinRequest, error) {
	args := m.Called(ctx, candidateID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListPendingByTeam(ctx context.Context, id uuid.UUID) ([]*entities.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListByCandidate(ctx context.Context, id uuid.UUID) ([]*entities.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) CountPendingByCandidate(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJoinRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.JoinRequestStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockJoinRequestRepository) RejectPendingByCandidate(ctx context.Context, candidateID, exceptID uuid.UUID) (int64, error) {
	args := m.Called(ctx, candidateID, exceptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJoinRequestRepository) RejectPendingByTeam(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) List(ctx context.Context) ([]*entities.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Region), args.Error(1)
}

func (m *MockRegionRepository) GetByCode(ctx context.Context, code entities.RegionCode) (*entities.Region, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Region), args.Error(1)
}

func (m *MockRegionRepository) BumpVersion(ctx context.Context, code entities.RegionCode, expected int64) error {
	return m.Called(ctx, code, expected).Error(0)
}

type MockDecisionPublisher struct {
	mock.Mock
}

func (m *MockDecisionPublisher) Publish(ctx context.Context, e *entities.DecisionEvent) error {
	return m.Called(ctx, e).Error(0)
}
