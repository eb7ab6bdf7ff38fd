package usecases_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/internal/infrastructure/repositories"
	"fnct-hackathon.backend/internal/usecases"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingPublisher collects published decision events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*entities.DecisionEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *entities.DecisionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Events() []*entities.DecisionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*entities.DecisionEvent(nil), p.events...)
}

type engine struct {
	db          *gorm.DB
	candidates  *repositories.CandidateRepository
	teams       *repositories.TeamRepository
	memberships *repositories.MembershipRepository
	requests    *repositories.JoinRequestRepository
	regions     *repositories.RegionRepository
	publisher   *recordingPublisher
	metrics     *metrics.Metrics

	candidateUC  *usecases.CandidateUsecase
	teamUC       *usecases.TeamUsecase
	membershipUC *usecases.MembershipUsecase
	submissionUC *usecases.SubmissionUsecase
	allocationUC *usecases.AllocationUsecase
	statsUC      *usecases.StatsUsecase
}

// newEngine wires every usecase over an in-memory SQLite store. The pool has
// a single connection, so concurrent transactions serialize.
func newEngine(t *testing.T) *engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repositories.Migrate(context.Background(), db))

	e := &engine{
		db:          db,
		candidates:  repositories.NewCandidateRepository(db),
		teams:       repositories.NewTeamRepository(db),
		memberships: repositories.NewMembershipRepository(db),
		requests:    repositories.NewJoinRequestRepository(db),
		regions:     repositories.NewRegionRepository(db),
		publisher:   &recordingPublisher{},
		metrics:     metrics.New(nil),
	}
	uow := repositories.NewUnitOfWork(db)
	policy := usecases.DefaultPolicy()
	evaluator := usecases.NewEvaluator(policy)

	e.candidateUC = usecases.NewCandidateUsecase(e.candidates, e.memberships, e.teams, uow, policy, e.metrics)
	e.teamUC = usecases.NewTeamUsecase(e.teams, e.memberships, e.requests, e.candidates, uow, evaluator, e.metrics)
	e.membershipUC = usecases.NewMembershipUsecase(e.candidates, e.teams, e.memberships, e.requests, uow, policy, e.metrics)
	e.submissionUC = usecases.NewSubmissionUsecase(e.teams, e.memberships, e.requests, uow, evaluator, e.metrics)
	e.allocationUC = usecases.NewAllocationUsecase(e.teams, e.memberships, e.regions, uow, evaluator, e.publisher, e.metrics)
	e.statsUC = usecases.NewStatsUsecase(e.candidates, e.teams, e.memberships, e.regions, policy)
	return e
}

var candidateSeq int

func (e *engine) register(t *testing.T, gender entities.Gender) uuid.UUID {
	t.Helper()
	candidateSeq++
	id := uuid.New()
	_, err := e.candidateUC.Register(context.Background(), id, &entities.CandidateInput{
		FirstName: "Candidate",
		LastName:  fmt.Sprintf("N%d", candidateSeq),
		Email:     fmt.Sprintf("c%d-%s@example.com", candidateSeq, id.String()[:8]),
		Gender:    gender,
	})
	require.NoError(t, err)
	return id
}

func (e *engine) createTeam(t *testing.T, leader uuid.UUID, region entities.RegionCode, name string) uuid.UUID {
	t.Helper()
	detail, err := e.teamUC.CreateTeam(context.Background(), leader, &entities.CreateTeamInput{
		Name:            name,
		Description:     "Digital twin of the old medina",
		RequestedSkills: []string{"Go", "GIS"},
		Theme:           entities.ThemeUrbanManagement,
		Region:          region,
	})
	require.NoError(t, err)
	return detail.Team.ID
}

// join submits and accepts a request for candidate into team.
func (e *engine) join(t *testing.T, leader, candidate, team uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	req, err := e.membershipUC.SubmitRequest(ctx, candidate, team)
	require.NoError(t, err)
	_, err = e.membershipUC.AcceptRequest(ctx, leader, req.ID)
	require.NoError(t, err)
}

// seedTeam stores a team directly in the given status, bypassing the workflow.
func (e *engine) seedTeam(t *testing.T, region entities.RegionCode, status entities.TeamStatus, submittedAt time.Time) *entities.Team {
	t.Helper()
	team := &entities.Team{
		ID:          uuid.New(),
		Name:        "Seeded " + uuid.NewString()[:6],
		Description: "Seeded team description text",
		Theme:       entities.ThemeCircularEconomy,
		Region:      region,
		LeaderID:    uuid.New(),
		Status:      status,
	}
	if !submittedAt.IsZero() {
		team.SubmittedAt.SetValid(submittedAt)
	}
	require.NoError(t, e.teams.Create(context.Background(), team))
	return team
}

func (e *engine) requestStatus(t *testing.T, candidate, team uuid.UUID) entities.JoinRequestStatus {
	t.Helper()
	reqs, err := e.requests.ListByCandidate(context.Background(), candidate)
	require.NoError(t, err)
	var found *entities.JoinRequest
	for _, r := range reqs {
		if r.TeamID == team {
			found = r
		}
	}
	require.NotNil(t, found, "no request from candidate to team")
	return found.Status
}

func (e *engine) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table(table).Count(&n).Error)
	return n
}
