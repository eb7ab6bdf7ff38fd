package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/interfaces/http/middleware"
	"fnct-hackathon.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type candidateServiceStub struct {
	registerFn func(context.Context, uuid.UUID, *entities.CandidateInput) (*entities.Candidate, error)
	profileFn  func(context.Context, uuid.UUID) (*entities.CandidateProfile, error)
	updateFn   func(context.Context, uuid.UUID, *entities.CandidateInput) (*entities.Candidate, error)
}

func (s *candidateServiceStub) Register(ctx context.Context, id uuid.UUID, in *entities.CandidateInput) (*entities.Candidate, error) {
	return s.registerFn(ctx, id, in)
}
func (s *candidateServiceStub) GetProfile(ctx context.Context, id uuid.UUID) (*entities.CandidateProfile, error) {
	return s.profileFn(ctx, id)
}
func (s *candidateServiceStub) UpdateProfile(ctx context.Context, id uuid.UUID, in *entities.CandidateInput) (*entities.Candidate, error) {
	return s.updateFn(ctx, id, in)
}

type teamServiceStub struct {
	createFn func(context.Context, uuid.UUID, *entities.CreateTeamInput) (*entities.TeamDetail, error)
	updateFn func(context.Context, uuid.UUID, uuid.UUID, *entities.UpdateTeamInput) (*entities.TeamDetail, error)
	getFn    func(context.Context, uuid.UUID) (*entities.TeamDetail, error)
	openFn   func(context.Context, entities.RegionCode, entities.Theme) ([]*entities.TeamSummary, error)
	listFn   func(context.Context, entities.TeamFilter, utils.PaginationParams) ([]*entities.TeamSummary, utils.PaginationMeta, error)
}

func (s *teamServiceStub) CreateTeam(ctx context.Context, a uuid.UUID, in *entities.CreateTeamInput) (*entities.TeamDetail, error) {
	return s.createFn(ctx, a, in)
}
func (s *teamServiceStub) UpdateTeamInfo(ctx context.Context, a, id uuid.UUID, in *entities.UpdateTeamInput) (*entities.TeamDetail, error) {
	return s.updateFn(ctx, a, id, in)
}
func (s *teamServiceStub) GetTeam(ctx context.Context, id uuid.UUID) (*entities.TeamDetail, error) {
	return s.getFn(ctx, id)
}
func (s *teamServiceStub) ListOpenTeams(ctx context.Context, r entities.RegionCode, th entities.Theme) ([]*entities.TeamSummary, error) {
	return s.openFn(ctx, r, th)
}
func (s *teamServiceStub) ListTeams(ctx context.Context, f entities.TeamFilter, p utils.PaginationParams) ([]*entities.TeamSummary, utils.PaginationMeta, error) {
	return s.listFn(ctx, f, p)
}

type submissionServiceStub struct {
	lockFn func(context.Context, uuid.UUID, uuid.UUID, *entities.Deliverables) (*entities.TeamDetail, error)
}

func (s *submissionServiceStub) LockAndSubmit(ctx context.Context, a, id uuid.UUID, d *entities.Deliverables) (*entities.TeamDetail, error) {
	return s.lockFn(ctx, a, id, d)
}

type membershipServiceStub struct {
	submitFn func(context.Context, uuid.UUID, uuid.UUID) (*entities.JoinRequest, error)
	acceptFn func(context.Context, uuid.UUID, uuid.UUID) (*entities.JoinRequest, error)
	rejectFn func(context.Context, uuid.UUID, uuid.UUID) (*entities.JoinRequest, error)
	cancelFn func(context.Context, uuid.UUID, uuid.UUID) (*entities.JoinRequest, error)
	teamFn   func(context.Context, uuid.UUID, uuid.UUID) ([]*entities.JoinRequestDetail, error)
	mineFn   func(context.Context, uuid.UUID) ([]*entities.JoinRequestDetail, error)
	removeFn func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error
	leaveFn  func(context.Context, uuid.UUID, uuid.UUID) error
}

func (s *membershipServiceStub) SubmitRequest(ctx context.Context, a, id uuid.UUID) (*entities.JoinRequest, error) {
	return s.submitFn(ctx, a, id)
}
func (s *membershipServiceStub) AcceptRequest(ctx context.Context, a, id uuid.UUID) (*entities.JoinRequest, error) {
	return s.acceptFn(ctx, a, id)
}
func (s *membershipServiceStub) RejectRequest(ctx context.Context, a, id uuid.UUID) (*entities.JoinRequest, error) {
	return s.rejectFn(ctx, a, id)
}
func (s *membershipServiceStub) CancelRequest(ctx context.Context, a, id uuid.UUID) (*entities.JoinRequest, error) {
	return s.cancelFn(ctx, a, id)
}
func (s *membershipServiceStub) ListTeamRequests(ctx context.Context, a, id uuid.UUID) ([]*entities.JoinRequestDetail, error) {
	return s.teamFn(ctx, a, id)
}
func (s *membershipServiceStub) ListMyRequests(ctx context.Context, a uuid.UUID) ([]*entities.JoinRequestDetail, error) {
	return s.mineFn(ctx, a)
}
func (s *membershipServiceStub) RemoveMember(ctx context.Context, a, t, c uuid.UUID) error {
	return s.removeFn(ctx, a, t, c)
}
func (s *membershipServiceStub) LeaveTeam(ctx context.Context, a, t uuid.UUID) error {
	return s.leaveFn(ctx, a, t)
}

type allocationServiceStub struct {
	rankFn   func(context.Context, entities.RegionCode) ([]*entities.RankedTeam, error)
	decideFn func(context.Context, uuid.UUID, entities.TeamStatus) (*entities.Team, error)
	reviewFn func(context.Context, uuid.UUID, entities.TeamStatus) (*entities.Team, error)
	scoreFn  func(context.Context, uuid.UUID, int) (*entities.TeamDetail, error)
}

func (s *allocationServiceStub) Rank(ctx context.Context, r entities.RegionCode) ([]*entities.RankedTeam, error) {
	return s.rankFn(ctx, r)
}
func (s *allocationServiceStub) Decide(ctx context.Context, id uuid.UUID, d entities.TeamStatus) (*entities.Team, error) {
	return s.decideFn(ctx, id, d)
}
func (s *allocationServiceStub) ReviewSubmission(ctx context.Context, id uuid.UUID, v entities.TeamStatus) (*entities.Team, error) {
	return s.reviewFn(ctx, id, v)
}
func (s *allocationServiceStub) SetQualitativeScore(ctx context.Context, id uuid.UUID, score int) (*entities.TeamDetail, error) {
	return s.scoreFn(ctx, id, score)
}

type statsServiceStub struct {
	overviewFn func(context.Context) (*entities.AdminStats, error)
}

func (s *statsServiceStub) Overview(ctx context.Context) (*entities.AdminStats, error) {
	return s.overviewFn(ctx)
}

// testRouter injects actor as the authenticated caller; uuid.Nil means anonymous.
func testRouter(actor uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != uuid.Nil {
			c.Set(middleware.ActorIDKey, actor)
		}
		c.Next()
	})
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
