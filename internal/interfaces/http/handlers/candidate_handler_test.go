package handlers

import (
	"context"
	"net/http"
	"testing"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCandidateBody = `{"firstName":"Amira","lastName":"Ben Salah","email":"amira@example.com","gender":"F"}`

func candidateRouter(actor uuid.UUID, svc *candidateServiceStub) http.Handler {
	h := &CandidateHandler{usecase: svc}
	r := testRouter(actor)
	r.POST("/candidates", h.Register)
	r.GET("/candidates/me", h.GetMe)
	r.PUT("/candidates/me", h.UpdateMe)
	return r
}

func TestCandidateHandler_Register(t *testing.T) {
	actor := uuid.New()
	svc := &candidateServiceStub{
		registerFn: func(_ context.Context, id uuid.UUID, in *entities.CandidateInput) (*entities.Candidate, error) {
			require.Equal(t, actor, id)
			return &entities.Candidate{ID: id, FirstName: in.FirstName, Email: in.Email, Gender: in.Gender}, nil
		},
	}

	w := serve(candidateRouter(actor, svc), http.MethodPost, "/candidates", validCandidateBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Amira"`)

	w = serve(candidateRouter(actor, svc), http.MethodPost, "/candidates", `{"firstName":"Amira","gender":"Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")

	w = serve(candidateRouter(uuid.Nil, svc), http.MethodPost, "/candidates", validCandidateBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCandidateHandler_Profile(t *testing.T) {
	actor := uuid.New()
	svc := &candidateServiceStub{
		profileFn: func(context.Context, uuid.UUID) (*entities.CandidateProfile, error) {
			return &entities.CandidateProfile{Candidate: &entities.Candidate{ID: actor}}, nil
		},
		updateFn: func(context.Context, uuid.UUID, *entities.CandidateInput) (*entities.Candidate, error) {
			return nil, domainerrors.ErrAlreadyMember
		},
	}
	r := candidateRouter(actor, svc)

	w := serve(r, http.MethodGet, "/candidates/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), actor.String())

	w = serve(r, http.MethodPut, "/candidates/me", validCandidateBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_MEMBER")
}
