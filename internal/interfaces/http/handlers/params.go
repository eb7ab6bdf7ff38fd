package handlers

import (
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/interfaces/http/middleware"
	"fnct-hackathon.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorID returns the authenticated actor or writes a 401 and reports false.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetActorID(c)
	if !ok || id == uuid.Nil {
		response.Error(c, domainerrors.Unauthenticated("authentication required"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidParam parses the named path parameter or writes a 400 and reports false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
