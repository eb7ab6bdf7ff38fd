package response

import (
	"net/http"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps err to its stable code and message. Internal details are
// logged, never sent.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
