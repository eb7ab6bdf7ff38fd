package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fnct-hackathon.backend/pkg/logger"
	"fnct-hackathon.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is how long a key stays claimed while the request runs
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayed
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// storedResponse is what gets replayed for a repeated key.
type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// idempotencyKey scopes a client key to the actor and the concrete request
// target, so one key reused on another endpoint or resource runs normally.
func idempotencyKey(actorID, method, path, key string) string {
	return fmt.Sprintf("idempotency:%s:%s:%s:%s", actorID, method, path, key)
}

// IdempotencyMiddleware replays the first completed response for a repeated
// Idempotency-Key from the same actor on the same method and path. Only 2xx
// responses are kept, so a failed attempt can be retried with the same key.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		actorID, _ := GetActorID(c)
		storageKey := idempotencyKey(actorID.String(), c.Request.Method, c.Request.URL.Path, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "IDEMPOTENCY_CONFLICT",
				"message": "A request with this Idempotency-Key is already in progress.",
			})
			return
		case err == nil:
			var stored storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr != nil || stored.Status == 0 {
				logger.Warn(ctx, "idempotency: unreadable cached response", zap.String("key", storageKey))
				c.Next()
				return
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
			c.Abort()
			return
		case !redis.IsNil(err):
			// store unavailable: serve without replay protection
			logger.Warn(ctx, "idempotency: redis unavailable", zap.Error(err))
			c.Next()
			return
		}

		claimed, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "IDEMPOTENCY_CONFLICT",
				"message": "A request with this Idempotency-Key is already in progress.",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(storedResponse{Status: status, Body: w.body.String()})
			if err == nil {
				err = redisSet(ctx, storageKey, string(payload), RetentionDuration)
			}
			if err == nil {
				return
			}
			logger.Warn(ctx, "idempotency: store response failed", zap.Error(err))
		}
		_ = redisDel(ctx, storageKey)
	}
}
