package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(errNotAuthorized.Error()))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(errNotAuthorized.Error()))
		return
	}

	userID, err := h.users.ParseAccessToken(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError(errNotAuthorized.Error()))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

// actingUserID returns the ID stored by HandleAuthMiddleware,
// or an empty string on routes that run without it.
func actingUserID(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}
