package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tipbook/models"
	"tipbook/service"
)

const viewerKey = "viewer"

// ViewerMiddleware resolves the requesting user from the X-User-ID header set
// by the authenticating proxy. A missing, malformed or unknown ID degrades to
// the anonymous tier rather than failing the request; visibility filtering
// downstream handles the rest.
func ViewerMiddleware(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(header)
		if err != nil {
			log.WithField("header", header).Debug("Malformed X-User-ID header")
			c.Next()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			log.WithError(err).Warn("Failed to resolve viewer")
			c.Next()
			return
		}
		if user != nil {
			c.Set(viewerKey, user)
		}
		c.Next()
	}
}

// viewer returns the resolved user for this request, nil for anonymous
func viewer(c *gin.Context) *models.User {
	v, ok := c.Get(viewerKey)
	if !ok {
		return nil
	}
	return v.(*models.User)
}

// viewerTier returns the viewer's tier, anonymous when unresolved
func viewerTier(c *gin.Context) models.ViewerTier {
	return viewer(c).Tier()
}
