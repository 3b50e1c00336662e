package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the acting user's ID in the Gin context.
const actorKey = contextKey("actorID")

// actorHeader carries the acting user's identifier, set by the upstream
// authentication gateway. This service does not authenticate requests itself.
const actorHeader = "X-Actor-ID"

// defaultActor is recorded on audit fields when no actor header is present.
const defaultActor = "system"

// ActorMiddleware copies the upstream actor header into the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's ID from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		return defaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
