package middleware

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	"github.com/dineshsutihar/Hire3-sub000/internal/config"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

// aiRateWindow is the fixed window applied to AI-backed endpoints.
const aiRateWindow = 15 * time.Minute

func keyFunc(c *gin.Context) string {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "user: " + user.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.AbortWithStatusJSON(429, utilities.ErrorResponse{
		Error: "Too many requests. Please try again later.",
	})
}

// AIRateLimiter caps requests to AI-backed endpoints per caller within a
// 15-minute fixed window. The key is the authenticated user id, falling back
// to client IP before authentication.
func AIRateLimiter(cfg *config.Config) gin.HandlerFunc {

	limit := cfg.AIRateLimit
	if limit == 0 {
		limit = 10
	}

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  aiRateWindow,
		Limit: limit,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}
