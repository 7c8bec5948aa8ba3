package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "medibook/database/repository/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key under which the resolved caller id is stored.
const UserIDKey = "userID"

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.FailureResponse{
		Success: false,
		Message: msg,
	})
}

// bearerToken pulls the credential from the Authorization header, falling
// back to the jwt cookie that login sets for browser clients.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("jwt"); err == nil {
		return cookie
	}
	return ""
}

// JWTAuthUserMiddleware verifies the caller's token, confirms the referenced
// user still exists and attaches the user id to the request context. A Redis
// cache of recently verified token hashes short-circuits the store lookup;
// when the cache is unreachable the middleware falls back to the lookup
// rather than denying the request.
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "Access denied. No token provided.")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			abortUnauthorized(c, "Invalid or expired token.")
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set(UserIDKey, userID)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to store",
					zap.Error(err))
			}
		}

		// Cache miss: confirm the identity still exists.
		usr, err := repo.GetByIDWithProjection(userID, bson.M{"id": 1})
		if err != nil || usr == nil {
			abortUnauthorized(c, "User not found.")
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
