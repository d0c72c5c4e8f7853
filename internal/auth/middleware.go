package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/session"
)

// Middleware rejects requests without a valid bearer token and attaches the
// caller's session to the ones it lets through.
func Middleware(service Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := service.Authenticate(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		session.Attach(ctx, session.Session{UserID: userID, Token: token})
		ctx.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
