package middlewares

import (
	"log"
	"net/http"
	"strings"

	"decor/src/config"
	"decor/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth guards the admin surface. There is a single admin
// principal; tokens are issued by the login handler.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	jwtKey := []byte(cfg.JWTSecret)
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
		if reqToken == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !tkn.Valid || claims.Role != "admin" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Set("username", claims.Username)
		ctx.Set("role", claims.Role)
	}
}
