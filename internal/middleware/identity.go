package middleware

import (
	"errors"
	"os"
	"strings"

	autherrors "github.com/adamstrass/payroll-dashboard/internal/auth/errors"
	"github.com/adamstrass/payroll-dashboard/internal/shared/contextutil"
	"github.com/adamstrass/payroll-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity resolves the identity that namespaces persisted state. No
// token means the anonymous placeholder identity; a presented but
// invalid token is rejected so the user sees the failure and can retry.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)

		if tokenString == "" {
			setIdentity(c, contextutil.AnonymousIdentity)
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, autherrors.ErrInvalidToken
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, autherrors.ErrInvalidToken.Code, autherrors.ErrInvalidToken.Message, nil)
			c.Abort()
			return
		}

		identity, ok := claims["identity"].(string)
		if !ok || identity == "" {
			response.Error(c, autherrors.ErrInvalidToken.HTTPStatus, autherrors.ErrInvalidToken.Code, autherrors.ErrInvalidToken.Message, nil)
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, identity string) {
	c.Set("identity", identity)
	ctx := contextutil.WithIdentity(c.Request.Context(), identity)
	c.Request = c.Request.WithContext(ctx)
}
