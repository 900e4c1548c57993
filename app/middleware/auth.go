package middleware

import (
	"context"
	"strings"

	"github.com/huynhdieutuong/DevCamper-API/app/apperror"
	"github.com/huynhdieutuong/DevCamper-API/app/entity"
	"github.com/huynhdieutuong/DevCamper-API/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie carrying the session credential.
const SessionCookieName = "token"

const userContextKey = "user"

type sessionTokenParser interface {
	ParseSessionToken(tokenString string) (*service.Claims, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

type AuthMiddleware struct {
	tokens sessionTokenParser
	users  userFinder
}

func NewAuthMiddleware(tokens sessionTokenParser, users userFinder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Protect gates a route behind a valid session credential: bearer header or
// cookie, verified signature and expiry, resolved to a live user.
func (m *AuthMiddleware) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			logrus.Debug("Missing session credential")
			return apperror.Unauthorized("not authorized to access this route")
		}

		claims, err := m.tokens.ParseSessionToken(tokenString)
		if err != nil {
			logrus.Debug("Invalid or expired session credential")
			return apperror.Unauthorized("not authorized to access this route")
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			logrus.WithField("user_id", claims.UserID).Debug("Session credential for unknown user")
			return apperror.Unauthorized("not authorized to access this route")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// Authorize restricts a protected route to the given roles. Must run after
// Protect.
func (m *AuthMiddleware) Authorize(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return apperror.Unauthorized("not authorized to access this route")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"role":    user.Role,
			}).Warn("Role not authorized for route")
			return apperror.Forbidden("user role " + user.Role + " is not authorized to access this route")
		}
	}
}

func UserFromContext(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)
	return user
}

// SetContextUser is a test hook for handlers that expect Protect to have run.
func SetContextUser(c echo.Context, user *entity.User) {
	c.Set(userContextKey, user)
}
