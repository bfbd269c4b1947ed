package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

// AccessCookieName is the cookie the session middleware falls back to when
// no Authorization header is present.
const AccessCookieName = "accessToken"

// principalKey is where the resolved principal lives in the Echo context.
const principalKey = "principal"

// PrincipalStore resolves an authentication subject to its user record.
type PrincipalStore interface {
	GetByMail(ctx context.Context, mail string) (model.User, error)
}

// Session opportunistically authenticates every request. The candidate
// token is the Bearer header, else the accessToken cookie. Any failure —
// bad signature, malformed token, expiry, unknown subject — is swallowed
// and the request continues unauthenticated; handlers that need a
// principal opt in via the Require* gates. On success the principal is
// re-read from the store so downstream authorization sees current role
// flags, not the claims snapshotted into the token.
func Session(tokens *utils.TokenIssuer, users PrincipalStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			} else if ck, err := c.Cookie(AccessCookieName); err == nil {
				raw = ck.Value
			}
			if raw == "" {
				return next(c)
			}
			sub, err := tokens.ExtractSubject(raw, utils.KindAccess)
			if err != nil {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByMail(ctx, sub)
			if err != nil {
				return next(c)
			}
			if !tokens.Valid(raw, utils.KindAccess, u.Mail) {
				return next(c)
			}
			SetCurrentUser(c, u)
			return next(c)
		}
	}
}

// SetCurrentUser attaches the principal to the request context. Session is
// the only production caller; tests use it to simulate an authenticated
// request.
func SetCurrentUser(c echo.Context, u model.User) {
	c.Set(principalKey, u)
}

// CurrentUser returns the principal resolved by Session, if any.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(principalKey).(model.User)
	return u, ok
}
