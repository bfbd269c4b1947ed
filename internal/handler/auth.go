package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

// RefreshCookieName is scoped to the auth path so browsers only ever send
// the refresh token to the refresh endpoint, never site-wide.
const RefreshCookieName = "refreshToken"

const authCookiePath = "/api/auth"

// AuthUserStore is the slice of the user repository the auth endpoints
// need.
type AuthUserStore interface {
	Create(ctx context.Context, name, mail, password string, cost int) (uint64, error)
	GetByMail(ctx context.Context, mail string) (model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Tokens     *utils.TokenIssuer
	Users      AuthUserStore
	BcryptCost int
}

func NewAuthHandler(tokens *utils.TokenIssuer, users AuthUserStore, bcryptCost int) *AuthHandler {
	return &AuthHandler{Tokens: tokens, Users: users, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Mail     string `json:"mail"`
	Password string `json:"password"`
}
type loginReq struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Mail    string `json:"mail"`
	Trainer bool   `json:"trainer"`
	Admin   bool   `json:"admin"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates the user plus its empty profile row and returns the id.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Mail = strings.ToLower(strings.TrimSpace(req.Mail))
	if req.Name == "" || req.Password == "" || !strings.Contains(req.Mail, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, mail and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Name, req.Mail, req.Password, h.BcryptCost)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Login verifies credentials and issues a fresh token pair. Unknown mail
// and wrong password answer identically so the response discloses nothing.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Mail = strings.ToLower(strings.TrimSpace(req.Mail))
	if req.Mail == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mail/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByMail(ctx, req.Mail)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issuePair(c, u, http.StatusOK)
}

// Refresh rotates the full pair. The refresh token comes from its cookie,
// or from the body for non-browser clients. Any verification failure is a
// uniform 401; a subject whose user vanished is 404.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := ""
	if ck, err := c.Cookie(RefreshCookieName); err == nil {
		raw = ck.Value
	}
	if raw == "" {
		var req refreshReq
		_ = c.Bind(&req)
		raw = strings.TrimSpace(req.RefreshToken)
	}
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing refresh token"})
	}

	sub, err := h.Tokens.ExtractSubject(raw, utils.KindRefresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByMail(ctx, sub)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err != nil {
		return fail(c, err)
	}
	return h.issuePair(c, u, http.StatusOK)
}

// Logout is stateless: it instructs the client to discard both cookies.
// A still-unexpired token presented afterwards remains valid until it
// expires naturally; there is no server-side revocation state.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearCookie(c, middleware.AccessCookieName, "/")
	clearCookie(c, RefreshCookieName, authCookiePath)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// issuePair mints both tokens, sets them as HttpOnly cookies with their
// respective scopes and mirrors them in the body.
func (h *AuthHandler) issuePair(c echo.Context, u model.User, status int) error {
	access, err := h.Tokens.NewAccessToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := h.Tokens.NewRefreshToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}

	now := time.Now().UTC()
	accessExp := now.Add(h.Tokens.AccessTTL())
	refreshExp := now.Add(h.Tokens.RefreshTTL())
	setCookie(c, middleware.AccessCookieName, access, "/", accessExp)
	setCookie(c, RefreshCookieName, refresh, authCookiePath, refreshExp)

	return c.JSON(status, authResp{
		User:    toUserPart(u),
		Access:  tokenPart{Token: access, Expires: accessExp},
		Refresh: tokenPart{Token: refresh, Expires: refreshExp},
	})
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Mail: u.Mail, Trainer: u.IsTrainer, Admin: u.IsAdmin}
}

func setCookie(c echo.Context, name, value, path string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(c echo.Context, name, path string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
