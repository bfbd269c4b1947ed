package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
)

// UserDirectory is the slice of the user repository the user endpoints
// need.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateSelf(ctx context.Context, id uint64, name, mail string) (model.User, error)
	UpdateRoles(ctx context.Context, id uint64, name string, trainer, admin *bool) (model.User, error)
	Delete(ctx context.Context, id uint64) error
}

// GroupJoiner records a client joining a trainer's roster.
type GroupJoiner interface {
	Join(ctx context.Context, trainerMail string, clientID uint64) error
}

// UserHandler serves account management and the group join action.
type UserHandler struct {
	Users  UserDirectory
	Groups GroupJoiner
}

func NewUserHandler(users UserDirectory, groups GroupJoiner) *UserHandler {
	return &UserHandler{Users: users, Groups: groups}
}

type userSelfUpdateReq struct {
	Name string `json:"name"`
	Mail string `json:"mail"`
}

type userAdminUpdateReq struct {
	Name    string `json:"name"`
	Trainer *bool  `json:"trainer"`
	Admin   *bool  `json:"admin"`
}

type joinGroupReq struct {
	TrainerEmail string `json:"trainerEmail"`
}

// List returns every account. The route is admin-gated.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one account. Users may only read themselves; admin listing
// covers the rest.
func (h *UserHandler) Get(c echo.Context) error {
	cur, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if cur.ID != id {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// UpdateSelf lets a user change their own name and mail.
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	cur, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if cur.ID != id {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req userSelfUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Mail = strings.ToLower(strings.TrimSpace(req.Mail))
	if req.Name == "" || !strings.Contains(req.Mail, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and mail required"})
	}
	u, err := h.Users.UpdateSelf(c.Request().Context(), id, req.Name, req.Mail)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// UpdateRoles is the admin edit: name plus optional role flag changes.
// Role changes reach new access tokens at the target's next login or
// refresh; freshly-resolved checks see them immediately.
func (h *UserHandler) UpdateRoles(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req userAdminUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	u, err := h.Users.UpdateRoles(c.Request().Context(), id, req.Name, req.Trainer, req.Admin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// Delete removes an account; trainings, memberships and the profile row
// cascade with it. Admin-gated route.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// JoinGroup puts the caller on the roster of the trainer with the given
// mail.
func (h *UserHandler) JoinGroup(c echo.Context) error {
	cur, _ := middleware.CurrentUser(c)
	var req joinGroupReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.TrainerEmail) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trainerEmail required"})
	}
	if err := h.Groups.Join(c.Request().Context(), req.TrainerEmail, cur.ID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}
