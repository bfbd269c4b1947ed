package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
)

// ProfileStore reads and patches the caller's 1:1 body-stats record.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.ProfileData, error)
	UpdateByUserID(ctx context.Context, userID uint64, patch repository.ProfilePatch) (model.ProfileData, error)
}

type ProfileHandler struct {
	Profiles ProfileStore
}

func NewProfileHandler(profiles ProfileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

type profileResp struct {
	ID     uint64  `json:"id"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Age    int     `json:"age"`
	BP     float64 `json:"bp"`
	SQ     float64 `json:"sq"`
	DL     float64 `json:"dl"`
	BMI    float64 `json:"bmi"`
}

// My returns the caller's profile data.
func (h *ProfileHandler) My(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	d, err := h.Profiles.GetByUserID(c.Request().Context(), u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResp(d))
}

type profileUpdateReq struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	Age    *int     `json:"age"`
	BP     *float64 `json:"bp"`
	SQ     *float64 `json:"sq"`
	DL     *float64 `json:"dl"`
}

// Update partially edits the caller's profile; absent fields stay put.
func (h *ProfileHandler) Update(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := repository.ProfilePatch{
		Weight: req.Weight, Height: req.Height, Age: req.Age,
		BP: req.BP, SQ: req.SQ, DL: req.DL,
	}
	d, err := h.Profiles.UpdateByUserID(c.Request().Context(), u.ID, patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResp(d))
}

func toProfileResp(d model.ProfileData) profileResp {
	return profileResp{
		ID: d.ID, Weight: d.Weight, Height: d.Height, Age: d.Age,
		BP: d.BP, SQ: d.SQ, DL: d.DL, BMI: d.BMI(),
	}
}
