package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/service"
)

// RecommendedStore reads the workout templates.
type RecommendedStore interface {
	List(ctx context.Context) ([]model.RecommendedTraining, error)
	GetByID(ctx context.Context, id uint64) (model.RecommendedTraining, error)
}

// RecommendedHandler serves the template catalogue and schedules real
// trainings from it through the lifecycle engine, so the approval path
// behaves identically for template-based trainings.
type RecommendedHandler struct {
	Recs RecommendedStore
	Svc  *service.TrainingService
}

func NewRecommendedHandler(recs RecommendedStore, svc *service.TrainingService) *RecommendedHandler {
	return &RecommendedHandler{Recs: recs, Svc: svc}
}

type recommendedResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type scheduleReq struct {
	TrainingDate string `json:"trainingDate"`
	AskTrainer   bool   `json:"askTrainer"`
}

// List returns all templates.
func (h *RecommendedHandler) List(c echo.Context) error {
	list, err := h.Recs.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	out := make([]recommendedResp, 0, len(list))
	for _, t := range list {
		out = append(out, recommendedResp{ID: t.ID, Name: t.Name, Description: t.Description, Type: t.Type})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one template.
func (h *RecommendedHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Recs.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, recommendedResp{ID: t.ID, Name: t.Name, Description: t.Description, Type: t.Type})
}

// Schedule instantiates the template as a training for the caller on the
// given date.
func (h *RecommendedHandler) Schedule(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := time.Parse(dateLayout, req.TrainingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trainingDate must be YYYY-MM-DD"})
	}

	tpl, err := h.Recs.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	t, err := h.Svc.Create(c.Request().Context(), u.ID, service.CreateTrainingInput{
		Name:         tpl.Name,
		Description:  tpl.Description,
		TrainingDate: date,
		AskTrainer:   req.AskTrainer,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toTrainingResp(t))
}
