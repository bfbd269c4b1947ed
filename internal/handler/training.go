package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/service"
)

// dateLayout is the wire format for training dates; times of day are not
// part of the domain.
const dateLayout = "2006-01-02"

// TrainingHandler exposes the training lifecycle over HTTP. All rules live
// in the service; this layer only binds, validates shape and maps errors.
type TrainingHandler struct {
	Svc *service.TrainingService
}

func NewTrainingHandler(svc *service.TrainingService) *TrainingHandler {
	return &TrainingHandler{Svc: svc}
}

type trainingCreateReq struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TrainingDate string `json:"trainingDate"`
	AskTrainer   bool   `json:"askTrainer"`
}

type trainingUpdateReq struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	TrainingDate *string `json:"trainingDate"`
}

type trainingResp struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	TrainingDate string `json:"trainingDate"`
	Completed    bool   `json:"completed"`
	Accepted     bool   `json:"accepted"`
}

// Create schedules a new training for the caller. With askTrainer set the
// training starts pending and the caller's trainer is notified
// asynchronously after the row is persisted.
func (h *TrainingHandler) Create(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	var req trainingCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	date, err := time.Parse(dateLayout, req.TrainingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trainingDate must be YYYY-MM-DD"})
	}

	t, err := h.Svc.Create(c.Request().Context(), u.ID, service.CreateTrainingInput{
		Name:         req.Name,
		Description:  req.Description,
		TrainingDate: date,
		AskTrainer:   req.AskTrainer,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toTrainingResp(t))
}

// ListMine returns the caller's trainings.
func (h *TrainingHandler) ListMine(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	list, err := h.Svc.List(c.Request().Context(), u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toTrainingResps(list))
}

// Get returns one owned training; foreign ids look like missing ones.
func (h *TrainingHandler) Get(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Svc.Get(c.Request().Context(), u.ID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toTrainingResp(t))
}

// Update applies a partial edit to an owned training.
func (h *TrainingHandler) Update(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req trainingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := service.UpdateTrainingInput{Name: req.Name, Description: req.Description}
	if req.TrainingDate != nil {
		date, err := time.Parse(dateLayout, *req.TrainingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "trainingDate must be YYYY-MM-DD"})
		}
		in.TrainingDate = &date
	}
	t, err := h.Svc.Update(c.Request().Context(), u.ID, id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toTrainingResp(t))
}

// Complete marks an owned training done; repeating it is a no-op success.
func (h *TrainingHandler) Complete(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Svc.Complete(c.Request().Context(), u.ID, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toTrainingResp(t))
}

// Delete removes an owned training.
func (h *TrainingHandler) Delete(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), u.ID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Pending lists the unaccepted trainings of the trainer's roster clients.
func (h *TrainingHandler) Pending(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	list, err := h.Svc.ListPending(c.Request().Context(), u)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toTrainingResps(list))
}

// Accept approves a roster client's pending training.
func (h *TrainingHandler) Accept(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Accept(c.Request().Context(), u, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Decline rejects the request by deleting the training outright.
func (h *TrainingHandler) Decline(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Svc.Decline(c.Request().Context(), u, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toTrainingResp(t model.Training) trainingResp {
	return trainingResp{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		TrainingDate: t.TrainingDate.Format(dateLayout),
		Completed:    t.Completed,
		Accepted:     t.Accepted,
	}
}

func toTrainingResps(list []model.Training) []trainingResp {
	out := make([]trainingResp, 0, len(list))
	for _, t := range list {
		out = append(out, toTrainingResp(t))
	}
	return out
}
