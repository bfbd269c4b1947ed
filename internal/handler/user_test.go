package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/middleware"
	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
)

type stubDirectory struct {
	byID map[uint64]model.User
}

func (s *stubDirectory) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *stubDirectory) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubDirectory) UpdateSelf(_ context.Context, id uint64, name, mail string) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	u.Name, u.Mail = name, mail
	s.byID[id] = u
	return u, nil
}

func (s *stubDirectory) UpdateRoles(_ context.Context, id uint64, name string, trainer, admin *bool) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	u.Name = name
	if trainer != nil {
		u.IsTrainer = *trainer
	}
	if admin != nil {
		u.IsAdmin = *admin
	}
	s.byID[id] = u
	return u, nil
}

func (s *stubDirectory) Delete(_ context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type joinKey struct {
	trainerMail string
	clientID    uint64
}

type stubJoiner struct {
	trainers map[string]struct{} // known trainer mails
	joined   map[joinKey]struct{}
}

func (s *stubJoiner) Join(_ context.Context, trainerMail string, clientID uint64) error {
	if _, ok := s.trainers[trainerMail]; !ok {
		return repository.ErrNotFound
	}
	k := joinKey{trainerMail, clientID}
	if _, ok := s.joined[k]; ok {
		return repository.ErrConflict
	}
	s.joined[k] = struct{}{}
	return nil
}

func userFixture() (*UserHandler, *stubDirectory, *stubJoiner) {
	dir := &stubDirectory{byID: map[uint64]model.User{
		1: {ID: 1, Name: "Jan", Mail: "jan@example.com"},
		2: {ID: 2, Name: "Coach", Mail: "coach@example.com", IsTrainer: true},
	}}
	joiner := &stubJoiner{
		trainers: map[string]struct{}{"coach@example.com": {}},
		joined:   map[joinKey]struct{}{},
	}
	return NewUserHandler(dir, joiner), dir, joiner
}

func doAs(h echo.HandlerFunc, u model.User, method, body, paramID string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUser(c, u)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	_ = h(c)
	return rec
}

func TestGetSelfOnly(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]

	if rec := doAs(h.Get, me, http.MethodGet, "", "1"); rec.Code != http.StatusOK {
		t.Fatalf("own Get = %d, want 200", rec.Code)
	}
	if rec := doAs(h.Get, me, http.MethodGet, "", "2"); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign Get = %d, want 403", rec.Code)
	}
}

func TestUpdateSelf(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]

	rec := doAs(h.UpdateSelf, me, http.MethodPatch,
		`{"name":"Janek","mail":"Janek@Example.com"}`, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	if got := dir.byID[1]; got.Name != "Janek" || got.Mail != "janek@example.com" {
		t.Fatalf("stored user = %+v", got)
	}

	rec = doAs(h.UpdateSelf, me, http.MethodPatch, `{"name":"X","mail":"x@y.z"}`, "2")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign UpdateSelf = %d, want 403", rec.Code)
	}
}

func TestUpdateRolesPartialFlags(t *testing.T) {
	h, dir, _ := userFixture()
	admin := model.User{ID: 5, Mail: "adm@example.com", IsAdmin: true}

	rec := doAs(h.UpdateRoles, admin, http.MethodPatch,
		`{"name":"Jan","trainer":true}`, "1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	got := dir.byID[1]
	if !got.IsTrainer {
		t.Fatal("trainer flag must be set")
	}
	if got.IsAdmin {
		t.Fatal("absent admin flag must stay untouched")
	}
}

func TestDeleteUser(t *testing.T) {
	h, dir, _ := userFixture()
	admin := model.User{ID: 5, Mail: "adm@example.com", IsAdmin: true}

	if rec := doAs(h.Delete, admin, http.MethodDelete, "", "1"); rec.Code != http.StatusNoContent {
		t.Fatalf("Delete = %d, want 204", rec.Code)
	}
	if _, ok := dir.byID[1]; ok {
		t.Fatal("user must be gone")
	}
	if rec := doAs(h.Delete, admin, http.MethodDelete, "", "1"); rec.Code != http.StatusNotFound {
		t.Fatalf("second Delete = %d, want 404", rec.Code)
	}
}

func TestJoinGroup(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]

	rec := doAs(h.JoinGroup, me, http.MethodPost,
		`{"trainerEmail":"coach@example.com"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}
}

func TestJoinGroupUnknownTrainer(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]

	rec := doAs(h.JoinGroup, me, http.MethodPost,
		`{"trainerEmail":"nobody@example.com"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestJoinGroupDuplicate(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]
	body := `{"trainerEmail":"coach@example.com"}`

	doAs(h.JoinGroup, me, http.MethodPost, body, "")
	rec := doAs(h.JoinGroup, me, http.MethodPost, body, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate join = %d, want 409", rec.Code)
	}
}

func TestJoinGroupMissingMail(t *testing.T) {
	h, dir, _ := userFixture()
	me := dir.byID[1]

	rec := doAs(h.JoinGroup, me, http.MethodPost, `{"trainerEmail":" "}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
