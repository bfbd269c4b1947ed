package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/konris39/TrainGymAppCalendar/internal/model"
	"github.com/konris39/TrainGymAppCalendar/internal/repository"
	"github.com/konris39/TrainGymAppCalendar/internal/utils"
)

type stubPrincipals struct {
	byMail map[string]model.User
}

func (s *stubPrincipals) GetByMail(_ context.Context, mail string) (model.User, error) {
	u, ok := s.byMail[mail]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func sessionFixture() (*utils.TokenIssuer, *stubPrincipals, model.User) {
	u := model.User{ID: 7, Name: "Ala", Mail: "ala@example.com", IsTrainer: true}
	return utils.NewTokenIssuer("acc", "ref", 15, 60),
		&stubPrincipals{byMail: map[string]model.User{u.Mail: u}},
		u
}

// runSession pushes one request through Session and reports the principal
// the terminal handler observed.
func runSession(t *testing.T, tokens *utils.TokenIssuer, users PrincipalStore, mutate func(*http.Request)) (model.User, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got model.User
	var authed bool
	h := Session(tokens, users)(func(c echo.Context) error {
		got, authed = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, request must always reach the handler", rec.Code)
	}
	return got, authed
}

func TestSessionBearerHeader(t *testing.T) {
	tokens, users, u := sessionFixture()
	tok, err := tokens.NewAccessToken(u)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	got, ok := runSession(t, tokens, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if !ok || got.ID != u.ID {
		t.Fatalf("principal = (%+v, %v), want user %d", got, ok, u.ID)
	}
}

func TestSessionCookieFallback(t *testing.T) {
	tokens, users, u := sessionFixture()
	tok, err := tokens.NewAccessToken(u)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	got, ok := runSession(t, tokens, users, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: tok})
	})
	if !ok || got.ID != u.ID {
		t.Fatalf("principal = (%+v, %v), want user %d", got, ok, u.ID)
	}
}

func TestSessionHeaderWinsOverCookie(t *testing.T) {
	tokens, users, u := sessionFixture()
	tok, _ := tokens.NewAccessToken(u)

	// Header holds garbage, cookie holds a good token: the header is the
	// chosen candidate and its failure leaves the request unauthenticated.
	_, ok := runSession(t, tokens, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
		r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: tok})
	})
	if ok {
		t.Fatal("a bad header candidate must not fall through to the cookie")
	}
}

func TestSessionSwallowsFailures(t *testing.T) {
	tokens, users, u := sessionFixture()
	foreign := utils.NewTokenIssuer("someone", "else", 15, 60)
	foreignTok, _ := foreign.NewAccessToken(u)
	refreshTok, _ := tokens.NewRefreshToken(u)
	ghost := model.User{ID: 8, Mail: "gone@example.com"}
	ghostTok, _ := tokens.NewAccessToken(ghost)

	cases := map[string]func(*http.Request){
		"no candidate":     func(r *http.Request) {},
		"malformed":        func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") },
		"wrong scheme":     func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"foreign key":      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreignTok) },
		"refresh as acc":   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+refreshTok) },
		"unknown subject":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+ghostTok) },
		"empty cookie":     func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: ""}) },
	}
	for name, mutate := range cases {
		if _, ok := runSession(t, tokens, users, mutate); ok {
			t.Errorf("%s: request must stay unauthenticated", name)
		}
	}
}

func TestSessionResolvesFreshFlags(t *testing.T) {
	tokens, users, u := sessionFixture()
	tok, _ := tokens.NewAccessToken(u) // minted while trainer

	// Flag revoked after minting; the store row wins over the claim.
	demoted := u
	demoted.IsTrainer = false
	users.byMail[u.Mail] = demoted

	got, ok := runSession(t, tokens, users, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	if !ok {
		t.Fatal("request should authenticate")
	}
	if got.IsTrainer {
		t.Fatal("principal must carry the store's current flags, not the token snapshot")
	}
}

func runGate(t *testing.T, gate echo.MiddlewareFunc, principal *model.User) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		SetCurrentUser(c, *principal)
	}
	h := gate(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("gate: %v", err)
	}
	return rec.Code
}

func TestRequireGates(t *testing.T) {
	client := model.User{ID: 1, Mail: "c@example.com"}
	trainer := model.User{ID: 2, Mail: "t@example.com", IsTrainer: true}
	admin := model.User{ID: 3, Mail: "a@example.com", IsAdmin: true}

	tests := []struct {
		name      string
		gate      echo.MiddlewareFunc
		principal *model.User
		want      int
	}{
		{"auth anonymous", RequireAuth, nil, http.StatusUnauthorized},
		{"auth client", RequireAuth, &client, http.StatusOK},
		{"trainer anonymous", RequireTrainer, nil, http.StatusUnauthorized},
		{"trainer client", RequireTrainer, &client, http.StatusForbidden},
		{"trainer trainer", RequireTrainer, &trainer, http.StatusOK},
		{"admin client", RequireAdmin, &client, http.StatusForbidden},
		{"admin admin", RequireAdmin, &admin, http.StatusOK},
	}
	for _, tt := range tests {
		if got := runGate(t, tt.gate, tt.principal); got != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, got, tt.want)
		}
	}
}
