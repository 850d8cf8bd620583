package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func setupAdminRouter(t *testing.T) *chi.Mux {
	t.Helper()
	r, store := testRouter(t)

	if err := SeedAdmin(context.Background(), testLogger(), store, "admin@example.com", "sekrit-pass"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return r
}

func loginAdmin(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@example.com", Password: "sekrit-pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func doAdmin(t *testing.T, r http.Handler, cookie *http.Cookie, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decode response from %s %s: %v", method, path, err)
		}
	}
	return w
}

func TestAdminLogin(t *testing.T) {
	r := setupAdminRouter(t)

	cookie := loginAdmin(t, r)

	var me AdminMeResponse
	w := doAdmin(t, r, cookie, http.MethodGet, "/api/admin/me", nil, &me)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	if me.Email != "admin@example.com" || me.ID == "" {
		t.Fatalf("unexpected me response: %+v", me)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	r := setupAdminRouter(t)

	cases := []struct {
		name string
		req  AdminLoginRequest
	}{
		{"wrong password", AdminLoginRequest{Email: "admin@example.com", Password: "nope"}},
		{"unknown email", AdminLoginRequest{Email: "ghost@example.com", Password: "sekrit-pass"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doAdmin(t, r, nil, http.MethodPost, "/api/admin/login", tc.req, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAdminLogoutInvalidatesSession(t *testing.T) {
	r := setupAdminRouter(t)
	cookie := loginAdmin(t, r)

	doAdmin(t, r, cookie, http.MethodPost, "/api/admin/logout", nil, nil)

	w := doAdmin(t, r, cookie, http.MethodGet, "/api/admin/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAdminDestinationsRequireAuth(t *testing.T) {
	r := setupAdminRouter(t)

	w := doAdmin(t, r, nil, http.MethodGet, "/api/admin/destinations", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	w = doAdmin(t, r, &http.Cookie{Name: adminCookieName, Value: "forged"},
		http.MethodGet, "/api/admin/destinations", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged cookie, got %d", w.Code)
	}
}

func TestAdminDestinationCRUD(t *testing.T) {
	r := setupAdminRouter(t)
	cookie := loginAdmin(t, r)

	var created DestinationPayload
	w := doAdmin(t, r, cookie, http.MethodPost, "/api/admin/destinations",
		AdminDestinationRequest{
			City:     "Lisbon",
			Country:  "Portugal",
			Clues:    []string{"Famous for yellow trams climbing steep hills."},
			FunFacts: []string{"It is older than Rome."},
		}, &created)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if created.ID == "" || created.City != "Lisbon" {
		t.Fatalf("unexpected created payload: %+v", created)
	}

	// Duplicate city+country is rejected.
	w = doAdmin(t, r, cookie, http.MethodPost, "/api/admin/destinations",
		AdminDestinationRequest{City: "Lisbon", Country: "Portugal", Clues: []string{"x"}}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", w.Code)
	}

	// Missing clues are rejected.
	w = doAdmin(t, r, cookie, http.MethodPost, "/api/admin/destinations",
		AdminDestinationRequest{City: "Porto", Country: "Portugal"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no clues: expected 400, got %d", w.Code)
	}

	var listed []DestinationPayload
	doAdmin(t, r, cookie, http.MethodGet, "/api/admin/destinations", nil, &listed)
	if len(listed) != len(starterCatalog)+1 {
		t.Fatalf("expected %d destinations, got %d", len(starterCatalog)+1, len(listed))
	}

	w = doAdmin(t, r, cookie, http.MethodDelete, "/api/admin/destinations/"+created.ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doAdmin(t, r, cookie, http.MethodDelete, "/api/admin/destinations/"+created.ID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}
