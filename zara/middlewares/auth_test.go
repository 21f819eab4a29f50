package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"zara/zara/services/auth"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(strconv.Itoa(id)))
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	mw(http.HandlerFunc(echoUser)).ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware(t *testing.T) {
	tokens, _ := auth.NewTokenService("secret", time.Hour)
	other, _ := auth.NewTokenService("other", time.Hour)
	expired, _ := auth.NewTokenService("secret", -time.Minute)

	good, _ := tokens.Issue(7)
	forged, _ := other.Issue(7)
	stale, _ := expired.Issue(7)

	cases := []struct {
		name      string
		header    string
		status    int
		errorText string
	}{
		{"valid", "Bearer " + good, http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "Authorization required"},
		{"wrong scheme", "Token " + good, http.StatusUnauthorized, "Authorization required"},
		{"expired", "Bearer " + stale, http.StatusUnauthorized, "Session expired"},
		{"bad signature", "Bearer " + forged, http.StatusUnprocessableEntity, "Invalid token"},
		{"garbage", "Bearer abc", http.StatusUnprocessableEntity, "Invalid token"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := serve(t, AuthMiddleware(tokens), c.header)
			if rr.Code != c.status {
				t.Fatalf("expected status %d, got %d", c.status, rr.Code)
			}
			if c.errorText == "" {
				if rr.Body.String() != "7" {
					t.Errorf("expected user 7, got %q", rr.Body.String())
				}
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if body["error"] != c.errorText {
				t.Errorf("expected error %q, got %q", c.errorText, body["error"])
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	tokens, _ := auth.NewTokenService("secret", time.Hour)
	good, _ := tokens.Issue(3)

	if rr := serve(t, OptionalAuthMiddleware(tokens), ""); rr.Code != http.StatusOK || rr.Body.String() != "anonymous" {
		t.Errorf("anonymous: got %d %q", rr.Code, rr.Body.String())
	}
	if rr := serve(t, OptionalAuthMiddleware(tokens), "Bearer "+good); rr.Code != http.StatusOK || rr.Body.String() != "3" {
		t.Errorf("authenticated: got %d %q", rr.Code, rr.Body.String())
	}
	if rr := serve(t, OptionalAuthMiddleware(tokens), "Bearer nope"); rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad token: expected 422, got %d", rr.Code)
	}
}
