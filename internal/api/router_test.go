package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/profissa/marketplace-api/internal/infrastructure/db/memory"
)

// The full stack over the in-memory store, exercised through HTTP. The
// router is built once: the prometheus middleware registers collectors with
// the default registry and must not run twice in one binary.
func TestAPI_EndToEnd(t *testing.T) {
	e := NewRouter(Dependencies{
		Store:     memory.NewRecordStore(),
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Log:       zerolog.Nop(),
	})

	do := func(method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
		t.Helper()
		var reader *strings.Reader
		if body != "" {
			reader = strings.NewReader(body)
		} else {
			reader = strings.NewReader("")
		}
		req := httptest.NewRequest(method, path, reader)
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		var parsed map[string]any
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
		return rec, parsed
	}

	register := func(email, role string) (token, userID string) {
		t.Helper()
		rec, body := do(http.MethodPost, "/auth/register", "", `{"email":"`+email+`","password":"secret1","role":"`+role+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
		}
		token, _ = body["token"].(string)
		user, _ := body["user"].(map[string]any)
		userID, _ = user["id"].(string)
		if token == "" || userID == "" {
			t.Fatalf("register %s: incomplete response %v", email, body)
		}
		return token, userID
	}

	// --- health ---
	rec, body := do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if cols, _ := body["collections"].([]any); len(cols) != 8 {
		t.Fatalf("health: expected 8 collections, got %v", body["collections"])
	}

	// --- registration and login ---
	clientToken, clientID := register("ana@example.com", "client")
	proToken, proID := register("rui@example.com", "professional")
	thirdToken, _ := register("zoe@example.com", "client")

	rec, _ = do(http.MethodPost, "/auth/register", "", `{"email":"ana@example.com","password":"secret1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	recWrong, bodyWrong := do(http.MethodPost, "/auth/login", "", `{"email":"ana@example.com","password":"wrong"}`)
	recGhost, bodyGhost := do(http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com","password":"wrong"}`)
	if recWrong.Code != http.StatusUnauthorized || recGhost.Code != http.StatusUnauthorized {
		t.Fatalf("bad logins: expected 401/401, got %d/%d", recWrong.Code, recGhost.Code)
	}
	if bodyWrong["error"] != bodyGhost["error"] {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", bodyWrong, bodyGhost)
	}

	// --- public vs owner-only reads ---
	rec, _ = do(http.MethodGet, "/professionals", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous professionals read: expected 200, got %d", rec.Code)
	}
	rec, _ = do(http.MethodGet, "/notifications", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous notifications read: expected 401, got %d", rec.Code)
	}
	rec, _ = do(http.MethodPost, "/portfolios", "", `{"title":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", rec.Code)
	}
	rec, _ = do(http.MethodGet, "/invoices", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown collection: expected 404, got %d", rec.Code)
	}

	// --- contract lifecycle, dual ownership ---
	rec, contract := do(http.MethodPost, "/contracts", clientToken,
		`{"professionalId":"`+proID+`","description":"trocar chuveiro","status":"criado"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create contract: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	contractID, _ := contract["id"].(string)
	if contract["clientId"] != clientID {
		t.Fatalf("clientId not forced to creator: %v", contract["clientId"])
	}
	if contract["createdAt"] == nil || contract["createdAt"] != contract["updatedAt"] {
		t.Fatalf("create timestamps wrong: %v / %v", contract["createdAt"], contract["updatedAt"])
	}

	for _, tok := range []string{clientToken, proToken} {
		rec, _ = do(http.MethodGet, "/contracts/"+contractID, tok, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("owner contract read: expected 200, got %d", rec.Code)
		}
	}
	rec, _ = do(http.MethodGet, "/contracts/"+contractID, thirdToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("third-party contract read: expected 403, got %d", rec.Code)
	}

	time.Sleep(5 * time.Millisecond)
	rec, updated := do(http.MethodPut, "/contracts/"+contractID, proToken, `{"description":"trocar chuveiro e ducha"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("professional contract update: expected 200, got %d", rec.Code)
	}
	if updated["createdAt"] != contract["createdAt"] {
		t.Fatalf("createdAt changed on update")
	}
	if updated["updatedAt"].(string) <= contract["updatedAt"].(string) {
		t.Fatalf("updatedAt did not increase")
	}

	// --- status transitions ---
	rec, body = do(http.MethodPut, "/contracts/"+contractID+"/status", proToken, `{"status":"foo"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rec.Code)
	}
	valid, _ := body["validStatus"].([]any)
	want := []string{"criado", "aceito", "em_andamento", "concluido", "cancelado"}
	if len(valid) != len(want) {
		t.Fatalf("validStatus: expected %v, got %v", want, valid)
	}
	for i := range want {
		if valid[i] != want[i] {
			t.Fatalf("validStatus[%d] = %v, want %q", i, valid[i], want[i])
		}
	}

	rec, body = do(http.MethodPut, "/contracts/"+contractID+"/status", proToken, `{"status":"aceito"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status aceito: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if body["timestamp"] == nil {
		t.Fatalf("status response missing timestamp: %v", body)
	}
	rec, _ = do(http.MethodPut, "/contracts/"+contractID+"/status", thirdToken, `{"status":"cancelado"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("third-party status change: expected 403, got %d", rec.Code)
	}

	// --- rating ---
	rec, _ = do(http.MethodPut, "/contracts/"+contractID+"/avaliar", clientToken, `{"rating":6}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rating 6: expected 400, got %d", rec.Code)
	}
	rec, body = do(http.MethodPut, "/contracts/"+contractID+"/avaliar", clientToken, `{"rating":3,"comment":"ok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rating 3: expected 200, got %d", rec.Code)
	}
	if body["rating"] != float64(3) || body["comment"] != "ok" {
		t.Fatalf("rating not echoed: %v", body)
	}

	// --- proximity search ---
	rec, body = do(http.MethodGet, "/professionals/search", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("search without params: expected 400, got %d", rec.Code)
	}
	example, _ := body["example"].(string)
	if !strings.Contains(example, "lat") || !strings.Contains(example, "lon") {
		t.Fatalf("search example must name lat and lon: %q", example)
	}
	rec, body = do(http.MethodGet, "/professionals/search?lat=-19.9&lon=-43.9", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", rec.Code)
	}
	params, _ := body["params"].(map[string]any)
	if params["radius"] != float64(8) {
		t.Fatalf("search default radius: expected 8, got %v", params["radius"])
	}

	// --- users are scrubbed ---
	rec, user := do(http.MethodGet, "/users/"+clientID, clientToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("own user read: expected 200, got %d", rec.Code)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("passwordHash leaked: %v", user)
	}
	rec, _ = do(http.MethodGet, "/users/"+clientID, proToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign user read: expected 403, got %d", rec.Code)
	}

	// --- logout without a denylist succeeds but keeps the token valid ---
	rec, _ = do(http.MethodPost, "/auth/logout", clientToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
}
