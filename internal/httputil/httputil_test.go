package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Page  int    `form:"page"`
}

func TestParseJSONBody(t *testing.T) {
	body := `{"name":"ana","count":3}`
	r := httptest.NewRequest(http.MethodPost, "/x?page=2", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	var req testRequest
	if err := Parse(r, &req); err != nil {
		t.Fatal(err)
	}
	if req.Name != "ana" || req.Count != 3 {
		t.Errorf("req = %+v", req)
	}
	if req.Page != 2 {
		t.Errorf("Page = %d, want 2 from query", req.Page)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")

	var req testRequest
	if err := Parse(r, &req); err == nil {
		t.Fatal("Parse accepted invalid JSON")
	}
}

func TestOkJSON(t *testing.T) {
	w := httptest.NewRecorder()
	OkJSON(w, map[string]string{"reply": "olá"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["reply"] != "olá" {
		t.Errorf("body = %v", got)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, errors.New("user_message must not be empty"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var got ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Code != http.StatusBadRequest || got.Message != "user_message must not be empty" {
		t.Errorf("body = %+v", got)
	}
}
