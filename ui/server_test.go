package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dhamidi/chartparse/format"
	"github.com/dhamidi/chartparse/grammar"
)

func newToyServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(grammar.Toy(), grammar.ToyPrivileged())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestParseHTML(t *testing.T) {
	s := newToyServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"they+fish", []string{"SUCCESS (1 derivations): [16]", "(S (NP (N they)) (VP (V fish)))", "derivation"}},
		{"rivers+rivers", []string{"FAILURE", `class="failure"`}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/parse?q="+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body does not contain %q", w)
				}
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	s := newToyServer(t)
	rec := get(t, s, "/parse?q=they+fish", http.Header{"Accept": {"application/json"}})
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var res format.JSONResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success || len(res.Derivations) != 1 || res.Derivations[0] != 16 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Sections) != 3 {
		t.Errorf("got %d sections, want 3", len(res.Sections))
	}
}

func TestParsePostTokens(t *testing.T) {
	s := newToyServer(t)
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"tokens": ["they", "can", "fish"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var res format.JSONResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Derivations) != 2 || res.Derivations[0] != 35 || res.Derivations[1] != 37 {
		t.Errorf("derivations = %v, want [35 37]", res.Derivations)
	}
}

func TestParseMediaTypeParameters(t *testing.T) {
	s := newToyServer(t)
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"sentence": "they can fish"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "text/html;q=0.9, application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res format.JSONResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Derivations) != 2 {
		t.Errorf("derivations = %v, want [35 37]", res.Derivations)
	}
}

func TestAcceptsJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/html, application/json;q=0.5", true},
		{"text/html", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := acceptsJSON(tt.accept); got != tt.want {
			t.Errorf("acceptsJSON(%q) = %v, want %v", tt.accept, got, tt.want)
		}
	}
}

func TestParsePostInvalidJSON(t *testing.T) {
	s := newToyServer(t)
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"tokens":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestParseWithoutQuery(t *testing.T) {
	rec := get(t, newToyServer(t), "/parse", nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestIndex(t *testing.T) {
	rec := get(t, newToyServer(t), "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, w := range []string{"S = NP VP .", "<code>N</code>"} {
		if !strings.Contains(body, w) {
			t.Errorf("index does not contain %q", w)
		}
	}
}

func TestGrammar(t *testing.T) {
	rec := get(t, newToyServer(t), "/grammar", nil)
	if got, want := rec.Body.String(), grammar.Toy().String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
