package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/az-ai-labs/tr-morph/morph"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	e, err := morph.NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(newHandler(e, []string{"https://example.org"}, slog.New(slog.DiscardHandler)))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, target, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, r)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, b
}

type analysisBody struct {
	Input    string `json:"input"`
	Analyses []struct {
		Formatted string `json:"formatted"`
		Runtime   bool   `json:"runtime"`
	} `json:"analyses"`
}

func getAnalysis(t *testing.T, ts *httptest.Server, word string) analysisBody {
	t.Helper()
	code, b := do(t, http.MethodGet, ts.URL+"/api/analyze?word="+url.QueryEscape(word), "")
	if code != http.StatusOK {
		t.Fatalf("GET analyze %q: status %d: %s", word, code, b)
	}
	var got analysisBody
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t)

	got := getAnalysis(t, ts, "kitabına")
	if got.Input != "kitabına" || len(got.Analyses) != 2 {
		t.Fatalf("kitabına: %+v", got)
	}
	if got.Analyses[0].Formatted != "[kitap:Noun] kitab:Noun+A3sg+ın:P2sg+a:Dat" {
		t.Errorf("first analysis = %q", got.Analyses[0].Formatted)
	}

	if got := getAnalysis(t, ts, "xyzzy"); len(got.Analyses) != 0 {
		t.Errorf("xyzzy: %d analyses, want 0", len(got.Analyses))
	}
	if got := getAnalysis(t, ts, "Meydan'a"); len(got.Analyses) != 1 || !got.Analyses[0].Runtime {
		t.Errorf("Meydan'a: %+v, want one runtime analysis", got)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing word", http.MethodGet, "/api/analyze", "", http.StatusBadRequest},
		{"blank word", http.MethodGet, "/api/analyze?word=%20", "", http.StatusBadRequest},
		{"too long", http.MethodGet, "/api/analyze?word=" + strings.Repeat("a", 300), "", http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/api/analyze?word=ev", "{}", http.StatusMethodNotAllowed},
		{"text missing", http.MethodPost, "/api/analyze/text", `{"text":""}`, http.StatusBadRequest},
		{"text not json", http.MethodPost, "/api/analyze/text", "ev", http.StatusBadRequest},
		{"text wrong method", http.MethodGet, "/api/analyze/text", "", http.StatusMethodNotAllowed},
		{"invalidate wrong method", http.MethodGet, "/api/cache/invalidate", "", http.StatusMethodNotAllowed},
		{"items wrong method", http.MethodDelete, "/api/items", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, b := do(t, tt.method, ts.URL+tt.target, tt.body)
			if code != tt.want {
				t.Errorf("status %d, want %d: %s", code, tt.want, b)
			}
			var e errorResponse
			if err := json.Unmarshal(b, &e); err != nil || e.Error == "" {
				t.Errorf("body %s is not an error response", b)
			}
		})
	}
}

func TestAnalyzeText(t *testing.T) {
	ts := newTestServer(t)
	code, b := do(t, http.MethodPost, ts.URL+"/api/analyze/text", `{"text":"Ahmet Ankara'ya gitti."}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %s", code, b)
	}
	var got struct {
		Results []struct {
			Token struct {
				Text string `json:"text"`
			} `json:"token"`
			Analysis analysisBody `json:"analysis"`
		} `json:"results"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	var tokens []string
	for _, r := range got.Results {
		tokens = append(tokens, r.Token.Text)
	}
	if strings.Join(tokens, " ") != "Ahmet Ankara'ya gitti" {
		t.Errorf("tokens = %q", tokens)
	}
}

func TestAddItem(t *testing.T) {
	ts := newTestServer(t)

	if got := getAnalysis(t, ts, "tweetleyeyazdım"); len(got.Analyses) != 0 {
		t.Fatalf("before add: %d analyses", len(got.Analyses))
	}

	code, b := do(t, http.MethodPost, ts.URL+"/api/items", `{"line":"tweetlemek [Pr:tivitle]"}`)
	if code != http.StatusCreated {
		t.Fatalf("add: status %d: %s", code, b)
	}
	var item struct {
		ID         string   `json:"id"`
		Attributes []string `json:"attributes"`
	}
	if err := json.Unmarshal(b, &item); err != nil {
		t.Fatal(err)
	}
	if item.ID != "tweetlemek_Verb" {
		t.Errorf("added id = %q", item.ID)
	}

	got := getAnalysis(t, ts, "tweetleyeyazdım")
	if len(got.Analyses) != 1 || got.Analyses[0].Formatted != "[tweetlemek:Verb] tweetle:Verb|yeyaz:Almost→Verb+dı:Past+m:A1sg" {
		t.Errorf("after add: %+v", got)
	}

	code, _ = do(t, http.MethodPost, ts.URL+"/api/items", `{"line":"tweetlemek"}`)
	if code != http.StatusConflict {
		t.Errorf("duplicate add: status %d, want 409", code)
	}

	code, b = do(t, http.MethodGet, ts.URL+"/api/items?id=tweetlemek_Verb", "")
	if code != http.StatusOK || !strings.Contains(string(b), `"lemma":"tweetlemek"`) {
		t.Errorf("lookup: status %d: %s", code, b)
	}
	code, _ = do(t, http.MethodGet, ts.URL+"/api/items?id=nope_Noun", "")
	if code != http.StatusNotFound {
		t.Errorf("missing lookup: status %d, want 404", code)
	}
}

func TestAddItemJSON(t *testing.T) {
	ts := newTestServer(t)
	body := `{"item":{"lemma":"Meydan","primary":"Noun","secondary":"Prop"}}`
	code, b := do(t, http.MethodPost, ts.URL+"/api/items", body)
	if code != http.StatusCreated {
		t.Fatalf("status %d: %s", code, b)
	}
	got := getAnalysis(t, ts, "Meydan'a")
	if len(got.Analyses) != 1 || got.Analyses[0].Runtime {
		t.Errorf("Meydan'a after add: %+v", got)
	}
}

func TestAddItemErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"empty", `{}`},
		{"both", `{"line":"foo","item":{"lemma":"foo","primary":"Noun"}}`},
		{"bad line", `{"line":"foo [P:Thing]"}`},
		{"runtime", `{"line":"Foo [A:Runtime]"}`},
		{"bad item", `{"item":{"lemma":"","primary":"Noun"}}`},
		{"not json", `line`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, b := do(t, http.MethodPost, ts.URL+"/api/items", tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("status %d, want 400: %s", code, b)
			}
		})
	}
}

func TestItemsAndStats(t *testing.T) {
	ts := newTestServer(t)

	code, b := do(t, http.MethodGet, ts.URL+"/api/items", "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	var items itemsResponse
	if err := json.Unmarshal(b, &items); err != nil {
		t.Fatal(err)
	}
	if items.Count == 0 || items.Count != len(items.Items) {
		t.Errorf("count %d, items %d", items.Count, len(items.Items))
	}

	getAnalysis(t, ts, "evde")
	var stats morph.Stats
	_, b = do(t, http.MethodGet, ts.URL+"/api/stats", "")
	if err := json.Unmarshal(b, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Items != items.Count || stats.Cached == 0 {
		t.Errorf("stats = %+v", stats)
	}

	code, _ = do(t, http.MethodPost, ts.URL+"/api/cache/invalidate", "")
	if code != http.StatusOK {
		t.Errorf("invalidate: status %d", code)
	}
	_, b = do(t, http.MethodGet, ts.URL+"/api/stats", "")
	if err := json.Unmarshal(b, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Cached != 0 {
		t.Errorf("cached after invalidate = %d", stats.Cached)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/items", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("preflight Allow-Origin = %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/api/analyze?word=ev", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin %q", got)
	}
}
