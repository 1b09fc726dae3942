package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/sqlrag/internal/chat"
	"github.com/hyperjump/sqlrag/internal/config"
	"github.com/hyperjump/sqlrag/internal/embedding"
	"github.com/hyperjump/sqlrag/internal/indexer"
	"github.com/hyperjump/sqlrag/internal/models"
	"github.com/hyperjump/sqlrag/internal/storage"
	"go.uber.org/zap"
)

type stubGenerator struct {
	answer string
	err    error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	return g.answer, g.err
}

type mockWatchService struct {
	dirs []string
}

func (m *mockWatchService) Directories() []string {
	return append([]string(nil), m.dirs...)
}

func (m *mockWatchService) AddDirectory(path string, _ bool) error {
	for _, d := range m.dirs {
		if d == path {
			return nil
		}
	}
	m.dirs = append(m.dirs, path)
	return nil
}

func (m *mockWatchService) RemoveDirectory(path string) error {
	for i, d := range m.dirs {
		if d == path {
			m.dirs = append(m.dirs[:i], m.dirs[i+1:]...)
			return nil
		}
	}
	return nil
}

type testEnv struct {
	srv      *Server
	handler  http.Handler
	store    storage.EmbeddingStore
	sessions *chat.Sessions
	gen      *stubGenerator
	cfg      *config.Config
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Storage.DatabasePath = filepath.Join(dir, "embeddings.db")
	cfg.Embedding.Provider = "mock"

	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	embedder := embedding.NewMockEmbedder(8)
	gen := &stubGenerator{answer: "The cat sat."}
	ingestor := indexer.NewIngestor(store, embedder, indexer.NewChunker(cfg.Chunking.Size, cfg.Chunking.Overlap, cfg.Chunking.Separator))
	engine := chat.NewEngine(store, embedder, nil, gen, chat.WithTopK(cfg.Retrieval.TopK))
	sessions := chat.NewSessions(cfg.Chat.Greeting)
	srv := NewServer(engine, ingestor, sessions, store, cfg, zap.NewNop(), opts...)
	return &testEnv{srv: srv, handler: srv.Router(), store: store, sessions: sessions, gen: gen, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)
	return w
}

func multipartBody(t *testing.T, files map[string]string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write([]byte(content))
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes(), mw.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return out
}

func TestHandleIngest(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, map[string]string{
		"pets.txt": "The cat sat.\nThe dog ran.",
		"data.xyz": "ignored",
	})
	w := env.do(t, http.MethodPost, "/api/v1/documents", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	report := decode[models.IngestReport](t, w)
	if report.Files != 1 || report.Chunks != 1 || len(report.Skipped) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	n, _ := env.store.Count(context.Background())
	if n != 1 {
		t.Errorf("store has %d records, want 1", n)
	}
}

func TestHandleIngest_NoFiles(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartBody(t, nil)
	w := env.do(t, http.MethodPost, "/api/v1/documents", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleIngest_NotMultipart(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/v1/documents", []byte(`{}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/sessions", nil, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d", w.Code)
	}
	snap := decode[chat.Snapshot](t, w)
	if snap.ID == "" || len(snap.History) != 1 || snap.History[0].Content != config.DefaultGreeting {
		t.Fatalf("unexpected new session: %+v", snap)
	}
	base := "/api/v1/sessions/" + snap.ID

	w = env.do(t, http.MethodPost, base+"/messages", []byte(`{"query":"What did the cat do?"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("ask status: got %d, body %s", w.Code, w.Body.String())
	}
	resp := decode[models.QueryResponse](t, w)
	if resp.Answer != "The cat sat." || len(resp.History) != 3 {
		t.Errorf("unexpected answer: %+v", resp)
	}

	w = env.do(t, http.MethodGet, base, nil, "")
	var raw map[string]interface{}
	_ = json.NewDecoder(w.Body).Decode(&raw)
	if raw["state"] != "idle" {
		t.Errorf("state = %v, want idle", raw["state"])
	}

	w = env.do(t, http.MethodPost, base+"/reset", nil, "")
	snap = decode[chat.Snapshot](t, w)
	if len(snap.History) != 1 {
		t.Errorf("history after reset = %v", snap.History)
	}

	w = env.do(t, http.MethodDelete, base, nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete status: got %d", w.Code)
	}
	w = env.do(t, http.MethodGet, base, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d", w.Code)
	}
}

func TestHandleAsk_Errors(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	base := "/api/v1/sessions/" + sess.ID() + "/messages"

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown session", "/api/v1/sessions/nope/messages", `{"query":"hi"}`, http.StatusNotFound},
		{"invalid json", base, `{`, http.StatusBadRequest},
		{"empty query", base, `{"query":"   "}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tt.path, []byte(tt.body), "application/json")
			if w.Code != tt.want {
				t.Errorf("status: got %d, want %d", w.Code, tt.want)
			}
			out := decode[map[string]string](t, w)
			if out["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestHandleAsk_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = errors.New("model not loaded")
	sess := env.sessions.Create()
	w := env.do(t, http.MethodPost, "/api/v1/sessions/"+sess.ID()+"/messages", []byte(`{"query":"hi"}`), "application/json")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", w.Code)
	}
	if len(sess.History()) != 1 {
		t.Errorf("failed turn should be rolled back, history = %v", sess.History())
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{chat.ErrSessionNotFound, http.StatusNotFound},
		{chat.ErrEmptyQuery, http.StatusBadRequest},
		{chat.ErrBusy, http.StatusConflict},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHandleStatus(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.store.Insert(context.Background(), "x", []float32{1}); err != nil {
		t.Fatal(err)
	}
	env.sessions.Create()
	w := env.do(t, http.MethodGet, "/api/v1/status", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	out := decode[map[string]interface{}](t, w)
	if out["records"] != float64(1) || out["sessions"] != float64(1) {
		t.Errorf("unexpected status: %v", out)
	}
	if _, ok := out["disk_usage_bytes"]; !ok {
		t.Error("expected disk_usage_bytes")
	}
	cfg, _ := out["config"].(map[string]interface{})
	if cfg["top_k"] != float64(2) || cfg["embedding_provider"] != "mock" {
		t.Errorf("unexpected config: %v", cfg)
	}
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestHandleWatchDirectories_NotEnabled(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/v1/watch/directories", nil, "")
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleWatchDirectories(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	mock := &mockWatchService{}
	env := newTestEnv(t, WithWatch(mock, configPath))
	dir := t.TempDir()

	body, _ := json.Marshal(map[string]string{"path": dir})
	w := env.do(t, http.MethodPost, "/api/v1/watch/directories", body, "application/json")
	if w.Code != http.StatusCreated {
		t.Fatalf("add status: got %d, body %s", w.Code, w.Body.String())
	}
	saved, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config not persisted: %v", err)
	}
	if len(saved.Watch.Directories) != 1 || saved.Watch.Directories[0] != dir {
		t.Errorf("persisted directories = %v", saved.Watch.Directories)
	}

	w = env.do(t, http.MethodGet, "/api/v1/watch/directories", nil, "")
	out := decode[struct {
		Directories []string `json:"directories"`
	}](t, w)
	if len(out.Directories) != 1 {
		t.Errorf("directories = %v", out.Directories)
	}

	w = env.do(t, http.MethodDelete, "/api/v1/watch/directories?path="+dir, nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("remove status: got %d", w.Code)
	}
	if len(mock.dirs) != 0 {
		t.Errorf("directory not removed: %v", mock.dirs)
	}
}

func TestHandleWatchDirectoriesAdd_InvalidPath(t *testing.T) {
	env := newTestEnv(t, WithWatch(&mockWatchService{}, ""))
	tests := []struct {
		body string
		want int
	}{
		{`{}`, http.StatusBadRequest},
		{`{"path":"/nonexistent/inbox"}`, http.StatusNotFound},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := env.do(t, http.MethodPost, "/api/v1/watch/directories", []byte(tt.body), "application/json")
		if w.Code != tt.want {
			t.Errorf("body %s: got %d, want %d", tt.body, w.Code, tt.want)
		}
	}
}
