package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type fakeUpstream struct {
	server *httptest.Server

	mu      sync.Mutex
	prompts []string
}

// newFakeUpstream serves chat completions that always answer reply.
func newFakeUpstream(t *testing.T, reply string) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if n := len(payload.Messages); n > 0 {
			f.mu.Lock()
			f.prompts = append(f.prompts, payload.Messages[n-1].Content)
			f.mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// setupCLIEnv isolates HOME and credentials and writes a config pointing the
// openai provider at baseURL.
func setupCLIEnv(t *testing.T, baseURL string) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", base)
	for _, key := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "STUDYLAB_BIND"} {
		t.Setenv(key, "")
	}
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[llm]\nprovider = \"openai\"\napi_key = \"test-key\"\nbase_url = %q\n\n[logging]\nlevel = \"error\"\n", baseURL)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
