package backend

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "reflect"
    "testing"

    "github.com/revassist/llmbridge/internal/config"
)

func modelsServer(t *testing.T, payload any) *httptest.Server {
    t.Helper()
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/models" {
            http.NotFound(w, r)
            return
        }
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(payload)
    }))
    t.Cleanup(srv.Close)
    return srv
}

func TestSupportedModels_FiltersNonModelObjects(t *testing.T) {
    srv := modelsServer(t, map[string]any{
        "data": []map[string]any{
            {"id": "gpt-x", "object": "model"},
            {"id": "ignore-me", "object": "other"},
        },
    })

    got := SupportedModels(context.Background(), config.Config{Server: srv.URL})
    if want := []string{"gpt-x"}; !reflect.DeepEqual(got, want) {
        t.Fatalf("got %v, want %v", got, want)
    }
}

func TestSupportedModels_UnsetServer(t *testing.T) {
    if got := SupportedModels(context.Background(), config.Config{}); len(got) != 0 {
        t.Fatalf("expected empty list for unset server, got %v", got)
    }
    if IsConfigured(context.Background(), config.Config{}) {
        t.Fatal("unset server must not report configured")
    }
}

func TestSupportedModels_UnreachableServer(t *testing.T) {
    srv := httptest.NewServer(http.NotFoundHandler())
    url := srv.URL
    srv.Close()

    cfg := config.Config{Server: url}
    if got := SupportedModels(context.Background(), cfg); len(got) != 0 {
        t.Fatalf("expected empty list for unreachable server, got %v", got)
    }
    if IsConfigured(context.Background(), cfg) {
        t.Fatal("unreachable server must not report configured")
    }
}

func TestSupportedModels_HTTPError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "nope", http.StatusInternalServerError)
    }))
    t.Cleanup(srv.Close)

    if got := SupportedModels(context.Background(), config.Config{Server: srv.URL}); len(got) != 0 {
        t.Fatalf("expected empty list on HTTP error, got %v", got)
    }
}

func TestIsConfigured_TrueWithModels(t *testing.T) {
    srv := modelsServer(t, map[string]any{
        "data": []map[string]any{{"id": "gpt-x", "object": "model"}},
    })
    if !IsConfigured(context.Background(), config.Config{Server: srv.URL}) {
        t.Fatal("expected configured server to report true")
    }
}
