// Package registry is the host-side model manager: backends register a
// descriptor at startup and the host enumerates them to decide which to
// surface to the user.
package registry

import (
    "context"
    "fmt"
    "sync"

    "github.com/revassist/llmbridge/internal/backend"
    "github.com/revassist/llmbridge/internal/config"
)

// LanguageModel is one constructed backend instance bound to a model.
type LanguageModel interface {
    fmt.Stringer
    QueryModel(ctx context.Context, q backend.Query, h backend.Handler, opts backend.Options)
    QueryModelAsync(ctx context.Context, q backend.Query, h backend.Handler, opts backend.Options)
}

// Entry describes one registered backend kind.
type Entry struct {
    // MenuName is the display name the host shows, e.g. "OpenAI".
    MenuName string
    // Server returns the configured server address.
    Server func() string
    // SupportedModels lists the models the server currently exposes.
    SupportedModels func(ctx context.Context) []string
    // IsConfigured reports whether the backend should be surfaced at all.
    IsConfigured func(ctx context.Context) bool
    // New constructs an instance bound to one of the supported models.
    New func(model string) (LanguageModel, error)
}

var (
    mu      sync.Mutex
    entries []Entry
)

// Register adds an entry to the manager. Registering two entries with the
// same menu name is a host programming error and panics, matching the
// database/sql driver convention.
func Register(e Entry) {
    mu.Lock()
    defer mu.Unlock()
    for _, existing := range entries {
        if existing.MenuName == e.MenuName {
            panic("registry: Register called twice for " + e.MenuName)
        }
    }
    entries = append(entries, e)
}

// Entries returns a snapshot of all registered backends.
func Entries() []Entry {
    mu.Lock()
    defer mu.Unlock()
    out := make([]Entry, len(entries))
    copy(out, entries)
    return out
}

// Lookup finds an entry by menu name.
func Lookup(menuName string) (Entry, bool) {
    mu.Lock()
    defer mu.Unlock()
    for _, e := range entries {
        if e.MenuName == menuName {
            return e, true
        }
    }
    return Entry{}, false
}

// reset clears the registry between tests.
func reset() {
    mu.Lock()
    defer mu.Unlock()
    entries = nil
}

// OpenAICompatible builds the registry entry for the bundled
// OpenAI-compatible backend against cfg. Config is injected here once rather
// than read from globals at call time.
func OpenAICompatible(cfg config.Config) Entry {
    return Entry{
        MenuName: "OpenAI",
        Server:   func() string { return cfg.Server },
        SupportedModels: func(ctx context.Context) []string {
            return backend.SupportedModels(ctx, cfg)
        },
        IsConfigured: func(ctx context.Context) bool {
            return backend.IsConfigured(ctx, cfg)
        },
        New: func(model string) (LanguageModel, error) {
            if model == "" {
                return nil, fmt.Errorf("openai backend: empty model name")
            }
            return backend.New(cfg, model), nil
        },
    }
}
