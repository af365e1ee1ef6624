package backend

import (
    "context"
    "strings"

    "github.com/rs/zerolog/log"

    "github.com/revassist/llmbridge/internal/config"
    "github.com/revassist/llmbridge/internal/llm"
)

// modelObjectType is the object tag the /models endpoint uses for entries
// that are actually models (servers may also list embeddings, etc.).
const modelObjectType = "model"

// SupportedModels asks the configured server which models it exposes via
// GET {server}/models. An unset server, a network failure, or an HTTP error
// all yield an empty list: an unreachable server is indistinguishable from an
// unconfigured one by design, so hosts simply hide the backend.
func SupportedModels(ctx context.Context, cfg config.Config) []string {
    if strings.TrimSpace(cfg.Server) == "" {
        return nil
    }
    return listModels(ctx, llm.NewOpenAIProvider(cfg.Server, cfg.APIKey))
}

func listModels(ctx context.Context, lister llm.ModelLister) []string {
    list, err := lister.ListModels(ctx)
    if err != nil {
        log.Debug().Err(err).Msg("model discovery failed; treating server as unconfigured")
        return nil
    }
    ids := make([]string, 0, len(list.Models))
    for _, m := range list.Models {
        if m.Object != modelObjectType {
            continue
        }
        ids = append(ids, m.ID)
    }
    return ids
}

// IsConfigured reports whether the server is reachable and exposes at least
// one model. Note this performs one HTTP round trip; callers refreshing UI
// state should cache the answer upstream.
func IsConfigured(ctx context.Context, cfg config.Config) bool {
    return len(SupportedModels(ctx, cfg)) > 0
}
