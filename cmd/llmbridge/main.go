package main

import (
    "context"
    "flag"
    "fmt"
    "os"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/revassist/llmbridge/internal/backend"
    "github.com/revassist/llmbridge/internal/config"
    "github.com/revassist/llmbridge/internal/registry"
)

func main() {
    // Logging setup
    zerolog.TimeFieldFormat = time.RFC3339
    log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

    // Optional .env for local runs; absence is fine.
    _ = godotenv.Load()

    var (
        configPath string
        server     string
        apiKey     string
        model      string
        listModels bool
        query      string
        stream     bool
        jsonReply  bool
        verbose    bool
    )

    flag.StringVar(&configPath, "config", "llmbridge.yaml", "Path to YAML config file (optional)")
    flag.StringVar(&server, "server", os.Getenv("LLM_SERVER"), "OpenAI-compatible base URL")
    flag.StringVar(&apiKey, "key", os.Getenv("LLM_API_KEY"), "API key for the server (optional)")
    flag.StringVar(&model, "model", os.Getenv("LLM_MODEL"), "Model name; defaults to the first discovered model")
    flag.BoolVar(&listModels, "list", false, "List models the server exposes and exit")
    flag.StringVar(&query, "q", "", "Prompt to send to the model")
    flag.BoolVar(&stream, "stream", false, "Stream the response incrementally")
    flag.BoolVar(&jsonReply, "json", false, "Ask the model for a JSON-object reply")
    flag.BoolVar(&verbose, "v", false, "Verbose logging")
    flag.Parse()

    fileCfg, err := config.Load(configPath)
    if err != nil {
        log.Fatal().Err(err).Msg("load config")
    }
    cfg := fileCfg.Overlay(config.FromEnv()).Overlay(config.Config{
        Server:  server,
        APIKey:  apiKey,
        Model:   model,
        Verbose: verbose,
    })

    if cfg.Verbose {
        zerolog.SetGlobalLevel(zerolog.DebugLevel)
    } else {
        zerolog.SetGlobalLevel(zerolog.InfoLevel)
    }

    registry.Register(registry.OpenAICompatible(cfg))
    entry, _ := registry.Lookup("OpenAI")

    ctx := context.Background()

    if listModels {
        models := entry.SupportedModels(ctx)
        if len(models) == 0 {
            log.Fatal().Str("server", cfg.Server).Msg("no models found; is the server configured?")
        }
        for _, id := range models {
            fmt.Println(id)
        }
        return
    }

    if query == "" {
        fmt.Fprintln(os.Stderr, "usage: llmbridge [-server URL] -q \"prompt\" [-model NAME] [-stream] [-list]")
        flag.Usage()
        os.Exit(2)
    }

    if cfg.Model == "" {
        models := entry.SupportedModels(ctx)
        if len(models) == 0 {
            log.Fatal().Str("server", cfg.Server).Msg("no models found; is the server configured?")
        }
        cfg.Model = models[0]
        log.Debug().Str("model", cfg.Model).Msg("defaulting to first discovered model")
    }

    lm, err := entry.New(cfg.Model)
    if err != nil {
        log.Fatal().Err(err).Msg("construct backend")
    }

    h := backend.Handler{
        Response: func(text string) { fmt.Println(text) },
        Chunk: func(delta, finishReason string) {
            fmt.Print(delta)
            if finishReason != "" {
                fmt.Println()
                log.Debug().Str("finish", finishReason).Msg("stream finished")
            }
        },
    }
    lm.QueryModel(ctx, backend.Query{Prompt: query}, h, backend.Options{
        Stream:       stream,
        JSONResponse: jsonReply,
    })
}
