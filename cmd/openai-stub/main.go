// openai-stub is a tiny OpenAI-compatible server for exercising llmbridge
// locally without a real model: it lists a configurable set of models and
// answers chat completions by echoing the last user message, with optional
// SSE streaming.
package main

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "strings"
)

type chatRequest struct {
    Model    string `json:"model"`
    Stream   bool   `json:"stream"`
    Messages []struct {
        Role    string `json:"role"`
        Content string `json:"content"`
    } `json:"messages"`
}

func main() {
    models := strings.Split(os.Getenv("MODEL_IDS"), ",")
    if len(models) == 1 && strings.TrimSpace(models[0]) == "" {
        models = []string{"test-model"}
    }
    addr := os.Getenv("ADDR")
    if strings.TrimSpace(addr) == "" {
        addr = ":8081"
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
        data := make([]map[string]any, 0, len(models)+1)
        for _, m := range models {
            data = append(data, map[string]any{"id": strings.TrimSpace(m), "object": "model"})
        }
        // One non-model entry so discovery filtering is observable.
        data = append(data, map[string]any{"id": "text-embedding-stub", "object": "embedding"})
        w.Header().Set("Content-Type", "application/json")
        _ = json.NewEncoder(w).Encode(map[string]any{"data": data})
    })
    mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
        defer r.Body.Close()
        var req chatRequest
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            http.Error(w, "bad request body", http.StatusBadRequest)
            return
        }
        user := ""
        for _, m := range req.Messages {
            if m.Role == "user" {
                user = m.Content
            }
        }
        reply := "echo: " + user

        if !req.Stream {
            w.Header().Set("Content-Type", "application/json")
            _ = json.NewEncoder(w).Encode(map[string]any{
                "choices": []map[string]any{
                    {"message": map[string]string{"role": "assistant", "content": reply}},
                },
            })
            return
        }

        // SSE streaming: one chunk per word, then a bare finish chunk.
        flusher, ok := w.(http.Flusher)
        if !ok {
            http.Error(w, "streaming unsupported", http.StatusInternalServerError)
            return
        }
        w.Header().Set("Content-Type", "text/event-stream")
        w.Header().Set("Cache-Control", "no-cache")
        writeChunk := func(delta string, finish any) {
            payload := map[string]any{
                "choices": []map[string]any{
                    {"delta": map[string]any{"content": delta}, "finish_reason": finish},
                },
            }
            b, _ := json.Marshal(payload)
            fmt.Fprintf(w, "data: %s\n\n", b)
            flusher.Flush()
        }
        words := strings.Fields(reply)
        for i, word := range words {
            if i > 0 {
                word = " " + word
            }
            writeChunk(word, nil)
        }
        writeChunk("", "stop")
        fmt.Fprint(w, "data: [DONE]\n\n")
        flusher.Flush()
    })

    log.Printf("openai-stub listening on %s (models=%s)", addr, strings.Join(models, ","))
    if err := http.ListenAndServe(addr, mux); err != nil {
        log.Fatal(err)
    }
}
