// Package backend adapts one OpenAI-compatible chat-completion server into
// the language-model backend surface the host consumes: model discovery,
// availability, and blocking or pooled-async query dispatch.
package backend

import (
    "context"
    "io"

    "github.com/rs/zerolog/log"
    openai "github.com/sashabaranov/go-openai"

    "github.com/revassist/llmbridge/internal/config"
    "github.com/revassist/llmbridge/internal/dispatch"
    "github.com/revassist/llmbridge/internal/llm"
    "github.com/revassist/llmbridge/internal/metrics"
)

// Message is one role-tagged turn of a conversation.
type Message struct {
    Role    string
    Content string
}

// Query is the input to a dispatch. When Messages is empty, Prompt is wrapped
// as a single user-role message; otherwise Messages passes through unchanged
// and Prompt is ignored.
type Query struct {
    Prompt   string
    Messages []Message
}

func (q Query) conversation() []openai.ChatCompletionMessage {
    if len(q.Messages) == 0 {
        return []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleUser, Content: q.Prompt},
        }
    }
    out := make([]openai.ChatCompletionMessage, len(q.Messages))
    for i, m := range q.Messages {
        out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
    }
    return out
}

// Options carries per-dispatch request options passed through to the server.
type Options struct {
    // Stream selects the incremental path; results arrive via Handler.Chunk
    // instead of Handler.Response.
    Stream bool
    // JSONResponse asks the server for a JSON-object formatted reply.
    JSONResponse bool
    // Temperature is forwarded when non-zero.
    Temperature float32
    // MaxTokens is forwarded when non-zero.
    MaxTokens int
}

// Handler receives dispatch results.
type Handler struct {
    // Response receives the complete text of a non-streaming dispatch. It is
    // delivered through the backend's Gate so hosts with a thread-affine UI
    // can marshal it onto their own goroutine.
    Response func(text string)
    // Chunk receives each streamed fragment in server order, on the worker
    // goroutine — not gated. delta is "" for chunks without content;
    // finishReason is non-empty only once the model reports completion.
    // Implementations must be safe to call from a non-host goroutine.
    Chunk func(delta, finishReason string)
}

// Gate marshals a non-streaming result delivery onto the goroutine the host
// requires. A nil gate runs the callback inline on the worker.
type Gate func(fn func())

// Backend is one model on one configured server. Failures never propagate to
// callers: every error path ends in a log line and the handler is not
// invoked, so hosts treat dispatch as fire-and-forget.
type Backend struct {
    Model  string
    Client llm.Client
    Gate   Gate
    Pool   *dispatch.Pool
}

// New builds a backend for model against the configured server.
func New(cfg config.Config, model string) *Backend {
    return &Backend{
        Model:  model,
        Client: llm.NewOpenAIProvider(cfg.Server, cfg.APIKey),
        Pool:   dispatch.NewPool(cfg.EffectiveMaxConcurrent()),
    }
}

func (b *Backend) String() string { return b.Model }

// QueryModel sends q to the model and blocks until the response has been
// delivered to h (or a failure has been logged). Nothing is returned: per the
// host contract all failures terminate inside this layer.
func (b *Backend) QueryModel(ctx context.Context, q Query, h Handler, opts Options) {
    metrics.InFlight.Inc()
    defer metrics.InFlight.Dec()

    req := openai.ChatCompletionRequest{
        Model:       b.Model,
        Messages:    q.conversation(),
        Temperature: opts.Temperature,
        MaxTokens:   opts.MaxTokens,
    }
    if opts.JSONResponse {
        req.ResponseFormat = &openai.ChatCompletionResponseFormat{
            Type: openai.ChatCompletionResponseFormatTypeJSONObject,
        }
    }

    if opts.Stream {
        b.streamCompletion(ctx, req, h)
        return
    }

    resp, err := b.Client.CreateChatCompletion(ctx, req)
    if err != nil {
        b.reportFailure(err)
        return
    }
    if len(resp.Choices) == 0 {
        log.Error().Str("model", b.Model).Msg("model returned no choices")
        metrics.Queries.WithLabelValues(b.Model, "error").Inc()
        return
    }
    text := resp.Choices[0].Message.Content
    metrics.Queries.WithLabelValues(b.Model, "ok").Inc()
    b.deliver(func() { h.Response(text) })
}

// QueryModelAsync schedules QueryModel on the backend's pool and returns
// immediately. No join or cancellation handle is exposed; outcomes surface
// only through h or the logged failure messages.
func (b *Backend) QueryModelAsync(ctx context.Context, q Query, h Handler, opts Options) {
    b.Pool.Go(ctx, func(ctx context.Context) {
        b.QueryModel(ctx, q, h, opts)
    })
}

func (b *Backend) streamCompletion(ctx context.Context, req openai.ChatCompletionRequest, h Handler) {
    req.Stream = true
    stream, err := b.Client.CreateChatCompletionStream(ctx, req)
    if err != nil {
        b.reportFailure(err)
        return
    }
    defer stream.Close()

    for {
        chunk, err := stream.Recv()
        if err == io.EOF {
            metrics.Queries.WithLabelValues(b.Model, "ok").Inc()
            return
        }
        if err != nil {
            b.reportFailure(err)
            return
        }
        if len(chunk.Choices) == 0 {
            continue
        }
        choice := chunk.Choices[0]
        metrics.StreamChunks.Inc()
        h.Chunk(choice.Delta.Content, string(choice.FinishReason))
    }
}

func (b *Backend) deliver(fn func()) {
    if b.Gate != nil {
        b.Gate(fn)
        return
    }
    fn()
}
