package llm

import (
    "context"
    "net/http"
    "strings"
    "time"

    openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed to call a chat model. It mirrors
// the CreateChatCompletion methods of the go-openai client so that any
// OpenAI-compatible server (LiteLLM, vLLM, llama.cpp, ...) can back it and
// tests can substitute fakes.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
    CreateChatCompletionStream(ctx context.Context, request openai.ChatCompletionRequest) (Stream, error)
}

// Stream is one in-flight streamed completion. *openai.ChatCompletionStream
// satisfies it; fakes only need to hand out canned responses until io.EOF.
type Stream interface {
    Recv() (openai.ChatCompletionStreamResponse, error)
    Close() error
}

// ModelLister is an optional capability that allows listing the models a
// server exposes. Callers should use a type assertion to detect availability.
type ModelLister interface {
    ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
    Inner *openai.Client
}

// NewOpenAIProvider builds a provider against an OpenAI-compatible base URL.
// The key may be empty for servers that do not authenticate.
func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
    cfg := openai.DefaultConfig(apiKey)
    if strings.TrimSpace(baseURL) != "" {
        cfg.BaseURL = strings.TrimRight(baseURL, "/")
    }
    // Keep enough idle connections for many concurrent dispatches.
    cfg.HTTPClient = &http.Client{
        Transport: &http.Transport{
            MaxIdleConns:        64,
            MaxIdleConnsPerHost: 64,
            IdleConnTimeout:     90 * time.Second,
        },
    }
    return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) CreateChatCompletionStream(ctx context.Context, request openai.ChatCompletionRequest) (Stream, error) {
    return p.Inner.CreateChatCompletionStream(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
    return p.Inner.ListModels(ctx)
}
