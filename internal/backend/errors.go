package backend

import (
    "errors"
    "regexp"

    "github.com/rs/zerolog/log"
    openai "github.com/sashabaranov/go-openai"

    "github.com/revassist/llmbridge/internal/metrics"
)

// contextLengthPattern matches the error servers emit when a request exceeds
// the model's context window, e.g. "maximum context length is 8192 tokens,
// however you requested 12034 tokens".
var contextLengthPattern = regexp.MustCompile(`maximum context length is \d+ tokens, however you requested \d+ tokens`)

// reportFailure classifies err and logs the matching advisory. The handler is
// never invoked for a failed dispatch and no error crosses this boundary.
func (b *Backend) reportFailure(err error) {
    var apiErr *openai.APIError
    var reqErr *openai.RequestError

    switch {
    case contextLengthPattern.MatchString(err.Error()):
        metrics.Queries.WithLabelValues(b.Model, "too_big").Inc()
        log.Warn().Str("model", b.Model).
            Msg("the input is too big to be analyzed within the model's context limits")
    case errors.As(err, &apiErr) || errors.As(err, &reqErr):
        metrics.Queries.WithLabelValues(b.Model, "api_error").Inc()
        log.Error().Err(err).Str("model", b.Model).
            Msgf("%s could not complete the request: %v", b.Model, err)
    default:
        metrics.Queries.WithLabelValues(b.Model, "error").Inc()
        log.Error().Err(err).Str("model", b.Model).
            Msg("general error encountered while running the query")
    }
}
