package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ovoitenko/pagelens/internal/model"
	"github.com/ovoitenko/pagelens/internal/util"
)

// Client sends chat-completion requests to an OpenAI-compatible
// endpoint. It is the single transport shared by all three use cases;
// the request builders decide prompt, temperature and token budget.
type Client struct {
	api     *openai.Client
	timeout time.Duration
}

// NewClient creates a client for the configured endpoint using the
// resolved API key.
func NewClient(cfg model.APIConfig, apiKey string) *Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
		},
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		api:     openai.NewClientWithConfig(clientConfig),
		timeout: timeout,
	}
}

// Complete executes one chat-completion request and returns the raw
// assistant message content. Non-2xx responses surface the provider's
// error message when present, else a generic status-code message; a
// reply without content is a malformed response.
func (c *Client) Complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapTransportError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from API", model.ErrMalformedResponse)
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: no response from API", model.ErrMalformedResponse)
	}
	return content, nil
}

// wrapTransportError maps go-openai errors onto the transport taxonomy.
func wrapTransportError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("%w: %s", model.ErrTransport, apiErr.Message)
		}
		return fmt.Errorf("%w: API error: %d", model.ErrTransport, apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: API error: %d %s", model.ErrTransport,
			reqErr.HTTPStatusCode, http.StatusText(reqErr.HTTPStatusCode))
	}

	return fmt.Errorf("%w: %v", model.ErrTransport, err)
}
