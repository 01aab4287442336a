package advise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AndreyAkinshin/execexam/internal/errors"
)

// DefaultServer is the API base used by MethodAPIKey when no server is set.
const DefaultServer = "https://api.openai.com"

// DefaultKeyEnv names the environment variable holding the API key.
const DefaultKeyEnv = "OPENAI_API_KEY"

const defaultTimeout = 60 * time.Second

// ClientConfig configures a Client.
type ClientConfig struct {
	Method  Method
	Model   string
	Server  string
	KeyEnv  string
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly in tests.
	HTTPClient *http.Client
	// Getenv overrides os.Getenv for the key lookup.
	Getenv func(string) string
}

// Client requests advice from an OpenAI-compatible chat completions endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient validates cfg and builds a Client. MethodAPIKey reads the key from
// cfg.KeyEnv and fails when it is unset; MethodAPIServer sends no key.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.Advice("model is required", nil)
	}
	method := cfg.Method
	if method == "" {
		method = MethodAPIKey
	}

	c := &Client{client: cfg.HTTPClient, model: cfg.Model}
	if c.client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}

	server := cfg.Server
	switch method {
	case MethodAPIKey:
		getenv := cfg.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		keyEnv := cfg.KeyEnv
		if keyEnv == "" {
			keyEnv = DefaultKeyEnv
		}
		c.apiKey = getenv(keyEnv)
		if c.apiKey == "" {
			return nil, errors.Advice(fmt.Sprintf("API key not found; set %s", keyEnv), nil)
		}
		if server == "" {
			server = DefaultServer
		}
	case MethodAPIServer:
		if !ValidateURL(server) {
			return nil, errors.Advice(fmt.Sprintf("advice server %q is not a valid http(s) URL", server), nil)
		}
	default:
		return nil, errors.Advice(fmt.Sprintf("unknown advice method %q", method), nil)
	}
	c.baseURL = strings.TrimRight(server, "/")
	return c, nil
}

// Request carries what the model sees about a failed run.
type Request struct {
	TestOutput string
	Failures   string
	Sources    []string
}

// Advise asks the model how to fix the failing tests and returns its answer.
func (c *Client) Advise(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Advice("marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Advice("build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.Advice("send request", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", errors.Advice(fmt.Sprintf("status %d: %s", res.StatusCode, strings.TrimSpace(string(b))), nil)
	}

	var resp chatResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return "", errors.Advice("decode response", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Advice("empty choices", nil)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const systemPrompt = "You are an experienced Python programming instructor. " +
	"Explain why the failing tests fail and how to fix the code under test. Be concise."

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Some tests failed.\n\n")
	if out := strings.TrimSpace(req.TestOutput); out != "" {
		b.WriteString("Test output:\n")
		b.WriteString(out)
		b.WriteString("\n\n")
	}
	if f := strings.TrimSpace(req.Failures); f != "" {
		b.WriteString("Failing test details:\n")
		b.WriteString(f)
		b.WriteString("\n\n")
	}
	for _, src := range req.Sources {
		if src = strings.TrimSpace(src); src == "" {
			continue
		}
		b.WriteString("Failing test source:\n")
		b.WriteString(src)
		b.WriteString("\n\n")
	}
	b.WriteString("How should the code be changed so that these tests pass?")
	return b.String()
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
