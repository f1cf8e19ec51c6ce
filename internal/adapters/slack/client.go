package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chubberlisk/crypto-tech/internal/config"
	"github.com/chubberlisk/crypto-tech/internal/domain"
	"github.com/rs/zerolog"
)

// Client talks to the Slack Web API: the user directory for identity matching and
// chat.postMessage for delivery.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.SlackBaseURL, "/"),
		token:   cfg.SlackToken,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:     log,
	}
}

// ListIdentities fetches the workspace user directory.
func (c *Client) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users.list", nil)
	if err != nil {
		return nil, &domain.RetrievalError{Resource: "slack users", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.RetrievalError{Resource: "slack users", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &domain.RetrievalError{Resource: "slack users", Err: fmt.Errorf("slack api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))}
	}
	var out struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Members []struct {
			ID      string `json:"id"`
			Profile struct {
				Email string `json:"email"`
			} `json:"profile"`
		} `json:"members"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.RetrievalError{Resource: "slack users", Err: err}
	}
	if !out.OK {
		return nil, &domain.RetrievalError{Resource: "slack users", Err: fmt.Errorf("slack api error=%s", out.Error)}
	}
	identities := make([]domain.Identity, 0, len(out.Members))
	for _, m := range out.Members {
		identities = append(identities, domain.Identity{ID: m.ID, Email: m.Profile.Email})
	}
	return identities, nil
}

// PostMessage posts text to a channel or user id. Success requires both a 2xx
// status and ok:true in the acknowledgement body.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	body := map[string]any{"channel": channel, "text": text}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat.postMessage", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack chat.postMessage status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}
	var ack struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("slack chat.postMessage: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("slack chat.postMessage error=%s", ack.Error)
	}
	return nil
}
