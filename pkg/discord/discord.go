package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"alerts-srv/pkg/log"
)

var errWebhookRequired = errors.New("discord: webhook id and token are required")

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}

func newImpl(l log.Logger, id, token string) IDiscord {
	config := DefaultConfig()
	return &discordImpl{
		l:       l,
		webhook: &webhookInfo{id: id, token: token},
		config:  config,
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (d *discordImpl) webhookURL() string {
	return fmt.Sprintf(webhookURLTemplate, d.webhook.id, d.webhook.token)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// SendEmbed posts a single embed message to the webhook.
func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	embed := Embed{
		Title:       options.Title,
		Description: truncate(options.Description, MaxDescriptionLen),
		Color:       options.Color,
		Footer:      options.Footer,
	}
	for _, f := range options.Fields {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:   f.Name,
			Value:  truncate(f.Value, MaxFieldValueLen),
			Inline: f.Inline,
		})
	}
	if !options.Timestamp.IsZero() {
		embed.Timestamp = options.Timestamp.UTC().Format(time.RFC3339)
	}

	payload := WebhookPayload{
		Username: d.config.DefaultUsername,
		Embeds:   []Embed{embed},
	}

	return d.post(ctx, payload)
}

// SendError posts a red embed describing an error.
func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	opts := MessageOptions{
		Title:       title,
		Description: description,
		Color:       ColorRed,
		Timestamp:   time.Now(),
	}
	if err != nil {
		opts.Fields = append(opts.Fields, EmbedField{Name: "Error", Value: err.Error()})
	}
	return d.SendEmbed(ctx, opts)
}

func (d *discordImpl) post(ctx context.Context, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL(), bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("discord: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("discord: webhook returned status %d", resp.StatusCode)

		// Client errors other than rate limiting will not succeed on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return lastErr
		}
	}

	return lastErr
}

// Close closes idle connections in the HTTP client.
func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}
