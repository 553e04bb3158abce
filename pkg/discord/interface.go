package discord

import (
	"context"

	"alerts-srv/pkg/log"
)

// IDiscord sends webhook messages to a Discord channel.
type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	Close() error
}

// New creates a new Discord webhook client from id and token.
func New(l log.Logger, id, token string) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, errWebhookRequired
	}
	return newImpl(l, id, token), nil
}
