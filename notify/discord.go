/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package notify posts series reports to a Discord channel.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/duelresult/internal"
)

// Discord posts through a channel webhook.
type Discord struct {
	ID    string
	Token string

	session *discordgo.Session
}

// ParseWebhook accepts a webhook URL as shown by Discord's channel settings,
// e.g. https://discord.com/api/webhooks/<id>/<token>.
func ParseWebhook(rawURL string) (*Discord, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("notify: invalid webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "api" || parts[len(parts)-3] != "webhooks" {
		return nil, fmt.Errorf("notify: %q is not a discord webhook url", rawURL)
	}
	id, token := parts[len(parts)-2], parts[len(parts)-1]
	if id == "" || token == "" {
		return nil, fmt.Errorf("notify: %q is missing the webhook id or token", rawURL)
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("notify: failed to initialize discord client: %w", err)
	}
	session.UserAgent = internal.UserAgent

	return &Discord{ID: id, Token: token, session: session}, nil
}

// Post sends report as a monospace block headed by the series name.
func (d *Discord) Post(series string, report string) error {
	params := &discordgo.WebhookParams{
		Content: FormatReport(series, report),
	}
	if _, err := d.session.WebhookExecute(d.ID, d.Token, false, params); err != nil {
		return fmt.Errorf("notify: failed to post %v report: %w", series, err)
	}

	return nil
}

// FormatReport wraps report in a code block for monospace formatting in
// Discord.
func FormatReport(series string, report string) string {
	return fmt.Sprintf("**%v**\n```\n%v\n```", series, TruncateContent(report))
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func TruncateContent(s string) string {
	const MsgLimit = 1900 // keep space for the header and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
