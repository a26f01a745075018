package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/alexmorbo/slackhook/domain/message"
	"github.com/alexmorbo/slackhook/infrastructure/config"
	"github.com/alexmorbo/slackhook/infrastructure/webhook"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

var errNothingToSend = errors.New("nothing to send: set --text or an attachment flag")

type options struct {
	Endpoint string
	Channel  string
	Username string
	Icon     string
	Text     string
	Color    string
	Title    string
	Fields   []string
	Short    bool
	NoMrkdwn bool
	Timeout  time.Duration
	LogLevel string
}

func (o *options) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "Incoming webhook URL",
			Category:    "Webhook",
			Required:    true,
			Sources:     cli.EnvVars("SLACKHOOK_WEBHOOK_URL", "WEBHOOK_URL"),
			Destination: &o.Endpoint,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "HTTP timeout for the POST",
			Category:    "Webhook",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("SLACKHOOK_WEBHOOK_TIMEOUT"),
			Destination: &o.Timeout,
		},
		&cli.StringFlag{
			Name:        "channel",
			Aliases:     []string{"c"},
			Usage:       "Channel or user to post to (#channel, @user)",
			Category:    "Message",
			Sources:     cli.EnvVars("SLACKHOOK_CHANNEL"),
			Destination: &o.Channel,
		},
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "Display name of the sender",
			Category:    "Message",
			Sources:     cli.EnvVars("SLACKHOOK_USERNAME"),
			Destination: &o.Username,
		},
		&cli.StringFlag{
			Name:        "icon",
			Usage:       "Icon URL or :emoji:",
			Category:    "Message",
			Sources:     cli.EnvVars("SLACKHOOK_ICON"),
			Destination: &o.Icon,
		},
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "Message text",
			Category:    "Message",
			Destination: &o.Text,
		},
		&cli.BoolFlag{
			Name:        "no-mrkdwn",
			Usage:       "Send the text without markdown formatting",
			Category:    "Message",
			Destination: &o.NoMrkdwn,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "Attachment color (good, warning, danger or #hex)",
			Category:    "Attachment",
			Destination: &o.Color,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Attachment title",
			Category:    "Attachment",
			Destination: &o.Title,
		},
		&cli.StringSliceFlag{
			Name:        "field",
			Aliases:     []string{"f"},
			Usage:       "Attachment field as Title=Value, repeatable",
			Category:    "Attachment",
			Destination: &o.Fields,
		},
		&cli.BoolFlag{
			Name:        "short",
			Usage:       "Render attachment fields side by side",
			Category:    "Attachment",
			Destination: &o.Short,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("SLACKHOOK_LOG_LEVEL"),
			Destination: &o.LogLevel,
		},
	}
}

func (o *options) hasAttachment() bool {
	return o.Color != "" || o.Title != "" || len(o.Fields) > 0
}

// buildMessage assembles the message on a client created from the options.
func (o *options) buildMessage(client *webhook.Client) (*message.Message, error) {
	m := client.CreateMessage()
	if o.Channel != "" {
		m.To(o.Channel)
	}
	if o.Username != "" {
		m.From(o.Username)
	}
	if o.Icon != "" {
		m.WithIcon(o.Icon)
	}
	if o.NoMrkdwn {
		m.DisableMarkdown()
	}

	if o.hasAttachment() {
		a := message.NewAttachment(nil).
			SetFallback(o.Text).
			SetTitle(o.Title)
		if o.Color != "" {
			a.SetColor(o.Color)
		}
		for _, raw := range o.Fields {
			field, err := parseField(raw)
			if err != nil {
				return nil, err
			}
			a.AddField(field.SetShort(o.Short))
		}
		m.Attach(a)
	}

	return m, nil
}

// parseField splits "Title=Value" on the first '='. The value may be empty or
// contain further '=' characters.
func parseField(raw string) (*message.AttachmentField, error) {
	title, value, ok := strings.Cut(raw, "=")
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return nil, fmt.Errorf("invalid field %q: expected Title=Value", raw)
	}
	return message.NewAttachmentField(nil).SetTitle(title).SetValue(value), nil
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	var opts options

	return &cli.Command{
		Name:      "slackpost",
		Usage:     "Post one formatted message to an incoming webhook",
		UsageText: "slackpost --endpoint URL [--channel #ops] --text 'Deploy finished' [--field Env=prod]",
		Flags:     opts.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := config.ValidateWebhookURL(opts.Endpoint); err != nil {
				return fmt.Errorf("invalid --endpoint: %w", err)
			}
			if opts.Text == "" && !opts.hasAttachment() {
				return errNothingToSend
			}

			log := logger.NewWithWriter(opts.LogLevel, stderr)

			client := webhook.NewClient(opts.Endpoint, nil, log.With("component", "webhook_client"))
			client.SetHTTPClient(&http.Client{Timeout: opts.Timeout})

			m, err := opts.buildMessage(client)
			if err != nil {
				return err
			}

			if err := m.Send(ctx, opts.Text); err != nil {
				log.Error("Failed to post message", slog.String("error", err.Error()))
				return fmt.Errorf("send message: %w", err)
			}

			_, _ = fmt.Fprintf(stdout, "posted to %s\n", describeTarget(m))
			return nil
		},
	}
}

func describeTarget(m *message.Message) string {
	if m.Channel() == "" {
		return "webhook default channel"
	}
	return m.Channel()
}
