package webhook

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/alexmorbo/slackhook/domain/message"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

var (
	webhookSendOK  = metrics.NewCounter(`webhook_requests_total{status="ok"}`)
	webhookSendErr = metrics.NewCounter(`webhook_requests_total{status="error"}`)
	webhookSendDur = metrics.NewHistogram(`webhook_request_duration_seconds`)
)

// HTTPDoer is the transport the client posts through. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts messages to one incoming-webhook endpoint and seeds new
// messages with its defaults.
type Client struct {
	endpoint              string
	channel               string
	username              string
	icon                  string
	linkNames             bool
	unfurlLinks           bool
	unfurlMedia           bool
	allowMarkdown         bool
	markdownInAttachments []string
	httpClient            HTTPDoer
	logger                *slog.Logger
}

// NewClient recognizes the default keys channel, username, icon, linkNames,
// unfurlLinks, unfurlMedia, allowMarkdown and markdownInAttachments.
func NewClient(endpoint string, defaults message.Attributes, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		endpoint:              endpoint,
		unfurlMedia:           true,
		allowMarkdown:         true,
		markdownInAttachments: []string{},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}

	if v, ok := defaults.LookupString("channel"); ok {
		c.SetDefaultChannel(v)
	}
	if v, ok := defaults.LookupString("username"); ok {
		c.SetDefaultUsername(v)
	}
	if v, ok := defaults.LookupString("icon"); ok {
		c.SetDefaultIcon(v)
	}
	if v, ok := defaults.LookupBool("linkNames"); ok {
		c.SetLinkNames(v)
	}
	if v, ok := defaults.LookupBool("unfurlLinks"); ok {
		c.SetUnfurlLinks(v)
	}
	if v, ok := defaults.LookupBool("unfurlMedia"); ok {
		c.SetUnfurlMedia(v)
	}
	if v, ok := defaults.LookupBool("allowMarkdown"); ok {
		c.SetAllowMarkdown(v)
	}
	if v, ok := defaults.LookupStrings("markdownInAttachments"); ok {
		c.SetMarkdownInAttachments(v)
	}

	return c
}

func (c *Client) Endpoint() string                { return c.endpoint }
func (c *Client) DefaultChannel() string          { return c.channel }
func (c *Client) DefaultUsername() string         { return c.username }
func (c *Client) DefaultIcon() string             { return c.icon }
func (c *Client) LinkNames() bool                 { return c.linkNames }
func (c *Client) UnfurlLinks() bool               { return c.unfurlLinks }
func (c *Client) UnfurlMedia() bool               { return c.unfurlMedia }
func (c *Client) AllowMarkdown() bool             { return c.allowMarkdown }
func (c *Client) MarkdownInAttachments() []string { return c.markdownInAttachments }

func (c *Client) SetEndpoint(endpoint string) { c.endpoint = endpoint }
func (c *Client) SetDefaultChannel(ch string) { c.channel = ch }
func (c *Client) SetDefaultUsername(u string) { c.username = u }
func (c *Client) SetDefaultIcon(icon string)  { c.icon = icon }
func (c *Client) SetLinkNames(v bool)         { c.linkNames = v }
func (c *Client) SetUnfurlLinks(v bool)       { c.unfurlLinks = v }
func (c *Client) SetUnfurlMedia(v bool)       { c.unfurlMedia = v }
func (c *Client) SetAllowMarkdown(v bool)     { c.allowMarkdown = v }
func (c *Client) SetHTTPClient(doer HTTPDoer) { c.httpClient = doer }

func (c *Client) SetMarkdownInAttachments(fields []string) {
	c.markdownInAttachments = append([]string{}, fields...)
}

// CreateMessage returns a message seeded with the client defaults and bound
// to this client for sending.
func (c *Client) CreateMessage() *message.Message {
	return message.NewMessage(c).
		SetChannel(c.channel).
		SetUsername(c.username).
		SetIcon(c.icon).
		SetAllowMarkdown(c.allowMarkdown).
		SetMarkdownInAttachments(c.markdownInAttachments)
}

func (c *Client) To(channel string) *message.Message    { return c.CreateMessage().To(channel) }
func (c *Client) From(username string) *message.Message { return c.CreateMessage().From(username) }
func (c *Client) WithIcon(icon string) *message.Message { return c.CreateMessage().WithIcon(icon) }

func (c *Client) Attach(a *message.Attachment) *message.Message {
	return c.CreateMessage().Attach(a)
}

func (c *Client) AttachAttributes(attrs message.Attributes) *message.Message {
	return c.CreateMessage().AttachAttributes(attrs)
}

// Send posts a default-seeded message carrying text.
func (c *Client) Send(ctx context.Context, text string) error {
	return c.CreateMessage().Send(ctx, text)
}

// SendMessage encodes m and POSTs it once. Transport errors are returned as
// they come from the HTTP client; a non-2xx answer yields *StatusError.
// Every attempt that gets past encoding is counted and timed.
func (c *Client) SendMessage(ctx context.Context, m *message.Message) error {
	body, err := EncodePayload(c.PreparePayload(m))
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { webhookSendDur.UpdateDuration(start) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logFailure(ctx, 0, start, err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logFailure(ctx, 0, start, err.Error())
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logFailure(ctx, resp.StatusCode, start, http.StatusText(resp.StatusCode))
		return &StatusError{StatusCode: resp.StatusCode}
	}

	c.logger.Debug("Webhook POST completed",
		logger.ExternalFields("webhook", redactEndpoint(c.endpoint), http.MethodPost, resp.StatusCode, time.Since(start).Milliseconds()),
		slog.String("delivery_id", logger.GetDeliveryID(ctx)),
	)
	webhookSendOK.Inc()

	return nil
}

// logFailure records a failed attempt; statusCode is 0 when no response arrived.
func (c *Client) logFailure(ctx context.Context, statusCode int, start time.Time, reason string) {
	c.logger.Error("Webhook POST failed",
		logger.ExternalFieldsWithError("webhook", redactEndpoint(c.endpoint), http.MethodPost, statusCode, time.Since(start).Milliseconds(), reason),
		slog.String("delivery_id", logger.GetDeliveryID(ctx)),
	)
	webhookSendErr.Inc()
}

// redactEndpoint drops the path of a webhook URL; it usually carries the secret.
func redactEndpoint(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "invalid-endpoint"
	}
	return u.Scheme + "://" + u.Host
}
