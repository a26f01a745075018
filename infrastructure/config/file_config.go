package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexmorbo/slackhook/domain/message"
)

type FileConfig struct {
	Defaults   DefaultsConfig    `yaml:"defaults"`
	Attachment AttachmentConfig  `yaml:"attachment"`
	Webhook    FileWebhookConfig `yaml:"webhook"`
}

// DefaultsConfig seeds every message the client creates. Nil pointers leave
// the client's built-in defaults in place.
type DefaultsConfig struct {
	Channel     string   `yaml:"channel"`
	Username    string   `yaml:"username"`
	Icon        string   `yaml:"icon"`
	LinkNames   *bool    `yaml:"link_names"`
	UnfurlLinks *bool    `yaml:"unfurl_links"`
	UnfurlMedia *bool    `yaml:"unfurl_media"`
	Markdown    *bool    `yaml:"mrkdwn"`
	MarkdownIn  []string `yaml:"mrkdwn_in"`
}

// AttachmentConfig holds values filled into relayed attachments that leave them empty.
type AttachmentConfig struct {
	Color      string `yaml:"color"`
	Footer     string `yaml:"footer"`
	FooterIcon string `yaml:"footer_icon"`
}

type FileWebhookConfig struct {
	Timeout string `yaml:"timeout"`
}

func LoadFromFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultFileConfig(), nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func defaultFileConfig() *FileConfig {
	cfg := &FileConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *FileConfig) applyDefaults() {
	if c.Attachment.Color == "" {
		c.Attachment.Color = message.DefaultAttachmentColor
	}
}

// ClientAttributes returns the defaults map understood by webhook.NewClient.
// Only keys present in the file are set.
func (c *FileConfig) ClientAttributes() message.Attributes {
	attrs := message.Attributes{}
	if c.Defaults.Channel != "" {
		attrs["channel"] = c.Defaults.Channel
	}
	if c.Defaults.Username != "" {
		attrs["username"] = c.Defaults.Username
	}
	if c.Defaults.Icon != "" {
		attrs["icon"] = c.Defaults.Icon
	}
	if c.Defaults.LinkNames != nil {
		attrs["linkNames"] = *c.Defaults.LinkNames
	}
	if c.Defaults.UnfurlLinks != nil {
		attrs["unfurlLinks"] = *c.Defaults.UnfurlLinks
	}
	if c.Defaults.UnfurlMedia != nil {
		attrs["unfurlMedia"] = *c.Defaults.UnfurlMedia
	}
	if c.Defaults.Markdown != nil {
		attrs["allowMarkdown"] = *c.Defaults.Markdown
	}
	if c.Defaults.MarkdownIn != nil {
		attrs["markdownInAttachments"] = append([]string{}, c.Defaults.MarkdownIn...)
	}
	return attrs
}

func (c *FileConfig) AttachmentColor() string      { return c.Attachment.Color }
func (c *FileConfig) AttachmentFooter() string     { return c.Attachment.Footer }
func (c *FileConfig) AttachmentFooterIcon() string { return c.Attachment.FooterIcon }
