package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmorbo/slackhook/infrastructure/webhook"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		raw       string
		title     string
		value     string
		expectErr bool
	}{
		{raw: "Env=prod", title: "Env", value: "prod"},
		{raw: " Env =prod", title: "Env", value: "prod"},
		{raw: "Query=a=b", title: "Query", value: "a=b"},
		{raw: "Empty=", title: "Empty", value: ""},
		{raw: "novalue", expectErr: true},
		{raw: "=value", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			field, err := parseField(tt.raw)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, field.Title())
			assert.Equal(t, tt.value, field.Value())
		})
	}
}

func TestBuildMessage(t *testing.T) {
	client := webhook.NewClient("https://hooks.example.com/services/T000/B000/XXX", map[string]any{
		"channel": "#general",
	}, nil)

	opts := options{
		Channel:  "#deploys",
		Username: "ci",
		Icon:     ":rocket:",
		Text:     "Deploy finished",
		Color:    "danger",
		Title:    "v1.2.3",
		Fields:   []string{"Env=prod", "Region=eu-west-1"},
		Short:    true,
		NoMrkdwn: true,
	}

	m, err := opts.buildMessage(client)
	require.NoError(t, err)

	assert.Equal(t, "#deploys", m.Channel())
	assert.Equal(t, "ci", m.Username())
	assert.Equal(t, ":rocket:", m.Icon())
	assert.False(t, m.AllowMarkdown())

	require.Len(t, m.Attachments(), 1)
	a := m.Attachments()[0]
	assert.Equal(t, "danger", a.Color())
	assert.Equal(t, "v1.2.3", a.Title())
	assert.Equal(t, "Deploy finished", a.Fallback())
	require.Len(t, a.Fields(), 2)
	assert.Equal(t, "Region", a.Fields()[1].Title())
	assert.True(t, a.Fields()[1].Short())
}

func TestBuildMessageWithoutAttachment(t *testing.T) {
	client := webhook.NewClient("https://hooks.example.com/services/T000/B000/XXX", map[string]any{
		"channel": "#general",
	}, nil)

	opts := options{Text: "hello"}
	m, err := opts.buildMessage(client)
	require.NoError(t, err)

	assert.Equal(t, "#general", m.Channel())
	assert.Empty(t, m.Attachments())
	assert.True(t, m.AllowMarkdown())
}

func TestBuildMessageInvalidField(t *testing.T) {
	client := webhook.NewClient("https://hooks.example.com/services/T000/B000/XXX", nil, nil)

	opts := options{Fields: []string{"broken"}}
	_, err := opts.buildMessage(client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCommandPostsMessage(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	err := newCommand(&stdout, &stderr).Run(context.Background(), []string{
		"slackpost",
		"--endpoint", srv.URL,
		"--channel", "#ops",
		"--text", "Backup completed",
		"--title", "nightly",
		"--field", "Size=12GB",
		"--field", "Duration=4m",
	})
	require.NoError(t, err)

	assert.Equal(t, "posted to #ops\n", stdout.String())
	require.NotNil(t, received)
	assert.Equal(t, "Backup completed", received["text"])
	assert.Equal(t, "#ops", received["channel"])

	attachments, ok := received["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	attachment := attachments[0].(map[string]any)
	assert.Equal(t, "nightly", attachment["title"])
	assert.Equal(t, "good", attachment["color"])
	fields, ok := attachment["fields"].([]any)
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestCommandReportsWebhookRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	err := newCommand(&stdout, &stderr).Run(context.Background(), []string{
		"slackpost", "--endpoint", srv.URL, "--text", "hi",
	})
	require.Error(t, err)

	var statusErr *webhook.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Empty(t, stdout.String())
}

func TestCommandRejectsInvalidInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad scheme", args: []string{"slackpost", "--endpoint", "ftp://hooks.example.com/x", "--text", "hi"}},
		{name: "nothing to send", args: []string{"slackpost", "--endpoint", "https://hooks.example.com/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := newCommand(&stdout, &stderr).Run(context.Background(), tt.args)
			require.Error(t, err)
			assert.Empty(t, stdout.String())
		})
	}
}
