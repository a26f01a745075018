package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alexmorbo/slackhook/application/dto"
	"github.com/alexmorbo/slackhook/application/port"
	"github.com/alexmorbo/slackhook/domain/delivery"
	"github.com/alexmorbo/slackhook/domain/message"
	"github.com/alexmorbo/slackhook/pkg/logger"
)

type RelayMessageUseCase struct {
	client       port.WebhookClient
	deliveryRepo delivery.Repository
	defaults     port.AttachmentDefaults
	logger       *slog.Logger
}

func NewRelayMessageUseCase(
	client port.WebhookClient,
	deliveryRepo delivery.Repository,
	defaults port.AttachmentDefaults,
	logger *slog.Logger,
) *RelayMessageUseCase {
	return &RelayMessageUseCase{
		client:       client,
		deliveryRepo: deliveryRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// Execute builds one message from input and posts it once. The outcome is
// journaled either way; a journal failure is logged and does not change the
// result of the send.
func (uc *RelayMessageUseCase) Execute(ctx context.Context, input dto.MessageInput) (*dto.DeliveryOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	m := uc.buildMessage(input)

	d, err := delivery.NewDelivery(uuid.New().String(), m.Channel(), m.Username(), len(m.Attachments()))
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	sendErr := m.Send(logger.WithDeliveryID(ctx, d.ID()), input.Text)
	if sendErr != nil {
		d.MarkFailed(sendErr)
		uc.logger.Error("Message relay failed",
			logger.MessageFields(d.ID(), d.Channel(), d.Username(), d.Attachments()),
			slog.String("error", sendErr.Error()),
			slog.String("request_id", logger.GetRequestID(ctx)),
		)
	} else {
		uc.logger.Info("Message relayed",
			logger.ApplicationFields("message_relayed",
				slog.String("delivery_id", d.ID()),
				slog.String("channel", d.Channel()),
				slog.Int("attachments", d.Attachments()),
			),
			slog.String("request_id", logger.GetRequestID(ctx)),
		)
		attachmentsRelayedCounter.Add(d.Attachments())
	}
	messagesRelayedCounter(d.Status().String()).Inc()

	if err := uc.deliveryRepo.Save(ctx, d); err != nil {
		deliveryJournalErrCounter.Inc()
		uc.logger.Warn("Failed to journal delivery",
			slog.String("delivery_id", d.ID()),
			slog.String("error", err.Error()),
		)
	}

	out := dto.NewDeliveryOutput(d)
	if sendErr != nil {
		return out, fmt.Errorf("send message: %w", sendErr)
	}
	return out, nil
}

func (uc *RelayMessageUseCase) GetDelivery(ctx context.Context, id string) (*dto.DeliveryOutput, error) {
	d, err := uc.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find delivery %s: %w", id, err)
	}
	return dto.NewDeliveryOutput(d), nil
}

func (uc *RelayMessageUseCase) buildMessage(input dto.MessageInput) *message.Message {
	m := uc.client.CreateMessage()

	if input.Channel != "" {
		m.To(input.Channel)
	}
	if input.Username != "" {
		m.From(input.Username)
	}
	if input.Icon != "" {
		m.WithIcon(input.Icon)
	}
	if input.Markdown != nil {
		m.SetAllowMarkdown(*input.Markdown)
	}
	if input.MarkdownIn != nil {
		m.SetMarkdownInAttachments(input.MarkdownIn)
	}

	for _, attrs := range input.AttachmentAttributes() {
		uc.applyAttachmentDefaults(attrs)
		m.AttachAttributes(attrs)
	}

	return m
}

func (uc *RelayMessageUseCase) applyAttachmentDefaults(attrs message.Attributes) {
	if uc.defaults == nil {
		return
	}
	setIfMissing := func(key, value string) {
		if value != "" && !attrs.Has(key) {
			attrs[key] = value
		}
	}
	setIfMissing("color", uc.defaults.AttachmentColor())
	setIfMissing("footer", uc.defaults.AttachmentFooter())
	setIfMissing("footer_icon", uc.defaults.AttachmentFooterIcon())
}
