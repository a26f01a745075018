package dto

import (
	"time"

	"github.com/alexmorbo/slackhook/domain/delivery"
)

type DeliveryOutput struct {
	ID          string    `json:"id"`
	Channel     string    `json:"channel"`
	Username    string    `json:"username,omitempty"`
	Attachments int       `json:"attachments"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewDeliveryOutput(d *delivery.Delivery) *DeliveryOutput {
	return &DeliveryOutput{
		ID:          d.ID(),
		Channel:     d.Channel(),
		Username:    d.Username(),
		Attachments: d.Attachments(),
		Status:      d.Status().String(),
		Error:       d.Error(),
		CreatedAt:   d.CreatedAt(),
	}
}
