package delivery

import "time"

type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	return s == StatusSent || s == StatusFailed
}

// Delivery records the outcome of one relayed webhook send.
type Delivery struct {
	id          string
	channel     string
	username    string
	attachments int
	status      Status
	errMsg      string
	createdAt   time.Time
}

func NewDelivery(id, channel, username string, attachments int) (*Delivery, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	return &Delivery{
		id:          id,
		channel:     channel,
		username:    username,
		attachments: attachments,
		status:      StatusSent,
		createdAt:   time.Now(),
	}, nil
}

func RestoreDelivery(id, channel, username string, attachments int, status Status, errMsg string, createdAt time.Time) *Delivery {
	return &Delivery{
		id:          id,
		channel:     channel,
		username:    username,
		attachments: attachments,
		status:      status,
		errMsg:      errMsg,
		createdAt:   createdAt,
	}
}

func (d *Delivery) ID() string           { return d.id }
func (d *Delivery) Channel() string      { return d.channel }
func (d *Delivery) Username() string     { return d.username }
func (d *Delivery) Attachments() int     { return d.attachments }
func (d *Delivery) Status() Status       { return d.status }
func (d *Delivery) Error() string        { return d.errMsg }
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

func (d *Delivery) MarkFailed(err error) {
	d.status = StatusFailed
	if err != nil {
		d.errMsg = err.Error()
	}
}
