package delivery

import "context"

type Repository interface {
	Save(ctx context.Context, d *Delivery) error
	FindByID(ctx context.Context, id string) (*Delivery, error)
}
