package prospect

import (
	"context"

	"github.com/gymhub/backend/internal/domain/shared"
)

// Repository provides access to prospects
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Prospect, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Prospect, int64, error)
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Prospect, int64, error)
	Save(ctx context.Context, p *Prospect) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
