package chat

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, e *Exchange) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListRecent returns the most recent exchanges, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Exchange, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []Exchange
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
