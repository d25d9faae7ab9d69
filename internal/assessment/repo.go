package assessment

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

func (r *Repo) Create(ctx context.Context, a *Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListRecent returns the most recent assessments, newest first, optionally
// filtered by user.
func (r *Repo) ListRecent(ctx context.Context, userID string, limit int) ([]Assessment, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	q := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var out []Assessment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
