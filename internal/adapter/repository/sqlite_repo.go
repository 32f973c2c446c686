package repository

import (
	"context"
	"fmt"

	"repo-insight/internal/common"
	"repo-insight/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteRepo implements port.IdeaRepository on a single database file.
type SQLiteRepo struct {
	db *gorm.DB
}

// NewSQLiteRepo opens (creating on first start) the database file and
// migrates the post/comment tables.
func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Post{}, &domain.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// CreatePost inserts a new post. A single-row insert is atomic, so a
// failure leaves no partial row behind.
func (r *SQLiteRepo) CreatePost(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return common.WrapError(common.ErrCodeDatabase, "Database error.", err)
	}
	return nil
}

// ListPosts returns all posts, most recent first, with comments preloaded
// so callers can surface a count. Equal timestamps fall back to insertion
// order (higher id first).
func (r *SQLiteRepo) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Comments").
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, common.WrapError(common.ErrCodeDatabase, "Failed to fetch posts", err)
	}
	return posts, nil
}

// countPosts reports the number of stored posts. Test helper surface.
func (r *SQLiteRepo) countPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&count).Error
	return count, err
}
