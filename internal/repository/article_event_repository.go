package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gopherpress/internal/model"
)

type ArticleEventRepository struct {
	db *gorm.DB
}

func NewArticleEventRepository(db *gorm.DB) *ArticleEventRepository {
	return &ArticleEventRepository{db: db}
}

func (r *ArticleEventRepository) Create(event *model.ArticleEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create article event failed: %w", err)
	}
	return nil
}
