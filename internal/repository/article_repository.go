package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gopherpress/internal/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

// ArticleFilter narrows FindAndCount. Zero-valued fields are skipped;
// both date bounds are inclusive.
type ArticleFilter struct {
	Username    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	Limit       int
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(article *model.Article) error {
	if err := r.db.Create(article).Error; err != nil {
		return fmt.Errorf("create article failed: %w", err)
	}
	return nil
}

// GetByID loads the article together with its author relation.
func (r *ArticleRepository) GetByID(id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.Preload("Author").Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query article by id failed: %w", err)
	}
	return &article, nil
}

func (r *ArticleRepository) Save(article *model.Article) error {
	// The loaded author relation stays untouched; only article columns are written.
	if err := r.db.Omit("Author").Save(article).Error; err != nil {
		return fmt.Errorf("save article failed: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(article *model.Article) error {
	if err := r.db.Delete(article).Error; err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return nil
}

// FindAndCount runs the count query and the data query for one page,
// ordered by creation time descending.
func (r *ArticleRepository) FindAndCount(filter ArticleFilter) ([]model.Article, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count articles failed: %w", err)
	}

	var articles []model.Article
	err := r.filtered(filter).
		Preload("Author").
		Order("articles.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("find articles failed: %w", err)
	}
	return articles, total, nil
}

func (r *ArticleRepository) filtered(filter ArticleFilter) *gorm.DB {
	query := r.db.Model(&model.Article{})
	if filter.Username != "" {
		query = query.
			Joins("JOIN users ON users.id = articles.author_id").
			Where("users.username = ?", filter.Username)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("articles.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("articles.created_at <= ?", *filter.CreatedTo)
	}
	return query
}
