package app

import (
	"time"

	"gopherpress/internal/model"
)

type ArticleAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ArticleView is the read-model projection served from the cache and
// from single-article reads. The author is denormalized so a cached
// article never needs a second lookup.
type ArticleView struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Text        string        `json:"text"`
	Author      ArticleAuthor `json:"author"`
}

type ArticleSummary struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Author      ArticleAuthor `json:"author"`
}

func toArticleView(article *model.Article) *ArticleView {
	return &ArticleView{
		ID:          article.ID,
		CreatedAt:   article.CreatedAt,
		UpdatedAt:   article.UpdatedAt,
		Name:        article.Name,
		Description: article.Description,
		Text:        article.Text,
		Author:      toArticleAuthor(article.Author),
	}
}

func toArticleSummary(article model.Article) ArticleSummary {
	return ArticleSummary{
		ID:          article.ID,
		CreatedAt:   article.CreatedAt,
		Name:        article.Name,
		Description: article.Description,
		Author:      toArticleAuthor(article.Author),
	}
}

func toArticleAuthor(user model.User) ArticleAuthor {
	return ArticleAuthor{
		ID:       user.ID,
		Username: user.Username,
	}
}
