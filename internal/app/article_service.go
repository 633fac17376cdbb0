package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"gopherpress/internal/model"
	"gopherpress/internal/pkg/pagination"
	"gopherpress/internal/repository"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrAuthorNotFound  = errors.New("author not found")
	ErrNoAccess        = errors.New("no access to this article")
)

const (
	eventCreated = "created"
	eventUpdated = "updated"
	eventDeleted = "deleted"

	defaultPage  = 1
	defaultLimit = 10
)

// ArticleRepo is the slice of the article store the service needs.
type ArticleRepo interface {
	Create(article *model.Article) error
	GetByID(id string) (*model.Article, error)
	Save(article *model.Article) error
	Delete(article *model.Article) error
	FindAndCount(filter repository.ArticleFilter) ([]model.Article, int64, error)
}

// ArticleCache holds read-model projections with a TTL-bounded lifetime.
type ArticleCache interface {
	Get(ctx context.Context, id string) (*ArticleView, bool, error)
	Set(ctx context.Context, view *ArticleView) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher emits article audit events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ArticleEvent) error
}

type ArticleService struct {
	articleRepo ArticleRepo
	userRepo    UserRepo
	cache       ArticleCache
	publisher   EventPublisher
	logger      *zap.Logger
}

type CreateArticleInput struct {
	AuthorID    string
	Name        string
	Description *string
	Text        string
}

type UpdateArticleInput struct {
	ID          string
	ActorID     string
	Name        *string
	Description *string
	Text        *string
}

type FindManyInput struct {
	Username    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	Limit       int
}

func NewArticleService(
	articleRepo ArticleRepo,
	userRepo UserRepo,
	cache ArticleCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *ArticleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

// FindByID serves a single article read-through: a cache hit returns
// without touching the store, a miss reads the store and populates the
// cache. Cache failures degrade to store reads, they never fail the
// request.
func (s *ArticleService) FindByID(ctx context.Context, id string) (*ArticleView, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("article cache read failed", zap.String("article_id", id), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	view := toArticleView(article)
	s.cacheView(ctx, view)
	return view, nil
}

// FindMany runs the filtered, paginated search. It always reads the
// store directly; list results are never cached.
func (s *ArticleService) FindMany(ctx context.Context, input FindManyInput) (pagination.Page[ArticleSummary], error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	articles, total, err := s.articleRepo.FindAndCount(repository.ArticleFilter{
		Username:    strings.TrimSpace(input.Username),
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return pagination.Page[ArticleSummary]{}, err
	}

	entities := pagination.New(articles, total, page, limit)
	return pagination.Map(entities, toArticleSummary), nil
}

// Create persists a new article for the acting identity, then writes
// the fresh projection through to the cache so the next read observes
// it without a store round trip.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*ArticleView, error) {
	name := strings.TrimSpace(input.Name)
	if input.AuthorID == "" || name == "" || input.Text == "" {
		return nil, ErrInvalidInput
	}

	author, err := s.userRepo.GetByID(input.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	article := &model.Article{
		Name:        name,
		Description: input.Description,
		Text:        input.Text,
		AuthorID:    author.ID,
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}
	article.Author = *author

	view := toArticleView(article)
	s.cacheView(ctx, view)
	s.publishEvent(ctx, article.ID, author.ID, eventCreated)
	return view, nil
}

// Update mutates an article after the ownership gate passes. Fields
// left nil keep their current value. The store write happens first;
// only a confirmed write reaches the cache.
func (s *ArticleService) Update(ctx context.Context, input UpdateArticleInput) (*ArticleView, error) {
	article, err := s.authorizeOwner(input.ID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		article.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		article.Description = input.Description
	}
	if input.Text != nil {
		article.Text = *input.Text
	}

	if err := s.articleRepo.Save(article); err != nil {
		return nil, err
	}

	view := toArticleView(article)
	s.cacheView(ctx, view)
	s.publishEvent(ctx, article.ID, article.AuthorID, eventUpdated)
	return view, nil
}

// Delete removes an owned article. The cache entry is evicted before
// the store delete: if the delete then fails, the next read simply
// repopulates from the unchanged store.
func (s *ArticleService) Delete(ctx context.Context, id, actorID string) error {
	article, err := s.authorizeOwner(id, actorID)
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			return err
		}
	}
	if err := s.articleRepo.Delete(article); err != nil {
		return err
	}

	s.publishEvent(ctx, id, article.AuthorID, eventDeleted)
	return nil
}

// authorizeOwner fetches the article straight from the store (the
// cached author could be stale) and gates the mutation. Existence is
// checked before ownership: a missing article never answers Forbidden.
func (s *ArticleService) authorizeOwner(id, actorID string) (*model.Article, error) {
	if id == "" || actorID == "" {
		return nil, ErrInvalidInput
	}

	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if article.Author.ID != actorID {
		return nil, ErrNoAccess
	}
	return article, nil
}

func (s *ArticleService) cacheView(ctx context.Context, view *ArticleView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, view); err != nil {
		s.logger.Warn("article cache write failed", zap.String("article_id", view.ID), zap.Error(err))
	}
}

func (s *ArticleService) publishEvent(ctx context.Context, articleID, authorID, action string) {
	if s.publisher == nil {
		return
	}
	event := model.ArticleEvent{
		ArticleID:  articleID,
		AuthorID:   authorID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish article event failed",
			zap.String("article_id", articleID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
