package app

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gopherpress/internal/model"
	"gopherpress/internal/repository"
)

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User

	CreateFunc        func(user *model.User) error
	GetByUsernameFunc func(username string) (*model.User, error)
	GetByIDFunc       func(id string) (*model.User, error)
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(user *model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetByUsername(username string) (*model.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByID(id string) (*model.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type mockArticleRepo struct {
	CreateFunc       func(article *model.Article) error
	GetByIDFunc      func(id string) (*model.Article, error)
	SaveFunc         func(article *model.Article) error
	DeleteFunc       func(article *model.Article) error
	FindAndCountFunc func(filter repository.ArticleFilter) ([]model.Article, int64, error)

	getByIDCalls int
}

func (m *mockArticleRepo) Create(article *model.Article) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(article)
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	return nil
}

func (m *mockArticleRepo) GetByID(id string) (*model.Article, error) {
	m.getByIDCalls++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *mockArticleRepo) Save(article *model.Article) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(article)
	}
	return nil
}

func (m *mockArticleRepo) Delete(article *model.Article) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(article)
	}
	return nil
}

func (m *mockArticleRepo) FindAndCount(filter repository.ArticleFilter) ([]model.Article, int64, error) {
	if m.FindAndCountFunc != nil {
		return m.FindAndCountFunc(filter)
	}
	return nil, 0, nil
}

type mockArticleCache struct {
	mu      sync.Mutex
	entries map[string]*ArticleView

	getErr error
	setErr error
	delErr error
}

func newMockArticleCache() *mockArticleCache {
	return &mockArticleCache{entries: make(map[string]*ArticleView)}
}

func (m *mockArticleCache) Get(ctx context.Context, id string) (*ArticleView, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	view, ok := m.entries[id]
	if !ok {
		return nil, false, nil
	}
	copied := *view
	return &copied, true, nil
}

func (m *mockArticleCache) Set(ctx context.Context, view *ArticleView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	copied := *view
	m.entries[view.ID] = &copied
	return nil
}

func (m *mockArticleCache) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.entries, id)
	return nil
}

func (m *mockArticleCache) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[id]
	return ok
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []model.ArticleEvent
	err    error
}

func (m *mockEventPublisher) Publish(ctx context.Context, event model.ArticleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}
