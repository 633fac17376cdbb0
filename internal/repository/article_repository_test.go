package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestArticleRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery("SELECT .* FROM `articles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "text", "author_id", "created_at", "updated_at"}))

	article, err := repo.GetByID("missing")
	require.NoError(t, err)
	require.Nil(t, article)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_FindAndCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `articles`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))

	mock.ExpectQuery("SELECT .* FROM `articles`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "text", "author_id", "created_at", "updated_at"}).
			AddRow("article-1", "Title", nil, "Body", "user-1", now, now))

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow("user-1", "alice", "hash", now, now))

	articles, total, err := repo.FindAndCount(ArticleFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, articles, 1)
	require.Equal(t, "article-1", articles[0].ID)
	require.Equal(t, "alice", articles[0].Author.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}
