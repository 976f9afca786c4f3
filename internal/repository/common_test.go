package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/posting/internal/model"
)

func setupTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func mustUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u, err := NewUserRepository(db).FindOrCreate(context.Background(), username)
	require.NoError(t, err)
	return u
}

func mustPost(t *testing.T, db *gorm.DB, u *model.User, content string, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{UserID: u.ID, Content: content, CreatedDate: at}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), p))
	return p
}

func mustFollow(t *testing.T, db *gorm.DB, from, to *model.User) {
	t.Helper()
	require.NoError(t, NewFollowRepository(db).Create(context.Background(), from.ID, to.ID))
}

func contents(posts []*model.Post) []string {
	res := make([]string, len(posts))
	for i, p := range posts {
		res[i] = p.Content
	}
	return res
}
