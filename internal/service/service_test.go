package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/posting/internal/cache"
	"github.com/d60-Lab/posting/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// stepClock 每次调用前进一秒，保证创建时间互不相同
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newStepClock() *stepClock {
	return &stepClock{cur: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type fixture struct {
	db    *gorm.DB
	store repository.Store
	svc   PostingService
	clock *stepClock
}

func newFixture(t *testing.T, directory *cache.UserDirectory) *fixture {
	t.Helper()
	db := setupTestDB(t)
	store := repository.NewStore(db)
	clock := newStepClock()
	svc := NewPostingService(store, NewValidator(directory), WithClock(clock.Now))
	return &fixture{db: db, store: store, svc: svc, clock: clock}
}

func (f *fixture) post(t *testing.T, username string, contents ...string) {
	t.Helper()
	for _, c := range contents {
		require.NoError(t, f.svc.NewPost(context.Background(), username, c))
	}
}
