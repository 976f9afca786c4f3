package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/posting/internal/model"
)

// Store 聚合仓储，并提供事务边界
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Follows() FollowRepository
	// Transaction 在一个事务内执行 fn；readOnly 时开启只读事务
	Transaction(ctx context.Context, readOnly bool, fn func(Store) error) error
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Users() UserRepository     { return NewUserRepository(s.db) }
func (s *gormStore) Posts() PostRepository     { return NewPostRepository(s.db) }
func (s *gormStore) Follows() FollowRepository { return NewFollowRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, readOnly bool, fn func(Store) error) error {
	var opts []*sql.TxOptions
	if readOnly {
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	}, opts...)
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate 初始化表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}); err != nil {
		return fmt.Errorf("failed to migrate posting tables: %w", err)
	}
	return nil
}
