package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/posting/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// FindOrCreate 查不到则创建；并发创建同名用户时落败方复用胜者的行
	FindOrCreate(ctx context.Context, username string) (*model.User, error)
	// Delete 级联删除用户的帖子、关注边和用户本身
	Delete(ctx context.Context, username string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ?", username).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) FindOrCreate(ctx context.Context, username string) (*model.User, error) {
	u, err := r.FindByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	created := &model.User{Username: username}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(created)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 && created.ID != 0 {
		return created, nil
	}
	// 冲突：另一个事务已创建同名用户
	return r.FindByUsername(ctx, username)
}

func (r *userRepository) Delete(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.Where("username = ?", username).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR followed_id = ?", u.ID, u.ID).Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}
