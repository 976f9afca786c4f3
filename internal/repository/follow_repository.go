package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/posting/internal/model"
)

type FollowRepository interface {
	// Create 追加一条关注边，不去重
	Create(ctx context.Context, userID, followedID uint64) error
	// ListFollowed 按关注顺序返回被关注的用户（重复边会重复出现）
	ListFollowed(ctx context.Context, userID uint64) ([]*model.User, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, userID, followedID uint64) error {
	f := &model.Follow{UserID: userID, FollowedID: followedID}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) ListFollowed(ctx context.Context, userID uint64) ([]*model.User, error) {
	var edges []*model.Follow
	err := r.db.WithContext(ctx).
		Preload("Followed").
		Where("user_id = ?", userID).
		Order("id").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	res := make([]*model.User, 0, len(edges))
	for _, e := range edges {
		if e.Followed != nil {
			res = append(res, e.Followed)
		}
	}
	return res, nil
}
