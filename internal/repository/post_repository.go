package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/posting/internal/model"
)

// Page 一页帖子及总数
type Page struct {
	Posts         []*model.Post
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

func newPage(posts []*model.Post, page, size int, total int64) *Page {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page{Posts: posts, Number: page, Size: size, TotalElements: total, TotalPages: totalPages}
}

// PostRepository 帖子查询，统一按 created_date DESC, id DESC 排序
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// FindByUsername 用户自己的全部帖子（墙）
	FindByUsername(ctx context.Context, username string) ([]*model.Post, error)
	FindPageByUsername(ctx context.Context, username string, page, size int) (*Page, error)
	// FindByFollowed 用户关注的所有人的帖子合并排序（时间线）
	FindByFollowed(ctx context.Context, username string) ([]*model.Post, error)
	FindPageByFollowed(ctx context.Context, username string, page, size int) (*Page, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

const newestFirst = "posts.created_date DESC, posts.id DESC"

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("User").Create(post).Error
}

func (r *postRepository) ownedBy(ctx context.Context, username string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("users.username = ?", username)
}

// followedBy 用子查询而不是 join，重复的关注边不会让帖子重复
func (r *postRepository) followedBy(ctx context.Context, username string) *gorm.DB {
	followed := r.db.
		Table("follows").
		Select("follows.followed_id").
		Joins("JOIN users ON users.id = follows.user_id").
		Where("users.username = ?", username)
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("posts.user_id IN (?)", followed)
}

func (r *postRepository) FindByUsername(ctx context.Context, username string) ([]*model.Post, error) {
	return r.findAll(r.ownedBy(ctx, username))
}

func (r *postRepository) FindPageByUsername(ctx context.Context, username string, page, size int) (*Page, error) {
	return r.findPage(func() *gorm.DB { return r.ownedBy(ctx, username) }, page, size)
}

func (r *postRepository) FindByFollowed(ctx context.Context, username string) ([]*model.Post, error) {
	return r.findAll(r.followedBy(ctx, username))
}

func (r *postRepository) FindPageByFollowed(ctx context.Context, username string, page, size int) (*Page, error) {
	return r.findPage(func() *gorm.DB { return r.followedBy(ctx, username) }, page, size)
}

func (r *postRepository) findAll(q *gorm.DB) ([]*model.Post, error) {
	var posts []*model.Post
	if err := q.Preload("User").Order(newestFirst).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// findPage 计数与取数走同一个连接，调用方在只读事务中调用时两者看到同一快照
func (r *postRepository) findPage(query func() *gorm.DB, page, size int) (*Page, error) {
	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}
	posts := make([]*model.Post, 0, size)
	if total > int64(page)*int64(size) {
		if err := query().
			Preload("User").
			Order(newestFirst).
			Offset(page * size).
			Limit(size).
			Find(&posts).Error; err != nil {
			return nil, err
		}
	}
	return newPage(posts, page, size, total), nil
}
