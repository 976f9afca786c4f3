package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/posting/internal/cache"
	"github.com/d60-Lab/posting/internal/repository"
	"github.com/d60-Lab/posting/pkg/logger"
)

// Validator 业务校验；directory 为 nil 时每次都查数据库
type Validator struct {
	directory *cache.UserDirectory
}

func NewValidator(directory *cache.UserDirectory) *Validator {
	return &Validator{directory: directory}
}

// ValidateFollowingUsernames 不能关注自己（精确比较）
func (v *Validator) ValidateFollowingUsernames(requester, followed string) error {
	if requester == followed {
		return ErrFollowSelf
	}
	return nil
}

// ValidateUserExists 先查用户目录缓存，再回源
func (v *Validator) ValidateUserExists(ctx context.Context, users repository.UserRepository, username string) error {
	if v.directory != nil {
		ok, err := v.directory.Contains(ctx, username)
		if err != nil {
			logger.Warn("user directory lookup failed", zap.String("username", username), zap.Error(err))
		} else if ok {
			return nil
		}
	}

	exists, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return v.UnknownUsername(username)
	}

	if v.directory != nil {
		if err := v.directory.Add(ctx, username); err != nil {
			logger.Warn("user directory add failed", zap.String("username", username), zap.Error(err))
		}
	}
	return nil
}

// ValidatePageRequest 页码从 0 开始，每页至少一条
func (v *Validator) ValidatePageRequest(page, size int) error {
	if page < 0 {
		return invalidRequest("Page index must not be less than zero")
	}
	if size < 1 {
		return invalidRequest("Page size must not be less than one")
	}
	return nil
}

// ValidatePageNumber 页码必须小于总页数（总页数为 0 时任何页码都不合法）
func (v *Validator) ValidatePageNumber(page, totalPages int) error {
	if totalPages <= page {
		return invalidRequest("Page number too high, max value of the 'page' parameter is [%d]", totalPages-1)
	}
	return nil
}

// UnknownUsername 构造用户不存在错误，不做任何查询
func (v *Validator) UnknownUsername(username string) error {
	return invalidRequest("User [%s] does not exist", username)
}
