package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// UserDirectory 记录已知存在的用户名（redis set）。
// 用户名不可变且服务不删除用户，命中即可信；未命中时回源数据库。
type UserDirectory struct {
	client *redis.Client
	key    string
}

// NewUserDirectory client 为 nil 时返回 nil，调用方按未启用处理
func NewUserDirectory(client *redis.Client, keyPrefix string) *UserDirectory {
	if client == nil {
		return nil
	}
	return &UserDirectory{client: client, key: keyPrefix + "users"}
}

func (d *UserDirectory) Key() string { return d.key }

// Contains 用户名是否已在目录中
func (d *UserDirectory) Contains(ctx context.Context, username string) (bool, error) {
	ok, err := d.client.SIsMember(ctx, d.key, username).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return ok, err
}

func (d *UserDirectory) Add(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	return d.client.SAdd(ctx, d.key, interfaceSlice(usernames)...).Err()
}

func (d *UserDirectory) Remove(ctx context.Context, usernames ...string) error {
	if len(usernames) == 0 {
		return nil
	}
	return d.client.SRem(ctx, d.key, interfaceSlice(usernames)...).Err()
}

// Clear 清空目录
func (d *UserDirectory) Clear(ctx context.Context) error {
	return d.client.Del(ctx, d.key).Err()
}

func interfaceSlice(strs []string) []interface{} {
	result := make([]interface{}, len(strs))
	for i, s := range strs {
		result[i] = s
	}
	return result
}
