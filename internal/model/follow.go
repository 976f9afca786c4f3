package model

import (
	"time"
)

// Follow 关注关系（UserID 关注 FollowedID）
// 没有唯一约束：重复关注会追加一条重复的边
type Follow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	UserID     uint64 `gorm:"index:idx_follow_user;not null"`
	FollowedID uint64 `gorm:"index:idx_follow_followed;not null"`
	User       *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Followed   *User  `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }
