package model

import "time"

// User 用户，username 唯一且创建后不可变
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex:ux_users_username;not null"`
	CreatedAt time.Time
}

func (User) TableName() string { return "users" }
