package model

import "time"

// MaxPostLength 帖子内容最大字符数
const MaxPostLength = 140

// Post 帖子，只属于一个用户；CreatedDate 创建时由服务端赋值，之后不再修改
type Post struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"index:idx_post_user_created;not null"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content     string    `gorm:"type:varchar(140);not null"`
	CreatedDate time.Time `gorm:"index:idx_post_user_created;not null"`
}

func (Post) TableName() string { return "posts" }
