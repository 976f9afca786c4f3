package model

import (
	"strings"
	"time"
)

// LocalDateTimeLayout 不带时区的本地时间格式
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

// LocalDateTime 序列化为不带时区的本地时间，例如 2024-01-02T15:04:05.123
type LocalDateTime time.Time

func (t LocalDateTime) Time() time.Time { return time.Time(t) }

func (t LocalDateTime) String() string {
	return time.Time(t).Local().Format(LocalDateTimeLayout)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = LocalDateTime{}
		return nil
	}
	parsed, err := time.ParseInLocation(LocalDateTimeLayout, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalDateTime(parsed)
	return nil
}

// PostDTO 墙/时间线返回的帖子投影
type PostDTO struct {
	Username    string        `json:"username"`
	Content     string        `json:"content"`
	CreatedDate LocalDateTime `json:"createdDate"`
}

// ToPostDTO 投影单个帖子，要求 User 已预加载
func ToPostDTO(p *Post) PostDTO {
	dto := PostDTO{Content: p.Content, CreatedDate: LocalDateTime(p.CreatedDate)}
	if p.User != nil {
		dto.Username = p.User.Username
	}
	return dto
}

// ToPostDTOs 投影列表，空列表返回 [] 而不是 nil
func ToPostDTOs(posts []*Post) []PostDTO {
	res := make([]PostDTO, len(posts))
	for i, p := range posts {
		res[i] = ToPostDTO(p)
	}
	return res
}
