package service

import (
	"errors"
	"fmt"
)

// InvalidRequestError 请求不合法，HTTP 层映射为 400，Message 作为响应体
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }

func invalidRequest(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidRequest 判断错误链中是否有 InvalidRequestError
func IsInvalidRequest(err error) bool {
	var ire *InvalidRequestError
	return errors.As(err, &ire)
}

var (
	ErrFollowSelf = &InvalidRequestError{Message: "Can't follow yourself, sorry"}
)
