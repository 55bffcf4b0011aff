package xerror

import (
	"github.com/pkg/errors"
)

// Wrap 包装错误，添加上下文信息
// 如果 err 为 nil，返回 nil
// 格式: message: err，errors.Is / errors.As 仍可穿透到原始错误
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, message)
}

// Wrapf 包装错误，使用格式化字符串添加上下文信息
// 如果 err 为 nil，返回 nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithMessagef(err, format, args...)
}

// Cause 返回最底层的原始错误
func Cause(err error) error {
	return errors.Cause(err)
}

func Assert(err error) {
	if err != nil {
		panic(err)
	}
}
