package bizerr

import (
	"errors"
	"fmt"
)

// Error 業務エラー。人が読めるメッセージのみを持ち、型で細分化しない。
// ハンドラ層で 4xx として返す。それ以外のエラーは 5xx 扱い。
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New 業務エラーを生成する
func New(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Is 業務エラーかどうかを判定する
func Is(err error) bool {
	var be *Error
	return errors.As(err, &be)
}
