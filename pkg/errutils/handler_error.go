package errutils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HandlerError struct {
	Err        error  // 原始错误
	StatusCode int    // HTTP 状态码
	Message    string // 对外显示的消息
}

func (e *HandlerError) Error() string {
	return e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// 创建错误实例的辅助函数
func NewHandlerError(err error, status int, msg string) *HandlerError {
	return &HandlerError{
		Err:        err,
		StatusCode: status,
		Message:    msg,
	}
}

// ErrorHandlingMiddleware renders the first HandlerError attached with c.Error as a JSON body.
// Other errors become 500 Internal Server Error.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		hErr := &HandlerError{}
		if !errors.As(err, &hErr) {
			hErr = NewHandlerError(err, http.StatusInternalServerError, "Internal Server Error")
		}
		logrus.WithContext(c.Request.Context()).Errorf("Handler error: %v (returned as: %v)", hErr.Err, hErr.Message)
		c.JSON(hErr.StatusCode, gin.H{"error": hErr.Message})
	}
}
