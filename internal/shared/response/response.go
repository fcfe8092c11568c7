package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

// Response 共通レスポンス構造
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功レスポンス
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// Created 作成成功レスポンス
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// BadRequest 入力エラー
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: 40000, Message: message})
}

// NotFound 対象なし
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Code: 40400, Message: message})
}

// InternalError サーバーエラー
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{Code: 50000, Message: message})
}

// FromError 業務エラーは 400、それ以外は 500 で返す
func FromError(c *gin.Context, err error) {
	if bizerr.Is(err) {
		BadRequest(c, err.Error())
		return
	}
	InternalError(c, err.Error())
}
