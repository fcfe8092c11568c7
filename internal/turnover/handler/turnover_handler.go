package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YangWanjun/ebusiness/internal/shared/response"
	"github.com/YangWanjun/ebusiness/internal/turnover/service"
)

// TurnoverHandler 売上集計（参照のみ）
type TurnoverHandler struct {
	svc *service.TurnoverService
}

func NewTurnoverHandler(svc *service.TurnoverService) *TurnoverHandler {
	return &TurnoverHandler{svc: svc}
}

// Monthly 月別売上一覧
func (h *TurnoverHandler) Monthly(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	summaries, err := h.svc.Monthly(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summaries)
}

// MonthlyChart 直近12ヶ月の売上推移
func (h *TurnoverHandler) MonthlyChart(c *gin.Context) {
	chart, err := h.svc.MonthlyChart(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, chart)
}

// Yearly 年間売上一覧
func (h *TurnoverHandler) Yearly(c *gin.Context) {
	summaries, err := h.svc.Yearly(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summaries)
}

// YearlyChart 年間売上推移
func (h *TurnoverHandler) YearlyChart(c *gin.Context) {
	chart, err := h.svc.YearlyChart(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, chart)
}

// ClientsByMonth 指定年月のお客様別売上
func (h *TurnoverHandler) ClientsByMonth(c *gin.Context) {
	year, month := c.Param("year"), c.Param("month")
	summaries, err := h.svc.ClientsByMonth(c.Request.Context(), year, month)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summaries)
}

// ClientByMonth 指定お客様・年月の案件別売上
func (h *TurnoverHandler) ClientByMonth(c *gin.Context) {
	clientID := c.Param("client_id")
	year, month := c.Param("year"), c.Param("month")
	summaries, err := h.svc.ClientByMonth(c.Request.Context(), clientID, year, month)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summaries)
}
