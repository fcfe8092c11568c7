package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YangWanjun/ebusiness/internal/middleware"
	"github.com/YangWanjun/ebusiness/internal/partner/repository"
	"github.com/YangWanjun/ebusiness/internal/partner/service"
	"github.com/YangWanjun/ebusiness/internal/shared/response"
)

// PartnerHandler 協力会社・ＢＰ注文書まわりのハンドラー
type PartnerHandler struct {
	repos     *repository.Repositories
	orders    *service.OrderService
	contracts *service.ContractService
}

func NewPartnerHandler(repos *repository.Repositories, orders *service.OrderService, contracts *service.ContractService) *PartnerHandler {
	return &PartnerHandler{repos: repos, orders: orders, contracts: contracts}
}

// ListPartners 協力会社一覧（稼働要員数付き）
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	partners, err := h.repos.Partner.ListSummary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, partners)
}

// GetPartner 協力会社詳細
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	partner, err := h.repos.Partner.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "協力会社が見つかりません。")
		return
	}
	response.Success(c, partner)
}

// ListPartnerMembers 協力会社の作業メンバー一覧
func (h *PartnerHandler) ListPartnerMembers(c *gin.Context) {
	members, err := h.repos.Partner.ListMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, members)
}

// DeletePartner 協力会社を論理削除する
func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	if err := h.repos.Partner.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type generateOrderBody struct {
	ProjectMemberID string     `json:"project_member_id" binding:"required"`
	Year            string     `json:"year" binding:"required"`
	Month           string     `json:"month" binding:"required"`
	EndYear         string     `json:"end_year"`
	EndMonth        string     `json:"end_month"`
	PublishDate     *time.Time `json:"publish_date"`
}

func (b *generateOrderBody) toInput(userID string) *service.GenerateOrderInput {
	in := &service.GenerateOrderInput{
		ProjectMemberID: b.ProjectMemberID,
		Year:            b.Year,
		Month:           b.Month,
		EndYear:         b.EndYear,
		EndMonth:        b.EndMonth,
		UserID:          userID,
	}
	if b.PublishDate != nil {
		in.PublishDate = *b.PublishDate
	}
	return in
}

// PreviewOrder ＢＰ注文書データを計算して返す（保存しない）
func (h *PartnerHandler) PreviewOrder(c *gin.Context) {
	var body generateOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	data, err := h.orders.GenerateOrderData(c.Request.Context(), body.toInput(middleware.GetUserID(c)))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, data)
}

// GenerateOrder ＢＰ注文書を生成して保存する
func (h *PartnerHandler) GenerateOrder(c *gin.Context) {
	var body generateOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	data, err := h.orders.GenerateAndSave(c.Request.Context(), body.toInput(middleware.GetUserID(c)))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, data)
}

// GetOrder ＢＰ注文書を取得する
func (h *PartnerHandler) GetOrder(c *gin.Context) {
	order, err := h.repos.Order.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "ＢＰ注文書が見つかりません。")
		return
	}
	response.Success(c, order)
}

// SendOrder ＢＰ注文書をメール送信する。送信成功後に送信済みになる。
func (h *PartnerHandler) SendOrder(c *gin.Context) {
	if err := h.orders.SendOrder(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}
