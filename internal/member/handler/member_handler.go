package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YangWanjun/ebusiness/internal/member/repository"
	"github.com/YangWanjun/ebusiness/internal/shared/response"
)

// MemberHandler 要員まわりのハンドラー
type MemberHandler struct {
	repos *repository.Repositories
}

func NewMemberHandler(repos *repository.Repositories) *MemberHandler {
	return &MemberHandler{repos: repos}
}

// ListMembers 要員一覧
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.repos.Member.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, members)
}

// GetMember 要員詳細
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.repos.Member.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "要員が見つかりません。")
		return
	}
	response.Success(c, member)
}

// DeleteMember 要員を論理削除する。アサイン・ＢＰ契約が残っている場合は削除できない。
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	if err := h.repos.Member.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
