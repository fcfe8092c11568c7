package handler

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/YangWanjun/ebusiness/internal/middleware"
	"github.com/YangWanjun/ebusiness/internal/project/entity"
	"github.com/YangWanjun/ebusiness/internal/project/repository"
	"github.com/YangWanjun/ebusiness/internal/project/service"
	"github.com/YangWanjun/ebusiness/internal/shared/response"
	"github.com/YangWanjun/ebusiness/internal/shared/storage"
)

// ProjectHandler 案件・出勤・請求書まわりのハンドラー
type ProjectHandler struct {
	repos   *repository.Repositories
	billing *service.BillingService
	files   storage.Store
}

func NewProjectHandler(repos *repository.Repositories, billing *service.BillingService, files storage.Store) *ProjectHandler {
	return &ProjectHandler{repos: repos, billing: billing, files: files}
}

// ListProjects 案件一覧
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.repos.Project.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, projects)
}

// GetProject 案件詳細
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.repos.Project.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "案件が見つかりません。")
		return
	}
	response.Success(c, project)
}

// ListClients 取引先一覧
func (h *ProjectHandler) ListClients(c *gin.Context) {
	clients, err := h.repos.Client.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, clients)
}

// DeleteClient 取引先を論理削除する
func (h *ProjectHandler) DeleteClient(c *gin.Context) {
	if err := h.repos.Client.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// DeleteProject 案件を論理削除する
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.repos.Project.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// DeleteProjectMember アサインを論理削除する
func (h *ProjectHandler) DeleteProjectMember(c *gin.Context) {
	if err := h.repos.ProjectMember.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

type generateRequestBody struct {
	ClientOrderID string     `json:"client_order_id" binding:"required"`
	Year          string     `json:"year" binding:"required"`
	Month         string     `json:"month" binding:"required"`
	OrderNo       string     `json:"order_no"`
	OrderDate     *time.Time `json:"order_date"`
	ContractName  string     `json:"contract_name"`
	PublishDate   *time.Time `json:"publish_date"`
}

func (b *generateRequestBody) toInput(projectID, userID string) *service.GenerateRequestInput {
	return &service.GenerateRequestInput{
		ProjectID:     projectID,
		ClientOrderID: b.ClientOrderID,
		Year:          b.Year,
		Month:         b.Month,
		OrderNo:       b.OrderNo,
		OrderDate:     b.OrderDate,
		ContractName:  b.ContractName,
		PublishDate:   b.PublishDate,
		UserID:        userID,
	}
}

// PreviewRequest 請求書データを計算して返す（保存しない）
func (h *ProjectHandler) PreviewRequest(c *gin.Context) {
	var body generateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	data, err := h.billing.GenerateRequestData(c.Request.Context(), body.toInput(c.Param("id"), middleware.GetUserID(c)))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, data)
}

// GenerateRequest 請求書を生成して保存する。再実行すると同じ請求番号で
// スナップショットを作り直す。
func (h *ProjectHandler) GenerateRequest(c *gin.Context) {
	var body generateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	data, err := h.billing.GenerateAndSave(c.Request.Context(), body.toInput(c.Param("id"), middleware.GetUserID(c)))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, data)
}

// GetRequest 請求書をスナップショット込みで取得する
func (h *ProjectHandler) GetRequest(c *gin.Context) {
	request, err := h.repos.Request.GetWithSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "請求書が見つかりません。")
		return
	}
	response.Success(c, request)
}

// ListAttendances 案件の指定年月の出勤一覧
func (h *ProjectHandler) ListAttendances(c *gin.Context) {
	attendances, err := h.repos.Attendance.ListByProjectYM(
		c.Request.Context(), c.Param("id"), c.Param("year"), c.Param("month"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, attendances)
}

type attendanceBody struct {
	TotalHours decimal.Decimal `json:"total_hours"`
	ExtraHours decimal.Decimal `json:"extra_hours"`
	Rate       decimal.Decimal `json:"rate"`
	Price      int64           `json:"price"`
	Comment    string          `json:"comment"`
}

// SaveAttendance 出勤情報を登録・更新する
func (h *ProjectHandler) SaveAttendance(c *gin.Context) {
	var body attendanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	if body.Rate.IsZero() {
		body.Rate = decimal.NewFromInt(1)
	}
	attendance := &entity.MemberAttendance{
		ID:              uuid.New().String()[:32],
		ProjectMemberID: c.Param("id"),
		Year:            c.Param("year"),
		Month:           c.Param("month"),
		TotalHours:      body.TotalHours,
		ExtraHours:      body.ExtraHours,
		Rate:            body.Rate,
		Price:           body.Price,
		Comment:         body.Comment,
	}
	if err := h.repos.Attendance.Save(c.Request.Context(), attendance); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, attendance)
}

type expenseBody struct {
	CategoryID string `json:"category_id" binding:"required"`
	Price      int64  `json:"price"`
}

// CreateExpense 精算情報を登録する
func (h *ProjectHandler) CreateExpense(c *gin.Context) {
	var body expenseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "リクエストの形式が不正です："+err.Error())
		return
	}
	expense := &entity.MemberExpense{
		ID:              uuid.New().String()[:32],
		ProjectMemberID: c.Param("id"),
		Year:            c.Param("year"),
		Month:           c.Param("month"),
		CategoryID:      body.CategoryID,
		Price:           body.Price,
	}
	if err := h.repos.Expense.Create(c.Request.Context(), expense); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, expense)
}

// ListExpenses アサインの指定年月の精算一覧
func (h *ProjectHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.repos.Expense.ListByProjectMembersYM(
		c.Request.Context(), []string{c.Param("id")}, c.Param("year"), c.Param("month"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, expenses)
}

// AttendanceSummary 案件の月別出勤集計
func (h *ProjectHandler) AttendanceSummary(c *gin.Context) {
	summaries, err := h.repos.Attendance.SummaryByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, summaries)
}

// DownloadAttachment 帳票ファイルをダウンロードする。トークンは
// Authorization ヘッダーのほかクエリパラメータでも受け付ける。
func (h *ProjectHandler) DownloadAttachment(c *gin.Context) {
	rc, attachment, err := h.files.Open(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		response.NotFound(c, "ファイルが見つかりません。")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(attachment.Name)))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
