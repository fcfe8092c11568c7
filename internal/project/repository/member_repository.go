package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/project/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/protect"
)

type ProjectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) *ProjectMemberRepository {
	return &ProjectMemberRepository{db: db}
}

// FindByID アサインを取得する（案件・要員も合わせて読み込む）
func (r *ProjectMemberRepository) FindByID(ctx context.Context, id string) (*entity.ProjectMember, error) {
	var pm entity.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.Client").
		Preload("Member").
		First(&pm, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

// ListActiveByProjects 対象期間に稼働している案件メンバーを取得する。
// 提案中（ステータス0）は請求対象外。
func (r *ProjectMemberRepository) ListActiveByProjects(ctx context.Context, projectIDs []string, periodStart, periodEnd time.Time) ([]entity.ProjectMember, error) {
	var members []entity.ProjectMember
	if len(projectIDs) == 0 {
		return members, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("project_id IN ? AND is_deleted = false", projectIDs).
		Where("status <> ?", entity.ProjectMemberStatusProposed).
		Where("(start_date IS NULL OR start_date <= ?) AND (end_date IS NULL OR end_date >= ?)", periodEnd, periodStart).
		Order("start_date ASC").
		Find(&members).Error
	return members, err
}

// SoftDelete アサインを論理削除する。出勤・注文書が残っている場合は削除できない。
func (r *ProjectMemberRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := protect.Check(ctx, tx, "project_member", id); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entity.ProjectMember{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
	})
}

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FindByProjectMemberYM 指定年月の出勤情報を取得する。存在しない場合は nil。
func (r *AttendanceRepository) FindByProjectMemberYM(ctx context.Context, projectMemberID, year, month string) (*entity.MemberAttendance, error) {
	var attendance entity.MemberAttendance
	err := r.db.WithContext(ctx).
		Where("project_member_id = ? AND year = ? AND month = ?", projectMemberID, year, month).
		First(&attendance).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &attendance, nil
}

// Save 出勤情報を保存する（(project_member, year, month) 単位で upsert）
func (r *AttendanceRepository) Save(ctx context.Context, attendance *entity.MemberAttendance) error {
	existing, err := r.FindByProjectMemberYM(ctx, attendance.ProjectMemberID, attendance.Year, attendance.Month)
	if err != nil {
		return err
	}
	if existing != nil {
		attendance.ID = existing.ID
		attendance.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(attendance).Error
	}
	return r.db.WithContext(ctx).Create(attendance).Error
}

// ListByProjectYM 案件の指定年月の出勤一覧を取得する
func (r *AttendanceRepository) ListByProjectYM(ctx context.Context, projectID, year, month string) ([]entity.MemberAttendance, error) {
	var attendances []entity.MemberAttendance
	err := r.db.WithContext(ctx).
		Joins("JOIN eb_projectmember pm ON pm.id = eb_memberattendance.project_member_id").
		Where("pm.project_id = ? AND eb_memberattendance.year = ? AND eb_memberattendance.month = ?", projectID, year, month).
		Preload("ProjectMember").
		Preload("ProjectMember.Member").
		Find(&attendances).Error
	return attendances, err
}

// MonthlySummary 案件の月ごと出勤サマリ
type MonthlySummary struct {
	Year       string  `json:"year"`
	Month      string  `json:"month"`
	Members    int     `json:"members"`
	TotalHours float64 `json:"total_hours"`
	Amount     int64   `json:"amount"`
}

// SummaryByProject 案件の月別出勤集計を取得する
func (r *AttendanceRepository) SummaryByProject(ctx context.Context, projectID string) ([]MonthlySummary, error) {
	var results []MonthlySummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.year,
		       a.month,
		       COUNT(*) AS members,
		       COALESCE(SUM(a.total_hours), 0) AS total_hours,
		       COALESCE(SUM(a.price), 0) AS amount
		  FROM eb_memberattendance a
		  JOIN eb_projectmember pm ON pm.id = a.project_member_id
		 WHERE pm.project_id = ?
		 GROUP BY a.year, a.month
		 ORDER BY a.year DESC, a.month DESC
	`, projectID).Scan(&results).Error
	return results, err
}

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// ListByProjectMembersYM 指定年月・指定メンバーの精算一覧を取得する
func (r *ExpenseRepository) ListByProjectMembersYM(ctx context.Context, projectMemberIDs []string, year, month string) ([]entity.MemberExpense, error) {
	var expenses []entity.MemberExpense
	if len(projectMemberIDs) == 0 {
		return expenses, nil
	}
	err := r.db.WithContext(ctx).
		Preload("ProjectMember").
		Preload("ProjectMember.Member").
		Where("project_member_id IN ? AND year = ? AND month = ?", projectMemberIDs, year, month).
		Order("category_id ASC").
		Find(&expenses).Error
	return expenses, err
}

// Create 精算項目を登録する
func (r *ExpenseRepository) Create(ctx context.Context, expense *entity.MemberExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}
