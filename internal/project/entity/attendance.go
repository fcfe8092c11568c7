package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberAttendance 月別出勤情報。(project_member, year, month) で一意。
type MemberAttendance struct {
	ID              string          `json:"id" gorm:"primaryKey;size:32"`
	ProjectMemberID string          `json:"project_member_id" gorm:"size:32;not null;uniqueIndex:uq_attendance_pm_ym"`
	Year            string          `json:"year" gorm:"size:4;not null;uniqueIndex:uq_attendance_pm_ym"`
	Month           string          `json:"month" gorm:"size:2;not null;uniqueIndex:uq_attendance_pm_ym"`
	TotalHours      decimal.Decimal `json:"total_hours" gorm:"type:decimal(5,2);default:0"`
	ExtraHours      decimal.Decimal `json:"extra_hours" gorm:"type:decimal(5,2);default:0"` // 符号付き：正は超過、負は不足
	Rate            decimal.Decimal `json:"rate" gorm:"type:decimal(5,2);default:1"`
	Price           int64           `json:"price" gorm:"default:0"` // 計算済みの請求金額（確定値）
	Comment         string          `json:"comment,omitempty" gorm:"size:200"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	ProjectMember *ProjectMember `json:"project_member,omitempty" gorm:"foreignKey:ProjectMemberID"`
}

func (MemberAttendance) TableName() string {
	return "eb_memberattendance"
}

// MemberExpense 精算項目。(project_member, year, month, category) ごとの金額。
type MemberExpense struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectMemberID string    `json:"project_member_id" gorm:"size:32;not null;index"`
	Year            string    `json:"year" gorm:"size:4;not null"`
	Month           string    `json:"month" gorm:"size:2;not null"`
	CategoryID      string    `json:"category_id" gorm:"size:32;not null"`
	Price           int64     `json:"price" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	ProjectMember *ProjectMember `json:"project_member,omitempty" gorm:"foreignKey:ProjectMemberID"`
}

func (MemberExpense) TableName() string {
	return "eb_memberexpenses"
}
