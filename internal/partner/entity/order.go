package entity

import (
	"time"

	"github.com/shopspring/decimal"

	projectentity "github.com/YangWanjun/ebusiness/internal/project/entity"
)

// BpMemberOrder ＢＰ注文書。[year/month, end_year/end_month] の範囲（両端含む）を
// カバーし、開始月の (project_member, year, month) で一意。
type BpMemberOrder struct {
	ID              string     `json:"id" gorm:"primaryKey;size:32"`
	PartnerID       string     `json:"partner_id" gorm:"size:32;not null;index"`
	ProjectMemberID string     `json:"project_member_id" gorm:"size:32;not null;uniqueIndex:uq_bp_order_pm_ym"`
	Year            string     `json:"year" gorm:"size:4;not null;uniqueIndex:uq_bp_order_pm_ym"`
	Month           string     `json:"month" gorm:"size:2;not null;uniqueIndex:uq_bp_order_pm_ym"`
	EndYear         string     `json:"end_year" gorm:"size:4;not null"`
	EndMonth        string     `json:"end_month" gorm:"size:2;not null"`
	OrderNo         string     `json:"order_no" gorm:"size:14;not null;uniqueIndex"`
	SalespersonID   *string    `json:"salesperson_id,omitempty" gorm:"size:32"`
	Filename        string     `json:"filename,omitempty" gorm:"size:100"` // 注文書
	FileUUID        string     `json:"file_uuid,omitempty" gorm:"size:36"`
	FilenameRequest string     `json:"filename_request,omitempty" gorm:"size:100"` // 注文請書
	FileRequestUUID string     `json:"file_request_uuid,omitempty" gorm:"size:36"`
	IsSent          bool       `json:"is_sent" gorm:"default:false"`
	CreatedUserID   string     `json:"created_user_id,omitempty" gorm:"size:32"`
	UpdatedUserID   string     `json:"updated_user_id,omitempty" gorm:"size:32"`
	IsDeleted       bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Partner       *Partner                     `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	ProjectMember *projectentity.ProjectMember `json:"project_member,omitempty" gorm:"foreignKey:ProjectMemberID"`
	Heading       *BpMemberOrderHeading        `json:"heading,omitempty" gorm:"foreignKey:OrderID"`
}

func (BpMemberOrder) TableName() string {
	return "eb_bpmemberorder"
}

// BpMemberOrderHeading ＢＰ注文書の見出しスナップショット。生成時点の計算結果を
// 凍結する。再生成時は削除して作り直す。
type BpMemberOrderHeading struct {
	ID                       string          `json:"id" gorm:"primaryKey;size:32"`
	OrderID                  string          `json:"order_id" gorm:"size:32;not null;uniqueIndex"`
	PublishDate              time.Time       `json:"publish_date" gorm:"type:date"`
	PartnerName              string          `json:"partner_name" gorm:"size:30"`
	PartnerPostCode          string          `json:"partner_post_code,omitempty" gorm:"size:8"`
	PartnerAddress           string          `json:"partner_address,omitempty" gorm:"size:200"`
	PartnerTel               string          `json:"partner_tel,omitempty" gorm:"size:15"`
	PartnerFax               string          `json:"partner_fax,omitempty" gorm:"size:15"`
	CompanyName              string          `json:"company_name" gorm:"size:30"`
	CompanyPostCode          string          `json:"company_post_code,omitempty" gorm:"size:8"`
	CompanyAddress           string          `json:"company_address,omitempty" gorm:"size:200"`
	CompanyTel               string          `json:"company_tel,omitempty" gorm:"size:15"`
	MemberName               string          `json:"member_name" gorm:"size:30"`
	ProjectName              string          `json:"project_name,omitempty" gorm:"size:50"`
	StartDate                time.Time       `json:"start_date" gorm:"type:date"`
	EndDate                  time.Time       `json:"end_date" gorm:"type:date"`
	PaymentDeadline          time.Time       `json:"payment_deadline" gorm:"type:date"` // 支払期限
	Interval                 int             `json:"interval" gorm:"default:1"`         // 対象月数
	IsHourlyPay              bool            `json:"is_hourly_pay" gorm:"default:false"`
	IsFixedCost              bool            `json:"is_fixed_cost" gorm:"default:false"`
	IsShowFormula            bool            `json:"is_show_formula" gorm:"default:true"`
	AllowanceBase            int64           `json:"allowance_base" gorm:"default:0"`
	AllowanceBaseMemo        string          `json:"allowance_base_memo,omitempty" gorm:"size:255"`
	AllowanceTimeMin         decimal.Decimal `json:"allowance_time_min" gorm:"type:decimal(5,2);default:0"`
	AllowanceTimeMax         decimal.Decimal `json:"allowance_time_max" gorm:"type:decimal(5,2);default:0"`
	AllowanceTimeMemo        string          `json:"allowance_time_memo,omitempty" gorm:"size:255"`
	AllowanceOvertime        int64           `json:"allowance_overtime" gorm:"default:0"`
	AllowanceOvertimeMemo    string          `json:"allowance_overtime_memo,omitempty" gorm:"size:255"`
	AllowanceAbsenteeism     int64           `json:"allowance_absenteeism" gorm:"default:0"`
	AllowanceAbsenteeismMemo string          `json:"allowance_absenteeism_memo,omitempty" gorm:"size:255"`
	AllowanceOther           int64           `json:"allowance_other" gorm:"default:0"`
	AllowanceOtherMemo       string          `json:"allowance_other_memo,omitempty" gorm:"size:255"`
	CalculateTypeComment     string          `json:"calculate_type_comment,omitempty" gorm:"size:255"`
	Comment                  string          `json:"comment,omitempty" gorm:"size:255"`
	CreatedAt                time.Time       `json:"created_at"`
}

func (BpMemberOrderHeading) TableName() string {
	return "eb_bpmemberorderheading"
}
