package entity

import (
	"time"

	"github.com/shopspring/decimal"

	memberentity "github.com/YangWanjun/ebusiness/internal/member/entity"
)

// ProjectMember ステータス
const (
	ProjectMemberStatusProposed = "0" // 提案中（請求対象外）
	ProjectMemberStatusWorking  = "1" // 稼働中
	ProjectMemberStatusFinished = "2" // 終了
)

// Project 案件
type Project struct {
	ID             string          `json:"id" gorm:"primaryKey;size:32"`
	Name           string          `json:"name" gorm:"size:50;not null"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	ClientID       *string         `json:"client_id,omitempty" gorm:"size:32;index"`
	ManagerID      *string         `json:"manager_id,omitempty" gorm:"size:32"` // 案件責任者（お客様側）
	ContactID      *string         `json:"contact_id,omitempty" gorm:"size:32"` // 案件連絡者（お客様側）
	StartDate      *time.Time      `json:"start_date,omitempty" gorm:"type:date"`
	EndDate        *time.Time      `json:"end_date,omitempty" gorm:"type:date"`
	Address        string          `json:"address,omitempty" gorm:"size:255"` // 作業場所
	NearestStation string          `json:"nearest_station,omitempty" gorm:"size:15"`
	Status         int             `json:"status" gorm:"default:1"`
	MinHours       decimal.Decimal `json:"min_hours" gorm:"type:decimal(5,2);default:160"` // メンバー登録時の既定値、計算には使わない
	MaxHours       decimal.Decimal `json:"max_hours" gorm:"type:decimal(5,2);default:180"` // 同上
	IsLump         bool            `json:"is_lump" gorm:"default:false"`
	LumpAmount     int64           `json:"lump_amount" gorm:"default:0"`
	LumpComment    string          `json:"lump_comment,omitempty" gorm:"size:200"` // 請求書の備考欄に出力
	IsHourlyPay    bool            `json:"is_hourly_pay" gorm:"default:false"`     // 時給案件：単価・増減を無視して時給×総時間
	IsReserve      bool            `json:"is_reserve" gorm:"default:false"`        // 待機案件（非稼働メンバーのコスト算出用）
	IsDeleted      bool            `json:"is_deleted" gorm:"default:false"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Client  *Client       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Manager *ClientMember `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Contact *ClientMember `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
}

func (Project) TableName() string {
	return "eb_project"
}

// ProjectMember 案件への要員アサイン
type ProjectMember struct {
	ID           string          `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string          `json:"project_id" gorm:"size:32;not null;index"`
	MemberID     string          `json:"member_id" gorm:"size:32;not null;index"`
	StartDate    *time.Time      `json:"start_date,omitempty" gorm:"type:date"`
	EndDate      *time.Time      `json:"end_date,omitempty" gorm:"type:date"`
	Price        int64           `json:"price" gorm:"default:0"` // 月額単価
	MinHours     decimal.Decimal `json:"min_hours" gorm:"type:decimal(5,2);default:160"`
	MaxHours     decimal.Decimal `json:"max_hours" gorm:"type:decimal(5,2);default:180"`
	PlusPerHour  int64           `json:"plus_per_hour" gorm:"default:0"`  // 増（円）。0 は未設定、単価÷最大時間で算出
	MinusPerHour int64           `json:"minus_per_hour" gorm:"default:0"` // 減（円）。0 は未設定、単価÷基準時間で算出
	HourlyPay    *int64          `json:"hourly_pay,omitempty"`            // 時給。設定時は時給×総時間で計算
	Status       string          `json:"status" gorm:"size:1;default:'1'"`
	Role         string          `json:"role,omitempty" gorm:"size:2;default:'PG'"`
	IsDeleted    bool            `json:"is_deleted" gorm:"default:false"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Project *Project             `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Member  *memberentity.Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}

func (ProjectMember) TableName() string {
	return "eb_projectmember"
}
