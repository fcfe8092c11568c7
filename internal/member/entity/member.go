package entity

import "time"

// Organization 組織（事業部・部署・課）
type Organization struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:30;not null"`
	Description string    `json:"description,omitempty" gorm:"size:200"`
	ParentID    *string   `json:"parent_id,omitempty" gorm:"size:32;index"`
	OrgType     string    `json:"org_type" gorm:"size:2;not null"` // 01:事業部 02:部署 03:課
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Parent *Organization `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
}

func (Organization) TableName() string {
	return "eb_organization"
}

// Member 要員（社員またはＢＰ）
type Member struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	Code           string     `json:"code" gorm:"size:30;not null;uniqueIndex"`
	LastName       string     `json:"last_name" gorm:"size:10;not null"`
	FirstName      string     `json:"first_name" gorm:"size:10;not null"`
	LastNameKana   string     `json:"last_name_kana,omitempty" gorm:"size:30"`
	FirstNameKana  string     `json:"first_name_kana,omitempty" gorm:"size:30"`
	Gender         string     `json:"gender,omitempty" gorm:"size:1"` // 1:男 2:女
	Birthday       *time.Time `json:"birthday,omitempty" gorm:"type:date"`
	MemberType     string     `json:"member_type,omitempty" gorm:"size:1"` // 1:正社員 4:ＢＰ
	OrganizationID *string    `json:"organization_id,omitempty" gorm:"size:32;index"`
	JoinDate       *time.Time `json:"join_date,omitempty" gorm:"type:date"`
	LeaveDate      *time.Time `json:"leave_date,omitempty" gorm:"type:date"`
	PayBankCode    *string    `json:"pay_bank_code,omitempty" gorm:"size:4"`
	PayBranchID    *string    `json:"pay_branch_id,omitempty" gorm:"size:32"`
	PayOwner       string     `json:"pay_owner,omitempty" gorm:"size:20"`
	PayOwnerKana   string     `json:"pay_owner_kana,omitempty" gorm:"size:20"`
	PayAccount     string     `json:"pay_account,omitempty" gorm:"size:20"`
	IsRetired      bool       `json:"is_retired" gorm:"default:false"`
	IsDeleted      bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (Member) TableName() string {
	return "eb_member"
}

// FullName 姓と名をスペースで連結した表示名
func (m *Member) FullName() string {
	return m.LastName + " " + m.FirstName
}

// Salesperson 営業担当者。Initial はＢＰ注文書番号の採番に使う。
type Salesperson struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Code      string     `json:"code" gorm:"size:30;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"size:30;not null"`
	Initial   string     `json:"initial,omitempty" gorm:"size:1"` // 未設定の場合採番時は「-」
	Email     string     `json:"email,omitempty" gorm:"size:100"`
	IsRetired bool       `json:"is_retired" gorm:"default:false"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Salesperson) TableName() string {
	return "eb_salesperson"
}

// MemberSalesperson 要員の営業担当の割当期間。EndDate が NULL の場合は継続中。
type MemberSalesperson struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	MemberID      string     `json:"member_id" gorm:"size:32;not null;index"`
	SalespersonID string     `json:"salesperson_id" gorm:"size:32;not null;index"`
	StartDate     time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate       *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Member      *Member      `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Salesperson *Salesperson `json:"salesperson,omitempty" gorm:"foreignKey:SalespersonID"`
}

func (MemberSalesperson) TableName() string {
	return "eb_member_salesperson"
}
