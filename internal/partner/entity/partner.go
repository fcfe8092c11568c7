package entity

import "time"

// Partner 協力会社（ＢＰ供給元）
type Partner struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	Name          string     `json:"name" gorm:"size:30;not null;uniqueIndex"`
	Kana          string     `json:"kana,omitempty" gorm:"size:30"`
	President     string     `json:"president,omitempty" gorm:"size:30"`
	PostCode      string     `json:"post_code,omitempty" gorm:"size:8"`
	Address1      string     `json:"address1,omitempty" gorm:"size:200"`
	Address2      string     `json:"address2,omitempty" gorm:"size:200"`
	Tel           string     `json:"tel,omitempty" gorm:"size:15"`
	Fax           string     `json:"fax,omitempty" gorm:"size:15"`
	EmployeeCount *int       `json:"employee_count,omitempty"`
	SalesAmount   *int64     `json:"sales_amount,omitempty"`
	PaymentMonth  string     `json:"payment_month" gorm:"size:1;default:'1'"` // 支払いサイト
	PaymentDay    string     `json:"payment_day" gorm:"size:2;default:'99'"`  // 支払日（99:月末）
	Middleman     string     `json:"middleman,omitempty" gorm:"size:30"`      // 連絡窓口担当者
	Comment       string     `json:"comment,omitempty" gorm:"size:250"`
	IsDeleted     bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Partner) TableName() string {
	return "eb_subcontractor"
}

// Address 住所１と住所２を連結した表示用住所
func (p *Partner) Address() string {
	return p.Address1 + p.Address2
}

// PartnerEmployee ＢＰ会社の社員（窓口・担当者）
type PartnerEmployee struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	PartnerID  string     `json:"partner_id" gorm:"size:32;not null;index"`
	Name       string     `json:"name" gorm:"size:30;not null"`
	Email      string     `json:"email,omitempty" gorm:"size:100"`
	Phone      string     `json:"phone,omitempty" gorm:"size:11"`
	MemberType string     `json:"member_type,omitempty" gorm:"size:2"` // 役割担当
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Partner *Partner `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
}

func (PartnerEmployee) TableName() string {
	return "eb_subcontractormember"
}

// PartnerPayNotifyRecipient 支払通知書メールの宛先設定
type PartnerPayNotifyRecipient struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	PartnerID  string     `json:"partner_id" gorm:"size:32;not null;index"`
	EmployeeID string     `json:"employee_id" gorm:"size:32;not null"`
	IsCc       bool       `json:"is_cc" gorm:"default:false"` // ＣＣに入れて送信
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Employee *PartnerEmployee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (PartnerPayNotifyRecipient) TableName() string {
	return "eb_subcontractorrequestrecipient"
}

// PartnerBankAccount 協力会社の銀行口座
type PartnerBankAccount struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	PartnerID     string     `json:"partner_id" gorm:"size:32;not null;index"`
	BankCode      string     `json:"bank_code" gorm:"size:4;not null"`
	BranchNo      string     `json:"branch_no" gorm:"size:3;not null"`
	BranchName    string     `json:"branch_name" gorm:"size:20"`
	AccountType   string     `json:"account_type" gorm:"size:1;default:'1'"`
	AccountNumber string     `json:"account_number" gorm:"size:7;not null"`
	AccountHolder string     `json:"account_holder" gorm:"size:30"`
	IsDeleted     bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (PartnerBankAccount) TableName() string {
	return "eb_subcontractorbankinfo"
}
