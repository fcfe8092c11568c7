package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientOrder お客様からの注文書。複数案件をまとめて受注する場合がある。
type ClientOrder struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	ClientID      string     `json:"client_id" gorm:"size:32;not null;index"`
	Name          string     `json:"name" gorm:"size:50;not null"` // 契約件名
	OrderNo       string     `json:"order_no" gorm:"size:20;not null"`
	OrderDate     *time.Time `json:"order_date,omitempty" gorm:"type:date"`
	StartDate     time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate       time.Time  `json:"end_date" gorm:"type:date;not null"`
	BankAccountID *string    `json:"bank_account_id,omitempty" gorm:"size:32"` // 自社の振込先口座
	IsDeleted     bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Client   *Client              `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Projects []ClientOrderProject `json:"projects,omitempty" gorm:"foreignKey:ClientOrderID"`
}

func (ClientOrder) TableName() string {
	return "eb_clientorder"
}

// ClientOrderProject 注文書と案件の関連
type ClientOrderProject struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	ClientOrderID string    `json:"client_order_id" gorm:"size:32;not null;index"`
	ProjectID     string    `json:"project_id" gorm:"size:32;not null;index"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (ClientOrderProject) TableName() string {
	return "eb_clientorder_projects"
}

// ProjectRequest 請求書。(project, client_order, year, month) ごとに1件、
// request_no は年月単位の連番。
type ProjectRequest struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID      string    `json:"project_id" gorm:"size:32;not null;index"`
	ClientOrderID  string    `json:"client_order_id" gorm:"size:32;not null;index"`
	Year           string    `json:"year" gorm:"size:4;not null"`
	Month          string    `json:"month" gorm:"size:2;not null"`
	RequestNo      string    `json:"request_no" gorm:"size:10;not null;uniqueIndex"`
	Amount         int64     `json:"amount" gorm:"default:0"`          // 総計（税・精算込み）
	TurnoverAmount int64     `json:"turnover_amount" gorm:"default:0"` // 小計（税抜き）
	TaxAmount      int64     `json:"tax_amount" gorm:"default:0"`
	ExpensesAmount int64     `json:"expenses_amount" gorm:"default:0"`
	Filename       string    `json:"filename,omitempty" gorm:"size:100"`
	FileUUID       string    `json:"file_uuid,omitempty" gorm:"size:36"` // 添付ストレージのID
	CreatedUserID  string    `json:"created_user_id,omitempty" gorm:"size:32"`
	UpdatedUserID  string    `json:"updated_user_id,omitempty" gorm:"size:32"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Project     *Project               `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	ClientOrder *ClientOrder           `json:"client_order,omitempty" gorm:"foreignKey:ClientOrderID"`
	Heading     *ProjectRequestHeading `json:"heading,omitempty" gorm:"foreignKey:RequestID"`
	Details     []ProjectRequestDetail `json:"details,omitempty" gorm:"foreignKey:RequestID"`
}

func (ProjectRequest) TableName() string {
	return "eb_projectrequest"
}

// ProjectRequestHeading 請求書の見出しスナップショット。生成時点の値を凍結し、
// 後からの契約・出勤の変更に影響されない。再生成時は削除して作り直す。
type ProjectRequestHeading struct {
	ID                string     `json:"id" gorm:"primaryKey;size:32"`
	RequestID         string     `json:"request_id" gorm:"size:32;not null;uniqueIndex"`
	IsLump            bool       `json:"is_lump" gorm:"default:false"`
	LumpComment       string     `json:"lump_comment,omitempty" gorm:"size:200"`
	IsHourlyPay       bool       `json:"is_hourly_pay" gorm:"default:false"`
	ClientName        string     `json:"client_name" gorm:"size:30"`
	ClientPostCode    string     `json:"client_post_code,omitempty" gorm:"size:8"`
	ClientAddress     string     `json:"client_address,omitempty" gorm:"size:200"`
	ClientTel         string     `json:"client_tel,omitempty" gorm:"size:15"`
	ClientFax         string     `json:"client_fax,omitempty" gorm:"size:15"`
	CompanyName       string     `json:"company_name" gorm:"size:30"`
	CompanyPostCode   string     `json:"company_post_code,omitempty" gorm:"size:8"`
	CompanyAddress    string     `json:"company_address,omitempty" gorm:"size:200"`
	CompanyTel        string     `json:"company_tel,omitempty" gorm:"size:15"`
	CompanyMaster     string     `json:"company_master,omitempty" gorm:"size:30"` // 代表取締役
	PublishDate       time.Time  `json:"publish_date" gorm:"type:date"`
	WorkPeriodStart   time.Time  `json:"work_period_start" gorm:"type:date"`
	WorkPeriodEnd     time.Time  `json:"work_period_end" gorm:"type:date"`
	RemitDate         time.Time  `json:"remit_date" gorm:"type:date"` // お支払い期限
	OrderNo           string     `json:"order_no,omitempty" gorm:"size:20"`
	OrderDate         *time.Time `json:"order_date,omitempty" gorm:"type:date"`
	ContractName      string     `json:"contract_name,omitempty" gorm:"size:50"`
	BankName          string     `json:"bank_name,omitempty" gorm:"size:30"`
	BranchNo          string     `json:"branch_no,omitempty" gorm:"size:3"`
	BranchName        string     `json:"branch_name,omitempty" gorm:"size:20"`
	AccountType       string     `json:"account_type,omitempty" gorm:"size:4"`
	AccountNumber     string     `json:"account_number,omitempty" gorm:"size:7"`
	BankAccountHolder string     `json:"bank_account_holder,omitempty" gorm:"size:30"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (ProjectRequestHeading) TableName() string {
	return "eb_projectrequestheading"
}

// ProjectRequestDetail 請求書の明細スナップショット。請求メンバー1人につき1行。
type ProjectRequestDetail struct {
	ID              string          `json:"id" gorm:"primaryKey;size:32"`
	RequestID       string          `json:"request_id" gorm:"size:32;not null;index"`
	ProjectMemberID *string         `json:"project_member_id,omitempty" gorm:"size:32"` // 一括案件の場合は NULL
	No              int             `json:"no" gorm:"default:1"`
	ItemName        string          `json:"item_name" gorm:"size:50"`
	Price           int64           `json:"price" gorm:"default:0"` // 基本金額
	MinHours        decimal.Decimal `json:"min_hours" gorm:"type:decimal(5,2);default:0"`
	MaxHours        decimal.Decimal `json:"max_hours" gorm:"type:decimal(5,2);default:0"`
	TotalHours      decimal.Decimal `json:"total_hours" gorm:"type:decimal(5,2);default:0"`
	ExtraHours      decimal.Decimal `json:"extra_hours" gorm:"type:decimal(5,2);default:0"`
	Rate            decimal.Decimal `json:"rate" gorm:"type:decimal(5,2);default:1"`
	PlusPerHour     int64           `json:"plus_per_hour" gorm:"default:0"`
	MinusPerHour    int64           `json:"minus_per_hour" gorm:"default:0"`
	ExtraAmount     int64           `json:"extra_amount" gorm:"default:0"` // 増減金額
	TotalPrice      int64           `json:"total_price" gorm:"default:0"`  // 明細合計
	Salary          int64           `json:"salary" gorm:"default:0"`       // 給与（参考値、取得失敗時は0）
	Cost            int64           `json:"cost" gorm:"default:0"`         // コスト（参考値、取得失敗時は0）
	Comment         string          `json:"comment,omitempty" gorm:"size:200"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (ProjectRequestDetail) TableName() string {
	return "eb_projectrequestdetail"
}
