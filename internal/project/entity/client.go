package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/YangWanjun/ebusiness/internal/shared/calendar"
)

// Client 取引先（請求先）
type Client struct {
	ID           string          `json:"id" gorm:"primaryKey;size:32"`
	Name         string          `json:"name" gorm:"size:30;not null;uniqueIndex"`
	Kana         string          `json:"kana,omitempty" gorm:"size:30"`
	President    string          `json:"president,omitempty" gorm:"size:30"`
	PostCode     string          `json:"post_code,omitempty" gorm:"size:8"`
	Address1     string          `json:"address1,omitempty" gorm:"size:200"`
	Address2     string          `json:"address2,omitempty" gorm:"size:200"`
	Tel          string          `json:"tel,omitempty" gorm:"size:15"`
	Fax          string          `json:"fax,omitempty" gorm:"size:15"`
	PaymentMonth string          `json:"payment_month" gorm:"size:1;default:'1'"` // 支払いサイト（1:翌月 2:翌々月 …）
	PaymentDay   string          `json:"payment_day" gorm:"size:2;default:'99'"`  // 支払日（99:月末）
	TaxRate      decimal.Decimal `json:"tax_rate" gorm:"type:decimal(3,2);default:0.08"`
	DecimalType  string          `json:"decimal_type" gorm:"size:1;default:'0'"` // 0:切り捨て 1:四捨五入 2:切り上げ
	IsDeleted    bool            `json:"is_deleted" gorm:"default:false"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Client) TableName() string {
	return "eb_client"
}

// Address 住所１と住所２を連結した表示用住所
func (c *Client) Address() string {
	return c.Address1 + c.Address2
}

// PayDate 対象月の初日から支払期限日を求める。
// 支払いサイトの月数を加算し、支払日が 99 の場合は月末、
// それ以外は支払日（月の日数を超える場合は月末に丸める）。
func (c *Client) PayDate(first time.Time) time.Time {
	months, err := strconv.Atoi(c.PaymentMonth)
	if err != nil || months <= 0 {
		months = 1
	}
	d := calendar.AddMonths(first, months)
	if c.PaymentDay == "" || c.PaymentDay == "99" {
		return calendar.LastDayOfMonth(d)
	}
	day, err := strconv.Atoi(c.PaymentDay)
	if err != nil || day <= 0 {
		return calendar.LastDayOfMonth(d)
	}
	last := calendar.LastDayOfMonth(d)
	if day > last.Day() {
		day = last.Day()
	}
	return time.Date(d.Year(), d.Month(), day, 0, 0, 0, 0, d.Location())
}

// ClientMember お客様担当者
type ClientMember struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	ClientID  string     `json:"client_id" gorm:"size:32;not null;index"`
	Name      string     `json:"name" gorm:"size:30;not null"`
	Email     string     `json:"email,omitempty" gorm:"size:100"`
	Phone     string     `json:"phone,omitempty" gorm:"size:11"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (ClientMember) TableName() string {
	return "eb_clientmember"
}
