package entity

import "time"

// メールグループコード
const (
	MailGroupPartnerOrder = "0400" // ＢＰ注文書の送付
)

// MailTemplate メールテンプレート。本文は text/template 形式。
type MailTemplate struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	MailTitle   string     `json:"mail_title" gorm:"size:50;not null;uniqueIndex"`
	MailBody    string     `json:"mail_body,omitempty" gorm:"type:text"`
	PassTitle   string     `json:"pass_title,omitempty" gorm:"size:50"` // 未設定の場合は送信メールのタイトルを使う
	PassBody    string     `json:"pass_body,omitempty" gorm:"type:text"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (MailTemplate) TableName() string {
	return "eb_mailtemplate"
}

// MailGroup メール送信設定（差出人・テンプレート・ＣＣ）の単位
type MailGroup struct {
	ID                string     `json:"id" gorm:"primaryKey;size:32"`
	Code              string     `json:"code" gorm:"size:4;not null;uniqueIndex"`
	Name              string     `json:"name" gorm:"size:30;not null"`
	Title             string     `json:"title,omitempty" gorm:"size:50"`
	Sender            string     `json:"sender" gorm:"size:100;not null"`
	SenderDisplayName string     `json:"sender_display_name,omitempty" gorm:"size:50"`
	TemplateID        *string    `json:"template_id,omitempty" gorm:"size:32"`
	FooterID          *string    `json:"footer_id,omitempty" gorm:"size:32"`
	IsDeleted         bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relations
	Template *MailTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Footer   *MailTemplate `json:"footer,omitempty" gorm:"foreignKey:FooterID"`
	CcList   []MailCcList  `json:"cc_list,omitempty" gorm:"foreignKey:GroupID"`
}

func (MailGroup) TableName() string {
	return "eb_mailgroup"
}

// FullSender 表示名付きの差出人
func (g *MailGroup) FullSender() string {
	if g.SenderDisplayName != "" {
		return g.SenderDisplayName + "<" + g.Sender + ">"
	}
	return g.Sender
}

// MailCcList メールグループのＣＣ／ＢＣＣ先
type MailCcList struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	GroupID   string     `json:"group_id" gorm:"size:32;not null;index"`
	Email     string     `json:"email" gorm:"size:100;not null"`
	IsBcc     bool       `json:"is_bcc" gorm:"default:false"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (MailCcList) TableName() string {
	return "eb_mailcclist"
}

// EmailLog メール送信履歴
type EmailLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	ActionTime time.Time `json:"action_time" gorm:"not null;index"`
	UserID     string    `json:"user_id,omitempty" gorm:"size:32"`
	Sender     string    `json:"sender" gorm:"size:100;not null"`
	Recipient  string    `json:"recipient" gorm:"size:1000;not null"`
	Cc         string    `json:"cc,omitempty" gorm:"size:1000"`
	Bcc        string    `json:"bcc,omitempty" gorm:"size:1000"`
	Title      string    `json:"title" gorm:"size:50;not null"`
	Body       string    `json:"body" gorm:"type:text"`
	Attachment string    `json:"attachment,omitempty" gorm:"size:255"`
}

func (EmailLog) TableName() string {
	return "eb_email_log"
}
