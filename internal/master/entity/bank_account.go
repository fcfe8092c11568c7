package entity

import "time"

// CompanyBankAccount 自社の振込先口座。請求書の「お振込銀行口座」欄に出力する。
type CompanyBankAccount struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	BankName      string    `json:"bank_name" gorm:"size:30;not null"`
	BranchNo      string    `json:"branch_no" gorm:"size:3;not null"`
	BranchName    string    `json:"branch_name" gorm:"size:20;not null"`
	AccountType   string    `json:"account_type" gorm:"size:1;default:'1'"` // 1:普通 2:当座
	AccountNumber string    `json:"account_number" gorm:"size:7;not null"`
	AccountHolder string    `json:"account_holder" gorm:"size:30;not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CompanyBankAccount) TableName() string {
	return "eb_companybankinfo"
}

// AccountTypeName 口座種別の表示名
func (a *CompanyBankAccount) AccountTypeName() string {
	if a.AccountType == "2" {
		return "当座"
	}
	return "普通"
}
