package entity

import "time"

// Bank 金融機関マスタ
type Bank struct {
	Code      string    `json:"code" gorm:"primaryKey;size:4"`
	Name      string    `json:"name" gorm:"size:30;not null"`
	Kana      string    `json:"kana,omitempty" gorm:"size:30"` // 半角カナ、左詰め
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bank) TableName() string {
	return "mst_bank"
}

// BankBranch 銀行支店マスタ
type BankBranch struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	BankCode   string    `json:"bank_code" gorm:"size:4;not null;index"`
	BranchNo   string    `json:"branch_no" gorm:"size:3;not null"`
	BranchName string    `json:"branch_name" gorm:"size:20;not null"`
	BranchKana string    `json:"branch_kana,omitempty" gorm:"size:40"`
	Address    string    `json:"address,omitempty" gorm:"size:200"`
	Tel        string    `json:"tel,omitempty" gorm:"size:15"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Bank *Bank `json:"bank,omitempty" gorm:"foreignKey:BankCode;references:Code"`
}

func (BankBranch) TableName() string {
	return "mst_bank_branch"
}
