package entity

import "time"

// Holiday 営業日計算から除外する休日（法定祝日以外の会社休日）
type Holiday struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex"`
	Comment   string    `json:"comment,omitempty" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holiday) TableName() string {
	return "mst_holiday"
}

// ExpenseCategory 精算項目の分類（交通費・宿泊費など）
type ExpenseCategory struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpenseCategory) TableName() string {
	return "mst_expense_category"
}
