package entity

import "time"

// Company 自社情報。1行のみ存在する想定。
type Company struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Name      string     `json:"name" gorm:"size:30;not null;uniqueIndex"`
	Kana      string     `json:"kana,omitempty" gorm:"size:30"`
	President string     `json:"president,omitempty" gorm:"size:30"`
	FoundDate *time.Time `json:"found_date,omitempty"`
	Capital   int64      `json:"capital,omitempty" gorm:"default:0"`
	PostCode  string     `json:"post_code,omitempty" gorm:"size:8"`
	Address1  string     `json:"address1,omitempty" gorm:"size:200"`
	Address2  string     `json:"address2,omitempty" gorm:"size:200"`
	Tel       string     `json:"tel,omitempty" gorm:"size:15"`
	Fax       string     `json:"fax,omitempty" gorm:"size:15"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Company) TableName() string {
	return "eb_company"
}

// Address 住所１と住所２を連結した表示用住所
func (c *Company) Address() string {
	return c.Address1 + c.Address2
}
