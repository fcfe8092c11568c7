package entity

import "time"

// Attachment 生成した帳票等の添付ファイル。実体はオブジェクトストレージに置き、
// UUID で参照する。
type Attachment struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	UUID       string     `json:"uuid" gorm:"size:36;not null;uniqueIndex"`
	Name       string     `json:"name" gorm:"size:256;not null"` // 元のファイル名
	ObjectPath string     `json:"object_path" gorm:"size:512;not null"`
	Size       int64      `json:"size" gorm:"default:0"`
	IsDeleted  bool       `json:"is_deleted" gorm:"default:false"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Attachment) TableName() string {
	return "eb_attachment"
}
