package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/mail/entity"
)

type MailRepository struct {
	db *gorm.DB
}

func NewMailRepository(db *gorm.DB) *MailRepository {
	return &MailRepository{db: db}
}

// ListGroupsByCode 指定コードのメールグループを取得する。
// ちょうど1件であることの検証は呼び出し側が行う。
func (r *MailRepository) ListGroupsByCode(ctx context.Context, code string) ([]entity.MailGroup, error) {
	var groups []entity.MailGroup
	err := r.db.WithContext(ctx).
		Preload("Template").
		Preload("Footer").
		Preload("CcList", "is_deleted = false").
		Where("code = ? AND is_deleted = false", code).
		Find(&groups).Error
	return groups, err
}

// CreateLog 送信履歴を登録する
func (r *MailRepository) CreateLog(ctx context.Context, log *entity.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
