package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// ListEffective 指定日に有効な契約を取得する。
// ちょうど1件であることの検証は呼び出し側（サービス層）が行う。
func (r *ContractRepository) ListEffective(ctx context.Context, partnerID, memberID string, date time.Time) ([]entity.BpContract, error) {
	var contracts []entity.BpContract
	err := r.db.WithContext(ctx).
		Where("partner_id = ? AND member_id = ? AND is_deleted = false", partnerID, memberID).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&contracts).Error
	return contracts, err
}

// FindEffectiveByMember 要員IDだけで指定日に有効な契約を取得する。
// ＢＰ注文書生成時の協力会社の特定に使う。
func (r *ContractRepository) FindEffectiveByMember(ctx context.Context, memberID string, date time.Time) ([]entity.BpContract, error) {
	var contracts []entity.BpContract
	err := r.db.WithContext(ctx).
		Preload("Partner").
		Where("member_id = ? AND is_deleted = false", memberID).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&contracts).Error
	return contracts, err
}
