package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID 注文書を取得する
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.BpMemberOrder, error) {
	var order entity.BpMemberOrder
	err := r.db.WithContext(ctx).
		Preload("Heading").
		Preload("Partner").
		First(&order, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindBracketing 対象年月を範囲に含む既存注文書を取得する。存在しない場合は nil。
// year/month はゼロ埋め文字列なので連結すれば辞書順で比較できる。
func (r *OrderRepository) FindBracketing(ctx context.Context, projectMemberID, year, month string) (*entity.BpMemberOrder, error) {
	ym := year + month
	var order entity.BpMemberOrder
	err := r.db.WithContext(ctx).
		Preload("Heading").
		Where("project_member_id = ? AND is_deleted = false", projectMemberID).
		Where("(year || month) <= ? AND (end_year || end_month) >= ?", ym, ym).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// MaxOrderNoByPrefix 指定プレフィックスで始まる注文番号の最大値を取得する。
// 1件もない場合は空文字列。
func (r *OrderRepository) MaxOrderNoByPrefix(ctx context.Context, prefix string) (string, error) {
	var maxNo *string
	err := r.db.WithContext(ctx).
		Model(&entity.BpMemberOrder{}).
		Where("order_no LIKE ?", prefix+"%").
		Select("MAX(order_no)").
		Scan(&maxNo).Error
	if err != nil {
		return "", err
	}
	if maxNo == nil {
		return "", nil
	}
	return *maxNo, nil
}

// SaveWithHeading 注文書本体と見出しスナップショットを1トランザクションで保存する。
// 既存の見出しは削除して作り直す。
func (r *OrderRepository) SaveWithHeading(ctx context.Context, order *entity.BpMemberOrder, heading *entity.BpMemberOrderHeading) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return fmt.Errorf("failed to save bp order: %w", err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&entity.BpMemberOrderHeading{}).Error; err != nil {
			return fmt.Errorf("failed to delete old heading: %w", err)
		}
		heading.OrderID = order.ID
		if err := tx.Create(heading).Error; err != nil {
			return fmt.Errorf("failed to create heading: %w", err)
		}
		return nil
	})
}

// MarkSent 送信済みフラグのみを更新する
func (r *OrderRepository) MarkSent(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.BpMemberOrder{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"is_sent": true, "updated_at": time.Now()}).Error
}
