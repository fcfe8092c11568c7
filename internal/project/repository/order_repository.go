package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/project/entity"
)

type ClientOrderRepository struct {
	db *gorm.DB
}

func NewClientOrderRepository(db *gorm.DB) *ClientOrderRepository {
	return &ClientOrderRepository{db: db}
}

// FindByID 注文書を取得する（関連案件も合わせて読み込む）
func (r *ClientOrderRepository) FindByID(ctx context.Context, id string) (*entity.ClientOrder, error) {
	var order entity.ClientOrder
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Projects").
		First(&order, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForProjectPeriod 案件の対象期間にかかる注文書を取得する。
// 複数件返った場合は請求対象が曖昧なので呼び出し側でエラーとする。
func (r *ClientOrderRepository) ListForProjectPeriod(ctx context.Context, projectID string, periodStart, periodEnd time.Time) ([]entity.ClientOrder, error) {
	var orders []entity.ClientOrder
	err := r.db.WithContext(ctx).
		Joins("JOIN eb_clientorder_projects cop ON cop.client_order_id = eb_clientorder.id").
		Where("cop.project_id = ? AND eb_clientorder.is_deleted = false", projectID).
		Where("eb_clientorder.start_date <= ? AND eb_clientorder.end_date >= ?", periodEnd, periodStart).
		Preload("Projects").
		Find(&orders).Error
	return orders, err
}

// ProjectIDs 注文書がカバーする案件IDの一覧
func (r *ClientOrderRepository) ProjectIDs(ctx context.Context, orderID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.ClientOrderProject{}).
		Where("client_order_id = ?", orderID).
		Pluck("project_id", &ids).Error
	return ids, err
}
