package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/project/entity"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// FindByProjectOrderYM 請求書を取得する。存在しない場合は nil。
func (r *RequestRepository) FindByProjectOrderYM(ctx context.Context, projectID, clientOrderID, year, month string) (*entity.ProjectRequest, error) {
	var request entity.ProjectRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND client_order_id = ? AND year = ? AND month = ?", projectID, clientOrderID, year, month).
		First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetWithSnapshot 請求書をスナップショット込みで取得する
func (r *RequestRepository) GetWithSnapshot(ctx context.Context, id string) (*entity.ProjectRequest, error) {
	var request entity.ProjectRequest
	err := r.db.WithContext(ctx).
		Preload("Heading").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("eb_projectrequestdetail.no ASC")
		}).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// MaxRequestNoByPrefix 指定プレフィックス（YYMM）で始まる請求番号の最大値を取得する。
// 1件もない場合は空文字列。
func (r *RequestRepository) MaxRequestNoByPrefix(ctx context.Context, prefix string) (string, error) {
	var maxNo *string
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectRequest{}).
		Where("request_no LIKE ?", prefix+"%").
		Select("MAX(request_no)").
		Scan(&maxNo).Error
	if err != nil {
		return "", err
	}
	if maxNo == nil {
		return "", nil
	}
	return *maxNo, nil
}

// SaveWithSnapshot 請求書本体とスナップショットを1トランザクションで保存する。
// 既存の見出し・明細は削除して作り直す。途中で失敗した場合は全体をロールバックする。
func (r *RequestRepository) SaveWithSnapshot(ctx context.Context, request *entity.ProjectRequest, heading *entity.ProjectRequestHeading, details []entity.ProjectRequestDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(request).Error; err != nil {
			return fmt.Errorf("failed to save request: %w", err)
		}
		if err := tx.Where("request_id = ?", request.ID).Delete(&entity.ProjectRequestHeading{}).Error; err != nil {
			return fmt.Errorf("failed to delete old heading: %w", err)
		}
		if err := tx.Where("request_id = ?", request.ID).Delete(&entity.ProjectRequestDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete old details: %w", err)
		}
		heading.RequestID = request.ID
		if err := tx.Create(heading).Error; err != nil {
			return fmt.Errorf("failed to create heading: %w", err)
		}
		for i := range details {
			details[i].RequestID = request.ID
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return fmt.Errorf("failed to create details: %w", err)
			}
		}
		return nil
	})
}
