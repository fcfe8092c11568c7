package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/member/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/protect"
)

// Repositories 要員系リポジトリ集合
type Repositories struct {
	Member      *MemberRepository
	Salesperson *SalespersonRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Member:      NewMemberRepository(db),
		Salesperson: NewSalespersonRepository(db),
	}
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// FindByID 要員を取得する
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).
		Preload("Organization").
		First(&member, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List 要員一覧を取得する
func (r *MemberRepository) List(ctx context.Context) ([]entity.Member, error) {
	var members []entity.Member
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("code ASC").
		Find(&members).Error
	return members, err
}

// SoftDelete 要員を論理削除する。アサイン・ＢＰ契約が残っている場合は削除できない。
func (r *MemberRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := protect.Check(ctx, tx, "member", id); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entity.Member{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
	})
}

type SalespersonRepository struct {
	db *gorm.DB
}

func NewSalespersonRepository(db *gorm.DB) *SalespersonRepository {
	return &SalespersonRepository{db: db}
}

// FindByID 営業担当者を取得する
func (r *SalespersonRepository) FindByID(ctx context.Context, id string) (*entity.Salesperson, error) {
	var salesperson entity.Salesperson
	err := r.db.WithContext(ctx).First(&salesperson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &salesperson, nil
}

// FindForMemberAsOf 指定日時点の要員の営業担当を取得する。
// 割当がない場合は nil を返す。
func (r *SalespersonRepository) FindForMemberAsOf(ctx context.Context, memberID string, date time.Time) (*entity.Salesperson, error) {
	var assignment entity.MemberSalesperson
	err := r.db.WithContext(ctx).
		Preload("Salesperson").
		Where("member_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", memberID, date, date).
		Order("start_date DESC").
		First(&assignment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return assignment.Salesperson, nil
}
