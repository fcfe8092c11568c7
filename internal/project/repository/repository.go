package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/project/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/protect"
)

// Repositories 案件系リポジトリ集合
type Repositories struct {
	Client        *ClientRepository
	Project       *ProjectRepository
	ProjectMember *ProjectMemberRepository
	Attendance    *AttendanceRepository
	Expense       *ExpenseRepository
	ClientOrder   *ClientOrderRepository
	Request       *RequestRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Client:        NewClientRepository(db),
		Project:       NewProjectRepository(db),
		ProjectMember: NewProjectMemberRepository(db),
		Attendance:    NewAttendanceRepository(db),
		Expense:       NewExpenseRepository(db),
		ClientOrder:   NewClientOrderRepository(db),
		Request:       NewRequestRepository(db),
	}
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindByID 取引先を取得する
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// List 取引先一覧を取得する
func (r *ClientRepository) List(ctx context.Context) ([]entity.Client, error) {
	var clients []entity.Client
	err := r.db.WithContext(ctx).
		Where("is_deleted = false").
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

// SoftDelete 取引先を論理削除する。参照が残っている場合は削除できない。
func (r *ClientRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := protect.Check(ctx, tx, "client", id); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entity.Client{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
	})
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID 案件を取得する（取引先も合わせて読み込む）
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&project, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List 案件一覧を取得する
func (r *ProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("is_deleted = false").
		Order("name ASC").
		Find(&projects).Error
	return projects, err
}

// SoftDelete 案件を論理削除する。参照が残っている場合は削除できない。
func (r *ProjectRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := protect.Check(ctx, tx, "project", id); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entity.Project{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
	})
}
