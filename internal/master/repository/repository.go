package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/master/entity"
)

// Repositories マスタ系リポジトリ集合
type Repositories struct {
	Company         *CompanyRepository
	Holiday         *HolidayRepository
	Attachment      *AttachmentRepository
	BankAccount     *BankAccountRepository
	ExpenseCategory *ExpenseCategoryRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Company:         NewCompanyRepository(db),
		Holiday:         NewHolidayRepository(db),
		Attachment:      NewAttachmentRepository(db),
		BankAccount:     NewBankAccountRepository(db),
		ExpenseCategory: NewExpenseCategoryRepository(db),
	}
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Get 自社情報を取得する。1行のみ存在する想定。
func (r *CompanyRepository) Get(ctx context.Context) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListByMonth 指定年月の会社休日を取得する
func (r *HolidayRepository) ListByMonth(ctx context.Context, year, month int) ([]time.Time, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	var holidays []entity.Holiday
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", first, last).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return dates, nil
}

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create 添付ファイルレコードを作成する
func (r *AttachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// FindByUUID UUIDで添付ファイルを取得する（削除済みは除く）
func (r *AttachmentRepository) FindByUUID(ctx context.Context, uuid string) (*entity.Attachment, error) {
	var attachment entity.Attachment
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND is_deleted = false", uuid).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// SoftDelete 添付ファイルを論理削除する
func (r *AttachmentRepository) SoftDelete(ctx context.Context, uuid string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.Attachment{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now}).Error
}

type BankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

// FindByID 自社口座を取得する
func (r *BankAccountRepository) FindByID(ctx context.Context, id string) (*entity.CompanyBankAccount, error) {
	var account entity.CompanyBankAccount
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// First 既定の自社口座（最初の1件）を取得する
func (r *BankAccountRepository) First(ctx context.Context) (*entity.CompanyBankAccount, error) {
	var account entity.CompanyBankAccount
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

type ExpenseCategoryRepository struct {
	db *gorm.DB
}

func NewExpenseCategoryRepository(db *gorm.DB) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{db: db}
}

// MapByID 精算分類を ID → 名称 のマップで取得する
func (r *ExpenseCategoryRepository) MapByID(ctx context.Context) (map[string]string, error) {
	var categories []entity.ExpenseCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Name
	}
	return m, nil
}
