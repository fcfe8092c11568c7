package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/protect"
)

// Repositories 協力会社系リポジトリ集合
type Repositories struct {
	Partner  *PartnerRepository
	Contract *ContractRepository
	Order    *OrderRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Partner:  NewPartnerRepository(db),
		Contract: NewContractRepository(db),
		Order:    NewOrderRepository(db),
	}
}

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// FindByID 協力会社を取得する
func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*entity.Partner, error) {
	var partner entity.Partner
	err := r.db.WithContext(ctx).First(&partner, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// SoftDelete 協力会社を論理削除する。契約・注文書が残っている場合は削除できない。
func (r *PartnerRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := protect.Check(ctx, tx, "partner", id); err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&entity.Partner{}).
			Where("id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
	})
}

// PartnerSummary 協力会社一覧の集計行
type PartnerSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	President   string `json:"president"`
	Tel         string `json:"tel"`
	MemberCount int    `json:"member_count"` // 現在稼働中のＢＰ要員数
}

// ListSummary 協力会社一覧を稼働要員数付きで取得する
func (r *PartnerRepository) ListSummary(ctx context.Context) ([]PartnerSummary, error) {
	var results []PartnerSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.id,
		       s.name,
		       s.president,
		       s.tel,
		       COUNT(DISTINCT c.member_id) AS member_count
		  FROM eb_subcontractor s
		  LEFT JOIN eb_bp_contract c
		    ON c.partner_id = s.id
		   AND c.is_deleted = false
		   AND c.start_date <= CURRENT_DATE
		   AND c.end_date >= CURRENT_DATE
		 WHERE s.is_deleted = false
		 GROUP BY s.id, s.name, s.president, s.tel
		 ORDER BY s.name
	`).Scan(&results).Error
	return results, err
}

// PartnerMemberRow 協力会社の作業メンバー行
type PartnerMemberRow struct {
	MemberID    string  `json:"member_id"`
	MemberName  string  `json:"member_name"`
	ProjectID   *string `json:"project_id"`
	ProjectName *string `json:"project_name"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Price       *int64  `json:"price"`
}

// ListMembers 協力会社の作業メンバー一覧を取得する。
// 契約中の要員と現在アサインされている案件を合わせて返す。
func (r *PartnerRepository) ListMembers(ctx context.Context, partnerID string) ([]PartnerMemberRow, error) {
	var results []PartnerMemberRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.id AS member_id,
		       m.last_name || ' ' || m.first_name AS member_name,
		       p.id AS project_id,
		       p.name AS project_name,
		       TO_CHAR(pm.start_date, 'YYYY-MM-DD') AS start_date,
		       TO_CHAR(pm.end_date, 'YYYY-MM-DD') AS end_date,
		       pm.price
		  FROM eb_bp_contract c
		  JOIN eb_member m ON m.id = c.member_id AND m.is_deleted = false
		  LEFT JOIN eb_projectmember pm
		    ON pm.member_id = m.id
		   AND pm.is_deleted = false
		   AND pm.status = '1'
		   AND (pm.start_date IS NULL OR pm.start_date <= CURRENT_DATE)
		   AND (pm.end_date IS NULL OR pm.end_date >= CURRENT_DATE)
		  LEFT JOIN eb_project p ON p.id = pm.project_id
		 WHERE c.partner_id = ?
		   AND c.is_deleted = false
		   AND c.start_date <= CURRENT_DATE
		   AND c.end_date >= CURRENT_DATE
		 ORDER BY m.code
	`, partnerID).Scan(&results).Error
	return results, err
}

// PayNotifyRecipients 支払通知書の宛先（TO と CC）を取得する
func (r *PartnerRepository) PayNotifyRecipients(ctx context.Context, partnerID string) (to []string, cc []string, err error) {
	var recipients []entity.PartnerPayNotifyRecipient
	err = r.db.WithContext(ctx).
		Preload("Employee").
		Where("partner_id = ? AND is_deleted = false", partnerID).
		Find(&recipients).Error
	if err != nil {
		return nil, nil, err
	}
	for _, rec := range recipients {
		if rec.Employee == nil || rec.Employee.Email == "" {
			continue
		}
		if rec.IsCc {
			cc = append(cc, rec.Employee.Email)
		} else {
			to = append(to, rec.Employee.Email)
		}
	}
	return to, cc, nil
}
