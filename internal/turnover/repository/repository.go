package repository

import (
	"context"

	"gorm.io/gorm"
)

// TurnoverRow 売上集計行。コストは請求明細スナップショットの合計。
type TurnoverRow struct {
	Year           string `json:"year"`
	Month          string `json:"month,omitempty"`
	ClientID       string `json:"client_id,omitempty"`
	ClientName     string `json:"client_name,omitempty"`
	ProjectID      string `json:"project_id,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	Cost           int64  `json:"cost"`
	TurnoverAmount int64  `json:"turnover_amount"`
	TaxAmount      int64  `json:"tax_amount"`
	ExpensesAmount int64  `json:"expenses_amount"`
	Amount         int64  `json:"amount"`
}

// 請求書×明細コストの共通集計。外側のクエリが GROUP BY を付けて使う。
const turnoverBase = `
	SELECT r.id,
	       r.project_id,
	       r.client_order_id,
	       r.year,
	       r.month,
	       r.turnover_amount,
	       r.tax_amount,
	       r.expenses_amount,
	       r.amount,
	       COALESCE(d.cost, 0) AS cost
	  FROM eb_projectrequest r
	  LEFT JOIN (
	       SELECT request_id, SUM(cost) AS cost
	         FROM eb_projectrequestdetail
	        GROUP BY request_id
	  ) d ON d.request_id = r.id
`

type TurnoverRepository struct {
	db *gorm.DB
}

func NewTurnoverRepository(db *gorm.DB) *TurnoverRepository {
	return &TurnoverRepository{db: db}
}

// Monthly 月別売上（新しい月から limit 件）
func (r *TurnoverRepository) Monthly(ctx context.Context, limit int) ([]TurnoverRow, error) {
	var rows []TurnoverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.year,
		       t.month,
		       SUM(t.turnover_amount) AS turnover_amount,
		       SUM(t.tax_amount) AS tax_amount,
		       SUM(t.expenses_amount) AS expenses_amount,
		       SUM(t.amount) AS amount,
		       SUM(t.cost) AS cost
		  FROM (`+turnoverBase+`) t
		 GROUP BY t.year, t.month
		 ORDER BY t.year DESC, t.month DESC
		 LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, err
}

// Yearly 年間売上
func (r *TurnoverRepository) Yearly(ctx context.Context) ([]TurnoverRow, error) {
	var rows []TurnoverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.year,
		       SUM(t.turnover_amount) AS turnover_amount,
		       SUM(t.tax_amount) AS tax_amount,
		       SUM(t.expenses_amount) AS expenses_amount,
		       SUM(t.amount) AS amount,
		       SUM(t.cost) AS cost
		  FROM (`+turnoverBase+`) t
		 GROUP BY t.year
		 ORDER BY t.year ASC
	`).Scan(&rows).Error
	return rows, err
}

// ClientsByMonth 指定年月のお客様別売上
func (r *TurnoverRepository) ClientsByMonth(ctx context.Context, year, month string) ([]TurnoverRow, error) {
	var rows []TurnoverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS client_id,
		       c.name AS client_name,
		       t.year,
		       t.month,
		       SUM(t.turnover_amount) AS turnover_amount,
		       SUM(t.tax_amount) AS tax_amount,
		       SUM(t.expenses_amount) AS expenses_amount,
		       SUM(t.amount) AS amount,
		       SUM(t.cost) AS cost
		  FROM (`+turnoverBase+`) t
		  JOIN eb_project p ON p.id = t.project_id
		  JOIN eb_client c ON c.id = p.client_id
		 WHERE t.year = ? AND t.month = ?
		 GROUP BY c.id, c.name, t.year, t.month
		 ORDER BY c.name
	`, year, month).Scan(&rows).Error
	return rows, err
}

// ClientByMonth 指定お客様・年月の案件別売上
func (r *TurnoverRepository) ClientByMonth(ctx context.Context, clientID, year, month string) ([]TurnoverRow, error) {
	var rows []TurnoverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS project_id,
		       p.name AS project_name,
		       c.id AS client_id,
		       c.name AS client_name,
		       t.year,
		       t.month,
		       SUM(t.turnover_amount) AS turnover_amount,
		       SUM(t.tax_amount) AS tax_amount,
		       SUM(t.expenses_amount) AS expenses_amount,
		       SUM(t.amount) AS amount,
		       SUM(t.cost) AS cost
		  FROM (`+turnoverBase+`) t
		  JOIN eb_project p ON p.id = t.project_id
		  JOIN eb_client c ON c.id = p.client_id
		 WHERE c.id = ? AND t.year = ? AND t.month = ?
		 GROUP BY p.id, p.name, c.id, c.name, t.year, t.month
		 ORDER BY p.name
	`, clientID, year, month).Scan(&rows).Error
	return rows, err
}
