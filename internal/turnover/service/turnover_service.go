package service

import (
	"context"
	"fmt"
	"math"

	"github.com/YangWanjun/ebusiness/internal/turnover/repository"
)

// Summary 売上集計行＋粗利
type Summary struct {
	repository.TurnoverRow
	ProfitAmount int64   `json:"profit_amount"`
	ProfitRate   float64 `json:"profit_rate"` // パーセント（小数1位）
}

// Chart 折れ線グラフ用の出力
type Chart struct {
	Labels []string  `json:"labels"`
	Series [][]int64 `json:"series"`
}

var monthLabels = map[string]string{
	"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
	"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
	"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
}

// TurnoverService 売上の集計
type TurnoverService struct {
	repo *repository.TurnoverRepository
}

func NewTurnoverService(repo *repository.TurnoverRepository) *TurnoverService {
	return &TurnoverService{repo: repo}
}

// Monthly 月別売上一覧（新しい月から）
func (s *TurnoverService) Monthly(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 24
	}
	rows, err := s.repo.Monthly(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly turnover: %w", err)
	}
	return summarize(rows), nil
}

// MonthlyChart 直近12ヶ月の売上推移グラフ
func (s *TurnoverService) MonthlyChart(ctx context.Context) (*Chart, error) {
	rows, err := s.repo.Monthly(ctx, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly turnover: %w", err)
	}
	// 取得は新しい月から。グラフは古い月から並べる。
	chart := &Chart{Series: [][]int64{{}}}
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		label := monthLabels[row.Month]
		if label == "" {
			label = row.Month
		}
		chart.Labels = append(chart.Labels, label)
		chart.Series[0] = append(chart.Series[0], row.TurnoverAmount)
	}
	return chart, nil
}

// Yearly 年間売上一覧
func (s *TurnoverService) Yearly(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.Yearly(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate yearly turnover: %w", err)
	}
	return summarize(rows), nil
}

// YearlyChart 年間売上推移グラフ
func (s *TurnoverService) YearlyChart(ctx context.Context) (*Chart, error) {
	rows, err := s.repo.Yearly(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate yearly turnover: %w", err)
	}
	chart := &Chart{Series: [][]int64{{}}}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.Year)
		chart.Series[0] = append(chart.Series[0], row.TurnoverAmount)
	}
	return chart, nil
}

// ClientsByMonth 指定年月のお客様別売上
func (s *TurnoverService) ClientsByMonth(ctx context.Context, year, month string) ([]Summary, error) {
	rows, err := s.repo.ClientsByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate client turnover: %w", err)
	}
	return summarize(rows), nil
}

// ClientByMonth 指定お客様・年月の案件別売上
func (s *TurnoverService) ClientByMonth(ctx context.Context, clientID, year, month string) ([]Summary, error) {
	rows, err := s.repo.ClientByMonth(ctx, clientID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project turnover: %w", err)
	}
	return summarize(rows), nil
}

func summarize(rows []repository.TurnoverRow) []Summary {
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			TurnoverRow:  row,
			ProfitAmount: row.TurnoverAmount - row.Cost,
			ProfitRate:   profitRate(row.TurnoverAmount, row.Cost),
		})
	}
	return summaries
}

// profitRate 利率（％、小数1位）。売上0の場合は0。
func profitRate(turnover, cost int64) float64 {
	if turnover == 0 {
		return 0
	}
	rate := float64(turnover-cost) / float64(turnover) * 100
	return math.Round(rate*10) / 10
}
