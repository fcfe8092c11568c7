package service

import (
	"testing"

	"github.com/YangWanjun/ebusiness/internal/turnover/repository"
)

func TestProfitRate(t *testing.T) {
	cases := []struct {
		turnover int64
		cost     int64
		want     float64
	}{
		{1000000, 700000, 30.0},
		{1000000, 666667, 33.3},
		{0, 100, 0},
		{500000, 600000, -20.0},
	}
	for _, c := range cases {
		if got := profitRate(c.turnover, c.cost); got != c.want {
			t.Errorf("profitRate(%d, %d) = %.1f, want %.1f", c.turnover, c.cost, got, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	rows := []repository.TurnoverRow{
		{Year: "2024", Month: "03", TurnoverAmount: 1000000, Cost: 700000},
	}
	summaries := summarize(rows)
	if len(summaries) != 1 {
		t.Fatalf("len = %d, want 1", len(summaries))
	}
	if summaries[0].ProfitAmount != 300000 {
		t.Errorf("ProfitAmount = %d, want 300000", summaries[0].ProfitAmount)
	}
	if summaries[0].ProfitRate != 30.0 {
		t.Errorf("ProfitRate = %.1f, want 30.0", summaries[0].ProfitRate)
	}
}
