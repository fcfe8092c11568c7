package docgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	partnerentity "github.com/YangWanjun/ebusiness/internal/partner/entity"
	partnerservice "github.com/YangWanjun/ebusiness/internal/partner/service"
	projectentity "github.com/YangWanjun/ebusiness/internal/project/entity"
	projectservice "github.com/YangWanjun/ebusiness/internal/project/service"
)

func TestRenderInvoice(t *testing.T) {
	data := &projectservice.RequestData{
		Request: &projectentity.ProjectRequest{RequestNo: "2403001"},
		Heading: &projectentity.ProjectRequestHeading{
			ClientName:      "テスト商事",
			ClientPostCode:  "100-0001",
			CompanyName:     "イーＢＰ株式会社",
			PublishDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			WorkPeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			WorkPeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			RemitDate:       time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
			OrderNo:         "ORD-001",
		},
		Details: []projectentity.ProjectRequestDetail{
			{
				No:         1,
				ItemName:   "山田 太郎",
				Price:      500000,
				MinHours:   decimal.NewFromInt(160),
				MaxHours:   decimal.NewFromInt(200),
				TotalHours: decimal.NewFromInt(210),
				Rate:       decimal.NewFromInt(1),
				TotalPrice: 525000,
			},
		},
		Expenses: []projectservice.ExpenseLine{
			{CategoryName: "交通費", Summary: "交通費(山田￥12,000)", Amount: 12000},
		},
		TurnoverAmount: 525000,
		TaxAmount:      52500,
		ExpensesAmount: 12000,
		Amount:         589500,
	}

	content, err := NewRenderer().RenderInvoice(data)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open rendered workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("請求書", "O3"); got != "2403001" {
		t.Errorf("request no cell = %q, want 2403001", got)
	}
	if got, _ := f.GetCellValue("請求書", "B8"); got != "テスト商事御中" {
		t.Errorf("client name cell = %q", got)
	}
	if got, _ := f.GetCellValue("請求書", "E12"); got != "￥589,500円" {
		t.Errorf("amount cell = %q, want ￥589,500円", got)
	}
	if got, _ := f.GetCellValue("請求書", "C25"); got != "山田 太郎" {
		t.Errorf("member name cell = %q", got)
	}
}

func TestRenderOrder(t *testing.T) {
	data := &partnerservice.OrderData{
		Order: &partnerentity.BpMemberOrder{OrderNo: "EB20240301A01"},
		Heading: &partnerentity.BpMemberOrderHeading{
			PublishDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			PartnerName:     "パートナー株式会社",
			CompanyName:     "イーＢＰ株式会社",
			MemberName:      "鈴木 一郎",
			ProjectName:     "基幹システム更改",
			StartDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			PaymentDeadline: time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC),
			Interval:        1,
			AllowanceBase:   320000,
		},
	}

	content, err := NewRenderer().RenderOrder(data)
	if err != nil {
		t.Fatalf("RenderOrder: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open rendered workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("注文書", "K3"); got != "EB20240301A01" {
		t.Errorf("order no cell = %q", got)
	}
	if got, _ := f.GetCellValue("注文書", "B8"); got != "パートナー株式会社御中" {
		t.Errorf("partner cell = %q", got)
	}

	// 注文請書は同じレイアウトで別シート名
	content, err = NewRenderer().RenderOrderAcknowledgement(data)
	if err != nil {
		t.Fatalf("RenderOrderAcknowledgement: %v", err)
	}
	f2, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open rendered workbook: %v", err)
	}
	defer f2.Close()
	if got, _ := f2.GetCellValue("注文請書", "K3"); got != "EB20240301A01" {
		t.Errorf("acknowledgement order no cell = %q", got)
	}
}
