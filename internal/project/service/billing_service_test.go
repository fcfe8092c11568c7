package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	memberentity "github.com/YangWanjun/ebusiness/internal/member/entity"
	"github.com/YangWanjun/ebusiness/internal/project/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testProjectMember(price int64, minHours, maxHours int64) *entity.ProjectMember {
	return &entity.ProjectMember{
		ID:       "pm-1",
		Price:    price,
		MinHours: decimal.NewFromInt(minHours),
		MaxHours: decimal.NewFromInt(maxHours),
		Member:   &memberentity.Member{LastName: "山田", FirstName: "太郎"},
	}
}

func TestMemberDetailOvertime(t *testing.T) {
	// 単価50万、基準160h・最大200h、増減未設定、210h稼働（+10h）
	pm := testProjectMember(500000, 160, 200)
	attendance := &entity.MemberAttendance{
		TotalHours: decimal.NewFromInt(210),
		ExtraHours: decimal.NewFromInt(10),
		Rate:       decimal.NewFromInt(1),
	}
	project := &entity.Project{}

	detail, err := memberDetail(project, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.MinusPerHour != 3125 {
		t.Errorf("MinusPerHour = %d, want 3125", detail.MinusPerHour)
	}
	if detail.PlusPerHour != 2500 {
		t.Errorf("PlusPerHour = %d, want 2500", detail.PlusPerHour)
	}
	if detail.ExtraAmount != 25000 {
		t.Errorf("ExtraAmount = %d, want 25000", detail.ExtraAmount)
	}
	if detail.TotalPrice != 525000 {
		t.Errorf("TotalPrice = %d, want 525000", detail.TotalPrice)
	}
}

func TestMemberDetailShortfall(t *testing.T) {
	// 150h稼働（-10h）：不足単価3125で控除
	pm := testProjectMember(500000, 160, 200)
	attendance := &entity.MemberAttendance{
		TotalHours: decimal.NewFromInt(150),
		ExtraHours: decimal.NewFromInt(-10),
		Rate:       decimal.NewFromInt(1),
	}
	detail, err := memberDetail(&entity.Project{}, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.ExtraAmount != -31250 {
		t.Errorf("ExtraAmount = %d, want -31250", detail.ExtraAmount)
	}
	if detail.TotalPrice != 468750 {
		t.Errorf("TotalPrice = %d, want 468750", detail.TotalPrice)
	}
}

func TestMemberDetailExplicitUnitPrices(t *testing.T) {
	pm := testProjectMember(500000, 160, 200)
	pm.PlusPerHour = 3000
	pm.MinusPerHour = 3500
	attendance := &entity.MemberAttendance{
		ExtraHours: decimal.NewFromInt(5),
		Rate:       decimal.NewFromInt(1),
	}
	detail, err := memberDetail(&entity.Project{}, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.ExtraAmount != 15000 {
		t.Errorf("ExtraAmount = %d, want 15000 (explicit plus unit)", detail.ExtraAmount)
	}
}

func TestMemberDetailHourlyPay(t *testing.T) {
	// 時給案件：出勤情報の確定金額をそのまま使う
	pm := testProjectMember(500000, 160, 200)
	attendance := &entity.MemberAttendance{
		TotalHours: decimal.NewFromInt(100),
		Price:      200000,
		Rate:       decimal.NewFromInt(1),
	}
	detail, err := memberDetail(&entity.Project{IsHourlyPay: true}, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.Price != 0 {
		t.Errorf("Price = %d, want 0 for hourly pay", detail.Price)
	}
	if detail.TotalPrice != 200000 {
		t.Errorf("TotalPrice = %d, want 200000", detail.TotalPrice)
	}
}

func TestMemberDetailMemberHourlyPay(t *testing.T) {
	// 時給設定のある要員：単価・増減を無視して時給×合計時間
	pm := testProjectMember(500000, 160, 200)
	hourly := int64(3000)
	pm.HourlyPay = &hourly
	attendance := &entity.MemberAttendance{
		TotalHours: decimal.NewFromFloat(150.5),
		ExtraHours: decimal.NewFromInt(-10),
		Rate:       decimal.NewFromInt(1),
	}
	detail, err := memberDetail(&entity.Project{}, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.Price != 3000 {
		t.Errorf("Price = %d, want 3000", detail.Price)
	}
	if detail.TotalPrice != 451500 {
		t.Errorf("TotalPrice = %d, want 451500 (3000×150.5h)", detail.TotalPrice)
	}
	if detail.ExtraAmount != 0 {
		t.Errorf("ExtraAmount = %d, want 0 for hourly member", detail.ExtraAmount)
	}
}

func TestMemberDetailMemberHourlyPayOnHourlyProject(t *testing.T) {
	// 時給案件でも要員の時給設定が優先される
	pm := testProjectMember(500000, 160, 200)
	hourly := int64(2000)
	pm.HourlyPay = &hourly
	attendance := &entity.MemberAttendance{
		TotalHours: decimal.NewFromInt(100),
		Price:      999999,
		Rate:       decimal.NewFromInt(1),
	}
	detail, err := memberDetail(&entity.Project{IsHourlyPay: true}, pm, attendance, 2024, 3)
	if err != nil {
		t.Fatalf("memberDetail: %v", err)
	}
	if detail.TotalPrice != 200000 {
		t.Errorf("TotalPrice = %d, want 200000 (2000×100h)", detail.TotalPrice)
	}
}

func TestBilledProjectIDs(t *testing.T) {
	// 注文書が1案件のみ：請求対象は現在の案件だけ
	ids := billedProjectIDs("p-1", []string{"p-1"})
	if len(ids) != 1 || ids[0] != "p-1" {
		t.Errorf("billedProjectIDs = %v, want [p-1]", ids)
	}
	ids = billedProjectIDs("p-1", nil)
	if len(ids) != 1 || ids[0] != "p-1" {
		t.Errorf("billedProjectIDs = %v, want [p-1]", ids)
	}

	// 複数案件をまとめる注文書：全案件分を1枚にまとめる
	ids = billedProjectIDs("p-1", []string{"p-1", "p-2", "p-3"})
	if len(ids) != 3 {
		t.Fatalf("billedProjectIDs = %v, want 3 projects", ids)
	}
}

func TestMemberDetailMissingAttendance(t *testing.T) {
	pm := testProjectMember(500000, 160, 200)
	_, err := memberDetail(&entity.Project{}, pm, nil, 2024, 3)
	if err == nil {
		t.Fatal("expected error for missing attendance")
	}
	if !bizerr.Is(err) {
		t.Errorf("expected domain error, got %T", err)
	}
}

func TestLumpDetail(t *testing.T) {
	project := &entity.Project{
		Name:        "基幹システム更改",
		IsLump:      true,
		LumpAmount:  1200000,
		LumpComment: "一式",
	}
	detail := lumpDetail(project)
	if detail.TotalPrice != 1200000 {
		t.Errorf("TotalPrice = %d, want 1200000", detail.TotalPrice)
	}
	if detail.Comment != "一式" {
		t.Errorf("Comment = %q", detail.Comment)
	}
}

func TestConsumptionTax(t *testing.T) {
	rate := decimal.NewFromFloat(0.08)
	cases := []struct {
		subtotal    int64
		decimalType string
		want        int64
	}{
		{10001, "0", 800}, // 800.08 切り捨て
		{10001, "1", 800}, // 四捨五入
		{10001, "2", 801}, // 切り上げ
		{10000, "0", 800},
		{10000, "2", 800}, // 端数なしは区分に関係なく同じ
	}
	for _, c := range cases {
		if got := ConsumptionTax(c.subtotal, rate, c.decimalType); got != c.want {
			t.Errorf("ConsumptionTax(%d, 0.08, %s) = %d, want %d", c.subtotal, c.decimalType, got, c.want)
		}
	}
}

func TestNextRequestNo(t *testing.T) {
	cases := []struct {
		prefix string
		maxNo  string
		want   string
	}{
		{"2403", "", "2403001"},
		{"2403", "2403002", "2403003"},
		{"2403", "2403009", "2403010"},
		{"2403", "2403002-001", "2403003"}, // 枝番は本体だけを見る
	}
	for _, c := range cases {
		if got := NextRequestNo(c.prefix, c.maxNo); got != c.want {
			t.Errorf("NextRequestNo(%s, %q) = %s, want %s", c.prefix, c.maxNo, got, c.want)
		}
	}
}

func TestPayDate(t *testing.T) {
	client := &entity.Client{PaymentMonth: "1", PaymentDay: "99"}
	first := date(2024, 3, 1)
	if got := client.PayDate(first); !got.Equal(date(2024, 4, 30)) {
		t.Errorf("PayDate 翌月末 = %v, want 2024-04-30", got)
	}

	client = &entity.Client{PaymentMonth: "2", PaymentDay: "15"}
	if got := client.PayDate(first); !got.Equal(date(2024, 5, 15)) {
		t.Errorf("PayDate 翌々月15日 = %v, want 2024-05-15", got)
	}

	// 支払日が月の日数を超える場合は月末に丸める
	client = &entity.Client{PaymentMonth: "1", PaymentDay: "31"}
	if got := client.PayDate(date(2024, 1, 1)); !got.Equal(date(2024, 2, 29)) {
		t.Errorf("PayDate 2月31日→月末 = %v, want 2024-02-29", got)
	}
}
