package docgen

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	partnerservice "github.com/YangWanjun/ebusiness/internal/partner/service"
	projectservice "github.com/YangWanjun/ebusiness/internal/project/service"
	"github.com/YangWanjun/ebusiness/internal/shared/strutil"
)

// Renderer 請求書・ＢＰ注文書の xlsx レンダラー
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderInvoice 請求書を生成する
func (r *Renderer) RenderInvoice(data *projectservice.RequestData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "請求書"
	f.SetSheetName("Sheet1", sheet)

	heading := data.Heading
	styles := newStyles(f)

	// タイトル
	f.MergeCell(sheet, "A1", "P1")
	f.SetCellValue(sheet, "A1", "　　御　請　求　書　　")
	f.SetCellStyle(sheet, "A1", "P1", styles.title)
	f.SetRowHeight(sheet, 1, 23.25)

	// 請求番号・発行日
	f.SetCellValue(sheet, "M3", "請求番号")
	if data.Request != nil {
		f.SetCellValue(sheet, "O3", data.Request.RequestNo)
	}
	f.SetCellValue(sheet, "M4", "発  行 日")
	f.SetCellValue(sheet, "O4", formatDate(heading.PublishDate))

	// 宛先（取引先）
	f.SetCellValue(sheet, "B3", "〒"+heading.ClientPostCode)
	f.SetCellValue(sheet, "B4", heading.ClientAddress)
	f.SetCellValue(sheet, "B6", "Tel: "+heading.ClientTel)
	f.SetCellValue(sheet, "B8", heading.ClientName+"御中")
	f.SetCellStyle(sheet, "B8", "B8", styles.clientName)
	f.SetCellValue(sheet, "B10", "　下記のとおりご請求申し上げます。")

	// 請求概要
	f.SetCellValue(sheet, "B12", "御請求額　 ：　")
	f.SetCellValue(sheet, "E12", "￥"+strutil.Comma(data.Amount)+"円")
	f.SetCellStyle(sheet, "E12", "E12", styles.amount)
	f.SetCellValue(sheet, "B14", "作業期間　   ：")
	f.SetCellValue(sheet, "E14", fmt.Sprintf("%s〜%s", formatDate(heading.WorkPeriodStart), formatDate(heading.WorkPeriodEnd)))
	f.SetCellValue(sheet, "B16", "注文番号　   ：")
	f.SetCellValue(sheet, "E16", heading.OrderNo)
	f.SetCellValue(sheet, "B18", "注文日　　　  ：")
	if heading.OrderDate != nil {
		f.SetCellValue(sheet, "E18", formatDate(*heading.OrderDate))
	}
	f.SetCellValue(sheet, "B20", "契約件名　　 ：　")
	f.SetCellValue(sheet, "E20", heading.ContractName)
	f.SetCellValue(sheet, "B22", "お支払い期限　：")
	f.SetCellValue(sheet, "E22", formatDate(heading.RemitDate))

	// 差出人（自社）
	f.SetCellValue(sheet, "M10", "〒"+heading.CompanyPostCode)
	f.SetCellValue(sheet, "M11", heading.CompanyAddress)
	f.SetCellValue(sheet, "M12", heading.CompanyName)
	f.SetCellValue(sheet, "M13", "代表取締役　　"+heading.CompanyMaster)
	f.SetCellValue(sheet, "M14", "TEL："+heading.CompanyTel)

	// 明細
	row := 25
	if heading.IsLump {
		row = r.writeLumpDetail(f, sheet, styles, data, row)
	} else {
		row = r.writeMemberDetails(f, sheet, styles, data, row)
	}
	if row < 45 {
		row = 45
	}

	// 集計
	f.SetCellValue(sheet, cell("D", row), "（小計）")
	setNumber(f, sheet, cell("O", row), data.TurnoverAmount, styles.number)
	f.SetCellValue(sheet, cell("D", row+1), "(消費税）")
	setNumber(f, sheet, cell("O", row+1), data.TaxAmount, styles.number)
	f.SetCellValue(sheet, cell("D", row+2), "(合計）")
	setNumber(f, sheet, cell("O", row+2), data.TurnoverAmount+data.TaxAmount, styles.number)
	f.SetCellValue(sheet, cell("D", row+3), "[控除、追加]")
	f.SetCellValue(sheet, cell("B", row+4), "控除")
	row += 5

	// 精算（分類別の追加行）
	if len(data.Expenses) > 0 {
		for i, line := range data.Expenses {
			if i == 0 {
				f.SetCellValue(sheet, cell("B", row), "追加")
			}
			f.MergeCell(sheet, cell("D", row), cell("N", row))
			f.SetCellValue(sheet, cell("D", row), line.Summary)
			setNumber(f, sheet, cell("O", row), line.Amount, styles.number)
			row++
		}
	} else {
		f.SetCellValue(sheet, cell("B", row), "追加")
		row++
	}
	f.SetCellValue(sheet, cell("D", row), "(総計）")
	setNumber(f, sheet, cell("O", row), data.Amount, styles.number)
	row++

	// 振込先口座
	f.SetCellValue(sheet, cell("B", row), "お振込銀行口座")
	f.SetCellValue(sheet, cell("C", row+1), heading.BankName)
	f.SetCellValue(sheet, cell("C", row+2), fmt.Sprintf("%s（%s）", heading.BranchName, heading.BranchNo))
	f.SetCellValue(sheet, cell("C", row+3), fmt.Sprintf("%s　%s", heading.AccountType, heading.AccountNumber))
	f.SetCellValue(sheet, cell("C", row+4), "名義　　　　"+heading.BankAccountHolder)

	setInvoiceColumns(f, sheet)
	return writeBuffer(f)
}

func (r *Renderer) writeMemberDetails(f *excelize.File, sheet string, styles *docStyles, data *projectservice.RequestData, row int) int {
	headers := []struct{ col, name string }{
		{"B", "番号"}, {"C", "項　　　　目"}, {"H", "単価"}, {"I", "作業H"},
		{"J", "率"}, {"K", "Min/MaxH"}, {"L", "減"}, {"M", "増"},
		{"N", "その他"}, {"O", "金額"}, {"P", "備考"},
	}
	f.MergeCell(sheet, "C24", "G24")
	for _, h := range headers {
		f.SetCellValue(sheet, h.col+"24", h.name)
		f.SetCellStyle(sheet, h.col+"24", h.col+"24", styles.header)
	}
	for _, d := range data.Details {
		f.SetCellValue(sheet, cell("B", row), d.No)
		f.MergeCell(sheet, cell("C", row), cell("G", row))
		f.SetCellValue(sheet, cell("C", row), d.ItemName)
		setNumber(f, sheet, cell("H", row), d.Price, styles.number)
		if !d.TotalHours.IsZero() {
			hours, _ := d.TotalHours.Float64()
			f.SetCellValue(sheet, cell("I", row), hours)
		}
		rate, _ := d.Rate.Float64()
		f.SetCellValue(sheet, cell("J", row), rate)
		f.SetCellValue(sheet, cell("K", row), fmt.Sprintf("%s/%s", strutil.Hours(d.MinHours), strutil.Hours(d.MaxHours)))
		setNumber(f, sheet, cell("L", row), d.MinusPerHour, styles.number)
		setNumber(f, sheet, cell("M", row), d.PlusPerHour, styles.number)
		setNumber(f, sheet, cell("N", row), d.ExtraAmount, styles.number)
		setNumber(f, sheet, cell("O", row), d.TotalPrice, styles.number)
		f.SetCellValue(sheet, cell("P", row), d.Comment)
		row++
	}
	return row
}

func (r *Renderer) writeLumpDetail(f *excelize.File, sheet string, styles *docStyles, data *projectservice.RequestData, row int) int {
	headers := []struct{ col, name string }{
		{"B", "番号"}, {"C", "項　　　　目"}, {"L", "単位"}, {"O", "金額"}, {"P", "備考"},
	}
	f.MergeCell(sheet, "C24", "K24")
	f.MergeCell(sheet, "L24", "N24")
	for _, h := range headers {
		f.SetCellValue(sheet, h.col+"24", h.name)
		f.SetCellStyle(sheet, h.col+"24", h.col+"24", styles.header)
	}
	for _, d := range data.Details {
		f.SetCellValue(sheet, cell("B", row), d.No)
		f.MergeCell(sheet, cell("C", row), cell("K", row))
		f.SetCellValue(sheet, cell("C", row), d.ItemName)
		f.MergeCell(sheet, cell("L", row), cell("N", row))
		f.SetCellValue(sheet, cell("L", row), "一式")
		setNumber(f, sheet, cell("O", row), d.TotalPrice, styles.number)
		f.SetCellValue(sheet, cell("P", row), d.Comment)
		row++
	}
	return row
}

// RenderOrder ＢＰ注文書を生成する
func (r *Renderer) RenderOrder(data *partnerservice.OrderData) ([]byte, error) {
	return r.renderOrderSheet(data, "注文書", "　　注　文　書　　")
}

// RenderOrderAcknowledgement ＢＰ注文請書を生成する。レイアウトは注文書と同じで、
// 協力会社が記名・押印して返送する。
func (r *Renderer) RenderOrderAcknowledgement(data *partnerservice.OrderData) ([]byte, error) {
	return r.renderOrderSheet(data, "注文請書", "　　注　文　請　書　　")
}

func (r *Renderer) renderOrderSheet(data *partnerservice.OrderData, sheetName, title string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := sheetName
	f.SetSheetName("Sheet1", sheet)

	heading := data.Heading
	styles := newStyles(f)

	f.MergeCell(sheet, "A1", "L1")
	f.SetCellValue(sheet, "A1", title)
	f.SetCellStyle(sheet, "A1", "L1", styles.title)
	f.SetRowHeight(sheet, 1, 23.25)

	f.SetCellValue(sheet, "J3", "注文番号")
	f.SetCellValue(sheet, "K3", data.Order.OrderNo)
	f.SetCellValue(sheet, "J4", "発  行 日")
	f.SetCellValue(sheet, "K4", formatDate(heading.PublishDate))

	// 宛先（協力会社）
	f.SetCellValue(sheet, "B3", "〒"+heading.PartnerPostCode)
	f.SetCellValue(sheet, "B4", heading.PartnerAddress)
	f.SetCellValue(sheet, "B6", "Tel: "+heading.PartnerTel)
	f.SetCellValue(sheet, "B8", heading.PartnerName+"御中")
	f.SetCellStyle(sheet, "B8", "B8", styles.clientName)

	// 差出人（自社）
	f.SetCellValue(sheet, "J8", "〒"+heading.CompanyPostCode)
	f.SetCellValue(sheet, "J9", heading.CompanyAddress)
	f.SetCellValue(sheet, "J10", heading.CompanyName)
	f.SetCellValue(sheet, "J11", "TEL："+heading.CompanyTel)

	// 注文概要
	rows := []struct {
		label string
		value string
	}{
		{"件名", heading.ProjectName},
		{"作業者", heading.MemberName},
		{"作業期間", fmt.Sprintf("%s〜%s", formatDate(heading.StartDate), formatDate(heading.EndDate))},
		{"お支払い期限", formatDate(heading.PaymentDeadline)},
	}
	row := 13
	for _, item := range rows {
		f.SetCellValue(sheet, cell("B", row), item.label)
		f.SetCellStyle(sheet, cell("B", row), cell("B", row), styles.header)
		f.MergeCell(sheet, cell("C", row), cell("L", row))
		f.SetCellValue(sheet, cell("C", row), item.value)
		row++
	}
	row++

	// 単価
	allowances := []struct {
		label  string
		amount int64
		unit   string
		memo   string
	}{
		{"基本料金", heading.AllowanceBase, "円/月", heading.AllowanceBaseMemo},
		{"超過単価", heading.AllowanceOvertime, "円/h", heading.AllowanceOvertimeMemo},
		{"不足単価", heading.AllowanceAbsenteeism, "円/h", heading.AllowanceAbsenteeismMemo},
		{"その他", heading.AllowanceOther, "円/月", heading.AllowanceOtherMemo},
	}
	if heading.Interval > 1 {
		allowances[0].unit = fmt.Sprintf("円/%dヶ月", heading.Interval)
	}
	f.SetCellValue(sheet, cell("B", row), "項目")
	f.SetCellValue(sheet, cell("D", row), "金額")
	f.SetCellValue(sheet, cell("F", row), "備考")
	for _, col := range []string{"B", "D", "F"} {
		f.SetCellStyle(sheet, cell(col, row), cell(col, row), styles.header)
	}
	row++
	for _, a := range allowances {
		f.SetCellValue(sheet, cell("B", row), a.label)
		f.SetCellValue(sheet, cell("D", row), strutil.Comma(a.amount)+a.unit)
		f.MergeCell(sheet, cell("F", row), cell("L", row))
		f.SetCellValue(sheet, cell("F", row), a.memo)
		row++
	}
	if heading.AllowanceTimeMemo != "" {
		f.MergeCell(sheet, cell("B", row), cell("L", row))
		f.SetCellValue(sheet, cell("B", row), heading.AllowanceTimeMemo)
		row++
	}
	if heading.CalculateTypeComment != "" {
		f.MergeCell(sheet, cell("B", row), cell("L", row))
		f.SetCellValue(sheet, cell("B", row), heading.CalculateTypeComment)
		row++
	}
	if heading.Comment != "" {
		row++
		f.MergeCell(sheet, cell("B", row), cell("L", row))
		f.SetCellValue(sheet, cell("B", row), heading.Comment)
	}

	return writeBuffer(f)
}

type docStyles struct {
	title      int
	clientName int
	amount     int
	header     int
	number     int
}

func newStyles(f *excelize.File) *docStyles {
	title, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18, Underline: "double"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	clientName, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Underline: "single"},
	})
	amount, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Underline: "double"},
	})
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	number, _ := f.NewStyle(&excelize.Style{
		NumFmt: 3, // #,##0
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	return &docStyles{title: title, clientName: clientName, amount: amount, header: header, number: number}
}

func setInvoiceColumns(f *excelize.File, sheet string) {
	widths := map[string]float64{
		"A": 0.9, "B": 4.9, "C": 2.9, "D": 2.9, "E": 3.0, "F": 3.0, "G": 3.0,
		"H": 10.3, "I": 10.7, "J": 4.9, "K": 15.3, "L": 4.9, "M": 4.9,
		"N": 6.6, "O": 13.6, "P": 12.4,
	}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
}

func setNumber(f *excelize.File, sheet, axis string, v int64, style int) {
	f.SetCellValue(sheet, axis, v)
	f.SetCellStyle(sheet, axis, axis, style)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006年01月02日")
}

func writeBuffer(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
