package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	masterentity "github.com/YangWanjun/ebusiness/internal/master/entity"
	masterrepo "github.com/YangWanjun/ebusiness/internal/master/repository"
	"github.com/YangWanjun/ebusiness/internal/project/entity"
	"github.com/YangWanjun/ebusiness/internal/project/repository"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
	"github.com/YangWanjun/ebusiness/internal/shared/calendar"
	"github.com/YangWanjun/ebusiness/internal/shared/lock"
	"github.com/YangWanjun/ebusiness/internal/shared/strutil"
)

// CostSource 給与・コストの参考値の取得元（給与計算システム）。
// 取得失敗は請求生成を止めず、0円に落としてログに残す。
type CostSource interface {
	Costs(ctx context.Context, memberID, year, month string) (salary, cost int64, err error)
}

// DocumentStore 生成した帳票の保存先
type DocumentStore interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

// InvoiceRenderer 請求書の帳票レンダラー
type InvoiceRenderer interface {
	RenderInvoice(data *RequestData) ([]byte, error)
}

// GenerateRequestInput 請求書生成の入力
type GenerateRequestInput struct {
	ProjectID     string
	ClientOrderID string
	Year          string
	Month         string
	// 上書き項目（未設定の場合は注文書から取る）
	OrderNo      string
	OrderDate    *time.Time
	ContractName string
	PublishDate  *time.Time
	UserID       string
}

// RequestData 請求書の計算結果。見出し・明細・集計をすべて含み、
// スナップショット保存と帳票レンダリングの両方がこれを使う。
type RequestData struct {
	Request  *entity.ProjectRequest
	Heading  *entity.ProjectRequestHeading
	Details  []entity.ProjectRequestDetail
	Expenses []ExpenseLine

	TurnoverAmount int64 // 小計（税抜き）
	TaxAmount      int64
	ExpensesAmount int64
	Amount         int64 // 総計
}

// ExpenseLine 精算の分類別集計行。内訳はメンバー別の明細文字列。
type ExpenseLine struct {
	CategoryName string `json:"category_name"`
	Summary      string `json:"summary"` // 例：交通費(山田￥12,000、田中￥8,000)
	Amount       int64  `json:"amount"`
}

// BillingService 請求書の計算と保存
type BillingService struct {
	repos      *repository.Repositories
	masterRepo *masterrepo.Repositories
	costSource CostSource
	store      DocumentStore
	renderer   InvoiceRenderer
	locker     lock.Locker
	logger     *zap.Logger
}

func NewBillingService(
	repos *repository.Repositories,
	masterRepo *masterrepo.Repositories,
	costSource CostSource,
	store DocumentStore,
	renderer InvoiceRenderer,
	locker lock.Locker,
	logger *zap.Logger,
) *BillingService {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &BillingService{
		repos:      repos,
		masterRepo: masterRepo,
		costSource: costSource,
		store:      store,
		renderer:   renderer,
		locker:     locker,
		logger:     logger,
	}
}

// GenerateRequestData 請求書データを計算する。保存はしない。
func (s *BillingService) GenerateRequestData(ctx context.Context, in *GenerateRequestInput) (*RequestData, error) {
	year, month, err := parseYM(in.Year, in.Month)
	if err != nil {
		return nil, err
	}

	project, err := s.repos.Project.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, bizerr.New("案件が見つかりません。")
	}
	if project.Client == nil {
		return nil, bizerr.New("案件「%s」に取引先が設定されていません。", project.Name)
	}
	order, err := s.repos.ClientOrder.FindByID(ctx, in.ClientOrderID)
	if err != nil {
		return nil, bizerr.New("注文書が見つかりません。")
	}
	company, err := s.masterRepo.Company.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get own company: %w", err)
	}

	// 1. 請求対象期間：対象月を案件の期間に収める
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := calendar.LastDayOfMonth(first)
	periodStart, periodEnd := first, last
	if project.StartDate != nil && project.StartDate.After(periodStart) {
		periodStart = *project.StartDate
	}
	if project.EndDate != nil && project.EndDate.Before(periodEnd) {
		periodEnd = *project.EndDate
	}

	// 同一案件が同一期間に複数の注文書でカバーされる場合は請求対象が曖昧
	orders, err := s.repos.ClientOrder.ListForProjectPeriod(ctx, project.ID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list client orders: %w", err)
	}
	if len(orders) > 1 {
		return nil, bizerr.New("案件「%s」は%d年%02d月に複数の注文書が存在します。この場合の請求は未対応です。", project.Name, year, month)
	}

	// 2. 見出し
	heading, err := s.buildHeading(ctx, project, order, company, in, first, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	data := &RequestData{Heading: heading}

	// 3〜5. 明細
	var projectMemberIDs []string
	if project.IsLump {
		data.Details = []entity.ProjectRequestDetail{lumpDetail(project)}
	} else {
		ids, err := s.repos.ClientOrder.ProjectIDs(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list order projects: %w", err)
		}
		projectIDs := billedProjectIDs(project.ID, ids)
		members, err := s.repos.ProjectMember.ListActiveByProjects(ctx, projectIDs, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to list project members: %w", err)
		}
		for i := range members {
			pm := &members[i]
			attendance, err := s.repos.Attendance.FindByProjectMemberYM(ctx, pm.ID, in.Year, in.Month)
			if err != nil {
				return nil, fmt.Errorf("failed to get attendance: %w", err)
			}
			detail, err := memberDetail(project, pm, attendance, year, month)
			if err != nil {
				return nil, err
			}
			detail.No = i + 1
			data.Details = append(data.Details, *detail)
			projectMemberIDs = append(projectMemberIDs, pm.ID)
		}
	}

	// 6. 精算
	data.Expenses, data.ExpensesAmount, err = s.expenseLines(ctx, projectMemberIDs, in.Year, in.Month)
	if err != nil {
		return nil, err
	}

	// 7〜8. 税・総計
	for _, d := range data.Details {
		data.TurnoverAmount += d.TotalPrice
	}
	data.TaxAmount = ConsumptionTax(data.TurnoverAmount, project.Client.TaxRate, project.Client.DecimalType)
	data.Amount = data.TurnoverAmount + data.TaxAmount + data.ExpensesAmount

	return data, nil
}

// GenerateAndSave 請求書を計算し、スナップショットと帳票ファイルを保存する。
// 同一請求書の同時再生成はロックで排他する。
func (s *BillingService) GenerateAndSave(ctx context.Context, in *GenerateRequestInput) (*RequestData, error) {
	release, err := s.locker.Acquire(ctx, "request", fmt.Sprintf("%s:%s:%s%s", in.ProjectID, in.ClientOrderID, in.Year, in.Month))
	if err != nil {
		return nil, err
	}
	defer release()

	data, err := s.GenerateRequestData(ctx, in)
	if err != nil {
		return nil, err
	}

	// 請求書本体：既存があれば番号を引き継ぎ、なければ採番
	existing, err := s.repos.Request.FindByProjectOrderYM(ctx, in.ProjectID, in.ClientOrderID, in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to find request: %w", err)
	}
	request := existing
	if request == nil {
		requestNo, err := s.NextRequestNo(ctx, in.Year, in.Month)
		if err != nil {
			return nil, err
		}
		request = &entity.ProjectRequest{
			ID:            uuid.New().String()[:32],
			ProjectID:     in.ProjectID,
			ClientOrderID: in.ClientOrderID,
			Year:          in.Year,
			Month:         in.Month,
			RequestNo:     requestNo,
			CreatedUserID: in.UserID,
		}
	}
	request.TurnoverAmount = data.TurnoverAmount
	request.TaxAmount = data.TaxAmount
	request.ExpensesAmount = data.ExpensesAmount
	request.Amount = data.Amount
	request.UpdatedUserID = in.UserID
	data.Request = request

	// 給与・コストの参考値。失敗は0円に落として続行する。
	s.enrichCosts(ctx, data, in.Year, in.Month)

	// 帳票ファイル
	if s.renderer != nil && s.store != nil {
		content, err := s.renderer.RenderInvoice(data)
		if err != nil {
			return nil, fmt.Errorf("failed to render invoice: %w", err)
		}
		filename := fmt.Sprintf("請求書_%s_%s%s.xlsx", request.RequestNo, in.Year, in.Month)
		fileUUID, err := s.store.Save(ctx, filename, content)
		if err != nil {
			return nil, fmt.Errorf("failed to store invoice: %w", err)
		}
		request.Filename = filename
		request.FileUUID = fileUUID
	}

	if err := s.repos.Request.SaveWithSnapshot(ctx, request, data.Heading, data.Details); err != nil {
		return nil, err
	}
	return data, nil
}

// NextRequestNo 対象年月の次の請求番号（YYMM###）を採番する
func (s *BillingService) NextRequestNo(ctx context.Context, year, month string) (string, error) {
	if len(year) != 4 || len(month) != 2 {
		return "", bizerr.New("対象年月の形式が不正です。")
	}
	prefix := year[2:] + month
	maxNo, err := s.repos.Request.MaxRequestNoByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to get max request no: %w", err)
	}
	return NextRequestNo(prefix, maxNo), nil
}

// NextRequestNo 既存の最大請求番号から次の番号を求める。
// maxNo が空の場合は YYMM001。枝番（YYMM###-###）は本体部分だけを見る。
func NextRequestNo(prefix, maxNo string) string {
	if maxNo == "" {
		return prefix + "001"
	}
	body := maxNo
	if idx := strings.Index(body, "-"); idx >= 0 {
		body = body[:idx]
	}
	seq := 0
	if len(body) >= len(prefix)+3 {
		if n, err := strconv.Atoi(body[len(prefix) : len(prefix)+3]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq+1)
}

// ConsumptionTax 消費税額を求める。小数の処理区分は
// 0:切り捨て 1:四捨五入 2:切り上げ。
func ConsumptionTax(subtotal int64, taxRate decimal.Decimal, decimalType string) int64 {
	tax := decimal.NewFromInt(subtotal).Mul(taxRate)
	switch decimalType {
	case "1":
		return tax.Round(0).IntPart()
	case "2":
		return tax.Ceil().IntPart()
	default:
		return tax.Floor().IntPart()
	}
}

func (s *BillingService) buildHeading(
	ctx context.Context,
	project *entity.Project,
	order *entity.ClientOrder,
	company *masterentity.Company,
	in *GenerateRequestInput,
	first, periodStart, periodEnd time.Time,
) (*entity.ProjectRequestHeading, error) {
	client := project.Client

	publishDate := calendar.LastDayOfMonth(first)
	if in.PublishDate != nil {
		publishDate = *in.PublishDate
	}
	orderNo := order.OrderNo
	if in.OrderNo != "" {
		orderNo = in.OrderNo
	}
	orderDate := order.OrderDate
	if in.OrderDate != nil {
		orderDate = in.OrderDate
	}
	contractName := order.Name
	if in.ContractName != "" {
		contractName = in.ContractName
	}

	heading := &entity.ProjectRequestHeading{
		ID:              uuid.New().String()[:32],
		IsLump:          project.IsLump,
		LumpComment:     project.LumpComment,
		IsHourlyPay:     project.IsHourlyPay,
		ClientName:      client.Name,
		ClientPostCode:  client.PostCode,
		ClientAddress:   client.Address(),
		ClientTel:       client.Tel,
		ClientFax:       client.Fax,
		CompanyName:     company.Name,
		CompanyPostCode: company.PostCode,
		CompanyAddress:  company.Address(),
		CompanyTel:      company.Tel,
		CompanyMaster:   company.President,
		PublishDate:     publishDate,
		WorkPeriodStart: periodStart,
		WorkPeriodEnd:   periodEnd,
		RemitDate:       client.PayDate(first),
		OrderNo:         orderNo,
		OrderDate:       orderDate,
		ContractName:    contractName,
	}

	// 振込先口座
	if order.BankAccountID != nil {
		account, err := s.masterRepo.BankAccount.FindByID(ctx, *order.BankAccountID)
		if err != nil {
			return nil, bizerr.New("注文書に設定された振込先口座が見つかりません。")
		}
		heading.BankName = account.BankName
		heading.BranchNo = account.BranchNo
		heading.BranchName = account.BranchName
		heading.AccountType = account.AccountTypeName()
		heading.AccountNumber = account.AccountNumber
		heading.BankAccountHolder = account.AccountHolder
	}
	return heading, nil
}

// lumpDetail 一括案件の明細行
func lumpDetail(project *entity.Project) entity.ProjectRequestDetail {
	return entity.ProjectRequestDetail{
		ID:         uuid.New().String()[:32],
		No:         1,
		ItemName:   project.Name,
		Price:      project.LumpAmount,
		TotalPrice: project.LumpAmount,
		Comment:    project.LumpComment,
	}
}

// memberDetail メンバー1人分の明細行を計算する。
// 時給案件は出勤情報の確定金額をそのまま使い、それ以外は
// 基本金額＋超過・不足の増減で求める。
func memberDetail(
	project *entity.Project,
	pm *entity.ProjectMember,
	attendance *entity.MemberAttendance,
	year, month int,
) (*entity.ProjectRequestDetail, error) {
	memberName := ""
	if pm.Member != nil {
		memberName = pm.Member.FullName()
	}
	if attendance == nil {
		return nil, bizerr.New("%s の%d年%02d月の出勤情報がありません。", memberName, year, month)
	}

	detail := &entity.ProjectRequestDetail{
		ID:              uuid.New().String()[:32],
		ProjectMemberID: &pm.ID,
		ItemName:        memberName,
		MinHours:        pm.MinHours,
		MaxHours:        pm.MaxHours,
		TotalHours:      attendance.TotalHours,
		ExtraHours:      attendance.ExtraHours,
		Rate:            attendance.Rate,
		Comment:         attendance.Comment,
	}

	if pm.HourlyPay != nil && *pm.HourlyPay > 0 {
		// 時給設定のある要員：単価・増減を無視して時給×合計時間
		detail.Price = *pm.HourlyPay
		detail.TotalPrice = decimal.NewFromInt(*pm.HourlyPay).
			Mul(attendance.TotalHours).Truncate(0).IntPart()
		return detail, nil
	}

	if project.IsHourlyPay {
		// 時給案件：単価・増減を無視して確定金額をそのまま使う
		detail.TotalPrice = attendance.Price
		return detail, nil
	}

	detail.Price = pm.Price
	detail.PlusPerHour = plusPerHour(pm)
	detail.MinusPerHour = minusPerHour(pm)

	unit := detail.PlusPerHour
	if attendance.ExtraHours.IsNegative() {
		unit = detail.MinusPerHour
	}
	detail.ExtraAmount = attendance.ExtraHours.Mul(decimal.NewFromInt(unit)).Truncate(0).IntPart()
	detail.TotalPrice = detail.Price + detail.ExtraAmount
	return detail, nil
}

// billedProjectIDs 請求対象の案件ID。注文書が複数案件をまとめてカバーする
// 場合は全案件分を1枚の請求書にまとめる。
func billedProjectIDs(projectID string, orderProjectIDs []string) []string {
	if len(orderProjectIDs) > 1 {
		return orderProjectIDs
	}
	return []string{projectID}
}

// plusPerHour 超過単価。未設定（0）の場合は単価÷最大時間
func plusPerHour(pm *entity.ProjectMember) int64 {
	if pm.PlusPerHour != 0 {
		return pm.PlusPerHour
	}
	if pm.MaxHours.IsZero() {
		return 0
	}
	return decimal.NewFromInt(pm.Price).Div(pm.MaxHours).Floor().IntPart()
}

// minusPerHour 不足単価。未設定（0）の場合は単価÷基準時間
func minusPerHour(pm *entity.ProjectMember) int64 {
	if pm.MinusPerHour != 0 {
		return pm.MinusPerHour
	}
	if pm.MinHours.IsZero() {
		return 0
	}
	return decimal.NewFromInt(pm.Price).Div(pm.MinHours).Floor().IntPart()
}

// expenseLines 精算を分類ごとに集計する。
// 各行の内訳は「分類(メンバー1￥金額、メンバー2￥金額…)」の形式。
func (s *BillingService) expenseLines(ctx context.Context, projectMemberIDs []string, year, month string) ([]ExpenseLine, int64, error) {
	expenses, err := s.repos.Expense.ListByProjectMembersYM(ctx, projectMemberIDs, year, month)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil, 0, nil
	}
	categories, err := s.masterRepo.ExpenseCategory.MapByID(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load expense categories: %w", err)
	}

	type group struct {
		name  string
		parts []string
		total int64
	}
	groups := make(map[string]*group)
	var keys []string
	for _, e := range expenses {
		g, ok := groups[e.CategoryID]
		if !ok {
			name := categories[e.CategoryID]
			if name == "" {
				name = "その他"
			}
			g = &group{name: name}
			groups[e.CategoryID] = g
			keys = append(keys, e.CategoryID)
		}
		memberName := ""
		if e.ProjectMember != nil && e.ProjectMember.Member != nil {
			memberName = e.ProjectMember.Member.FullName()
		}
		g.parts = append(g.parts, fmt.Sprintf("%s￥%s", memberName, strutil.Comma(e.Price)))
		g.total += e.Price
	}
	sort.Strings(keys)

	var lines []ExpenseLine
	var total int64
	for _, key := range keys {
		g := groups[key]
		lines = append(lines, ExpenseLine{
			CategoryName: g.name,
			Summary:      fmt.Sprintf("%s(%s)", g.name, strings.Join(g.parts, "、")),
			Amount:       g.total,
		})
		total += g.total
	}
	return lines, total, nil
}

// enrichCosts 明細の給与・コスト参考値を取得する。失敗は0のまま警告ログのみ。
func (s *BillingService) enrichCosts(ctx context.Context, data *RequestData, year, month string) {
	if s.costSource == nil {
		return
	}
	for i := range data.Details {
		d := &data.Details[i]
		if d.ProjectMemberID == nil {
			continue
		}
		salary, cost, err := s.costSource.Costs(ctx, *d.ProjectMemberID, year, month)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("給与・コストの取得に失敗しました。0円として続行します。",
					zap.String("project_member_id", *d.ProjectMemberID),
					zap.String("year", year),
					zap.String("month", month),
					zap.Error(err))
			}
			continue
		}
		d.Salary = salary
		d.Cost = cost
	}
}

// parseYM 年月文字列を検証して数値にする
func parseYM(year, month string) (int, int, error) {
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return 0, 0, bizerr.New("対象年の形式が不正です：%s", year)
	}
	m, err := strconv.Atoi(month)
	if err != nil || len(month) != 2 || m < 1 || m > 12 {
		return 0, 0, bizerr.New("対象月の形式が不正です：%s", month)
	}
	return y, m, nil
}
