package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	mailentity "github.com/YangWanjun/ebusiness/internal/mail/entity"
	mailservice "github.com/YangWanjun/ebusiness/internal/mail/service"
	masterrepo "github.com/YangWanjun/ebusiness/internal/master/repository"
	memberentity "github.com/YangWanjun/ebusiness/internal/member/entity"
	memberrepo "github.com/YangWanjun/ebusiness/internal/member/repository"
	"github.com/YangWanjun/ebusiness/internal/partner/entity"
	"github.com/YangWanjun/ebusiness/internal/partner/repository"
	projectrepo "github.com/YangWanjun/ebusiness/internal/project/repository"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
	"github.com/YangWanjun/ebusiness/internal/shared/calendar"
	"github.com/YangWanjun/ebusiness/internal/shared/lock"
	"github.com/YangWanjun/ebusiness/internal/shared/storage"
	"github.com/YangWanjun/ebusiness/internal/shared/strutil"
)

// OrderRenderer ＢＰ注文書・注文請書の帳票レンダラー
type OrderRenderer interface {
	RenderOrder(data *OrderData) ([]byte, error)
	RenderOrderAcknowledgement(data *OrderData) ([]byte, error)
}

// OrderMailer ＢＰ注文書メールの送信口
type OrderMailer interface {
	Send(ctx context.Context, in *mailservice.SendInput, postSend mailservice.PostSendCallback) error
}

// GenerateOrderInput ＢＰ注文書生成の入力。終了年月を省略した場合は
// 開始月1ヶ月分の注文書になる。
type GenerateOrderInput struct {
	ProjectMemberID string
	Year            string
	Month           string
	EndYear         string
	EndMonth        string
	PublishDate     time.Time // 発行日（注文番号の採番にも使う）
	UserID          string
}

// OrderData ＢＰ注文書の計算結果
type OrderData struct {
	Order    *entity.BpMemberOrder
	Heading  *entity.BpMemberOrderHeading
	Partner  *entity.Partner
	Contract *entity.BpContract
}

// OrderService ＢＰ注文書の計算と保存・送信
type OrderService struct {
	repos          *repository.Repositories
	projectMembers *projectrepo.ProjectMemberRepository
	salespersons   *memberrepo.SalespersonRepository
	companyRepo    *masterrepo.CompanyRepository
	contracts      *ContractService
	holidays       HolidaySource
	files          storage.Store
	renderer       OrderRenderer
	mailer         OrderMailer
	locker         lock.Locker
	logger         *zap.Logger
}

func NewOrderService(
	repos *repository.Repositories,
	projectMembers *projectrepo.ProjectMemberRepository,
	salespersons *memberrepo.SalespersonRepository,
	companyRepo *masterrepo.CompanyRepository,
	contracts *ContractService,
	holidays HolidaySource,
	files storage.Store,
	renderer OrderRenderer,
	mailer OrderMailer,
	locker lock.Locker,
	logger *zap.Logger,
) *OrderService {
	if locker == nil {
		locker = lock.NopLocker{}
	}
	return &OrderService{
		repos:          repos,
		projectMembers: projectMembers,
		salespersons:   salespersons,
		companyRepo:    companyRepo,
		contracts:      contracts,
		holidays:       holidays,
		files:          files,
		renderer:       renderer,
		mailer:         mailer,
		locker:         locker,
		logger:         logger,
	}
}

// GenerateOrderData ＢＰ注文書データを計算する。保存はしない。
// 対象年月を範囲に含む既存注文書があればそれを引き継ぐ。
func (s *OrderService) GenerateOrderData(ctx context.Context, in *GenerateOrderInput) (*OrderData, error) {
	startYear, startMonth, err := parseYM(in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	endYM := in.EndYear + in.EndMonth
	if in.EndYear == "" || in.EndMonth == "" {
		in.EndYear, in.EndMonth = in.Year, in.Month
		endYM = in.Year + in.Month
	}
	endYear, endMonth, err := parseYM(in.EndYear, in.EndMonth)
	if err != nil {
		return nil, err
	}
	if endYM < in.Year+in.Month {
		return nil, bizerr.New("終了年月は開始年月以降を指定してください。")
	}
	if in.PublishDate.IsZero() {
		return nil, bizerr.New("発行日を指定してください。")
	}

	pm, err := s.projectMembers.FindByID(ctx, in.ProjectMemberID)
	if err != nil {
		return nil, bizerr.New("案件メンバーが見つかりません。")
	}
	if pm.Project == nil || pm.Member == nil {
		return nil, bizerr.New("案件メンバーの案件または要員情報が不足しています。")
	}

	contract, err := s.contracts.ResolveByMember(ctx, pm.MemberID, startYear, startMonth)
	if err != nil {
		return nil, err
	}
	partner := contract.Partner
	if partner == nil {
		partner, err = s.repos.Partner.FindByID(ctx, contract.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get partner: %w", err)
		}
	}
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get own company: %w", err)
	}

	// 作業期間：開始月初〜終了月末を要員のアサイン期間に収める
	startDate := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	endDate := calendar.LastDayOfMonth(time.Date(endYear, time.Month(endMonth), 1, 0, 0, 0, 0, time.UTC))
	if pm.StartDate != nil && pm.StartDate.After(startDate) {
		startDate = *pm.StartDate
	}
	if pm.EndDate != nil && pm.EndDate.Before(endDate) {
		endDate = *pm.EndDate
	}

	// 注文書本体：対象年月を範囲に含む既存があれば引き継ぐ
	order, err := s.repos.Order.FindBracketing(ctx, pm.ID, in.Year, in.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to find bp order: %w", err)
	}
	salesperson, err := s.salespersons.FindForMemberAsOf(ctx, pm.MemberID, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get salesperson: %w", err)
	}
	if order == nil {
		orderNo, err := s.nextOrderNo(ctx, in.PublishDate, salesperson)
		if err != nil {
			return nil, err
		}
		order = &entity.BpMemberOrder{
			ID:              uuid.New().String()[:32],
			ProjectMemberID: pm.ID,
			Year:            in.Year,
			Month:           in.Month,
			EndYear:         in.EndYear,
			EndMonth:        in.EndMonth,
			OrderNo:         orderNo,
			CreatedUserID:   in.UserID,
		}
	}
	order.PartnerID = partner.ID
	order.UpdatedUserID = in.UserID
	if salesperson != nil {
		order.SalespersonID = &salesperson.ID
	}

	interval := calendar.MonthsBetween(startYear, startMonth, endYear, endMonth)
	pricing, err := s.contracts.PricingFor(ctx, contract, startYear, startMonth)
	if err != nil {
		return nil, err
	}

	heading := &entity.BpMemberOrderHeading{
		ID:              uuid.New().String()[:32],
		PublishDate:     in.PublishDate,
		PartnerName:     partner.Name,
		PartnerPostCode: partner.PostCode,
		PartnerAddress:  partner.Address(),
		PartnerTel:      partner.Tel,
		PartnerFax:      partner.Fax,
		CompanyName:     company.Name,
		CompanyPostCode: company.PostCode,
		CompanyAddress:  company.Address(),
		CompanyTel:      company.Tel,
		MemberName:      pm.Member.FullName(),
		ProjectName:     pm.Project.Name,
		StartDate:       startDate,
		EndDate:         endDate,
		PaymentDeadline: s.paymentDeadline(ctx, startYear, startMonth),
		Interval:        interval,
		IsHourlyPay:     contract.IsHourlyPay,
		IsFixedCost:     contract.IsFixedCost,
		IsShowFormula:   contract.IsShowFormula,
		Comment:         contract.Comment,
	}
	applyAllowances(heading, pricing, interval)

	return &OrderData{
		Order:    order,
		Heading:  heading,
		Partner:  partner,
		Contract: contract,
	}, nil
}

// GenerateAndSave ＢＰ注文書を計算し、スナップショットと帳票ファイル
// （注文書・注文請書）を保存する。同一注文書の同時再生成はロックで排他する。
func (s *OrderService) GenerateAndSave(ctx context.Context, in *GenerateOrderInput) (*OrderData, error) {
	release, err := s.locker.Acquire(ctx, "bp_order", fmt.Sprintf("%s:%s%s", in.ProjectMemberID, in.Year, in.Month))
	if err != nil {
		return nil, err
	}
	defer release()

	data, err := s.GenerateOrderData(ctx, in)
	if err != nil {
		return nil, err
	}
	order := data.Order

	if s.renderer != nil && s.files != nil {
		content, err := s.renderer.RenderOrder(data)
		if err != nil {
			return nil, fmt.Errorf("failed to render bp order: %w", err)
		}
		filename := fmt.Sprintf("ＢＰ注文書_%s_%s_%s%s.xlsx", data.Partner.Name, data.Heading.MemberName, in.Year, in.Month)
		fileUUID, err := s.files.Save(ctx, filename, content)
		if err != nil {
			return nil, fmt.Errorf("failed to store bp order: %w", err)
		}
		order.Filename = filename
		order.FileUUID = fileUUID

		content, err = s.renderer.RenderOrderAcknowledgement(data)
		if err != nil {
			return nil, fmt.Errorf("failed to render acknowledgement: %w", err)
		}
		filename = fmt.Sprintf("ＢＰ注文請書_%s_%s_%s%s.xlsx", data.Partner.Name, data.Heading.MemberName, in.Year, in.Month)
		fileUUID, err = s.files.Save(ctx, filename, content)
		if err != nil {
			return nil, fmt.Errorf("failed to store acknowledgement: %w", err)
		}
		order.FilenameRequest = filename
		order.FileRequestUUID = fileUUID
	}

	if err := s.repos.Order.SaveWithHeading(ctx, order, data.Heading); err != nil {
		return nil, err
	}
	return data, nil
}

// SendOrder 注文書・注文請書を協力会社へメール送信する。
// 送信成功後に送信済みフラグを立てる。
func (s *OrderService) SendOrder(ctx context.Context, orderID, userID string) error {
	if s.mailer == nil {
		return bizerr.New("メール送信が設定されていません。")
	}
	order, err := s.repos.Order.FindByID(ctx, orderID)
	if err != nil {
		return bizerr.New("ＢＰ注文書が見つかりません。")
	}
	if order.FileUUID == "" {
		return bizerr.New("注文書ファイルが生成されていません。先に注文書を作成してください。")
	}
	to, cc, err := s.repos.Partner.PayNotifyRecipients(ctx, order.PartnerID)
	if err != nil {
		return fmt.Errorf("failed to get recipients: %w", err)
	}
	if len(to) == 0 {
		return bizerr.New("協力会社に送信先が設定されていません。")
	}

	attachments, err := s.orderAttachments(ctx, order)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"order":   order,
		"heading": order.Heading,
		"partner": order.Partner,
	}

	in := &mailservice.SendInput{
		GroupCode:   mailentity.MailGroupPartnerOrder,
		Recipients:  to,
		Cc:          cc,
		Context:     data,
		Attachments: attachments,
		Encrypt:     true,
		UserID:      userID,
	}
	// 送信済みフラグは送信が成功した後にだけ更新する
	postSend := func(ctx context.Context) error {
		return s.repos.Order.MarkSent(ctx, order.ID)
	}
	if err := s.mailer.Send(ctx, in, postSend); err != nil {
		return err
	}
	s.logger.Info("ＢＰ注文書を送信しました。",
		zap.String("order_no", order.OrderNo),
		zap.Strings("to", to))
	return nil
}

func (s *OrderService) orderAttachments(ctx context.Context, order *entity.BpMemberOrder) ([]mailservice.Attachment, error) {
	var attachments []mailservice.Attachment
	for _, ref := range []struct{ uuid, name string }{
		{order.FileUUID, order.Filename},
		{order.FileRequestUUID, order.FilenameRequest},
	} {
		if ref.uuid == "" {
			continue
		}
		rc, _, err := s.files.Open(ctx, ref.uuid)
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment: %w", err)
		}
		attachments = append(attachments, mailservice.Attachment{Name: ref.name, Content: content})
	}
	return attachments, nil
}

// nextOrderNo 発行日と営業担当者から次の注文番号を採番する
func (s *OrderService) nextOrderNo(ctx context.Context, publishDate time.Time, salesperson *memberentity.Salesperson) (string, error) {
	initial := ""
	if salesperson != nil {
		initial = salesperson.Initial
	}
	prefix := orderNoPrefix(publishDate, initial)
	maxNo, err := s.repos.Order.MaxOrderNoByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to get max order no: %w", err)
	}
	return NextOrderNo(prefix, maxNo), nil
}

// orderNoPrefix 注文番号のプレフィックス（EB＋発行日＋営業担当者のイニシャル）
func orderNoPrefix(publishDate time.Time, initial string) string {
	if initial == "" {
		initial = "-"
	}
	return "EB" + publishDate.Format("20060102") + initial
}

// NextOrderNo 既存の最大注文番号から次の番号（プレフィックス＋連番2桁）を求める
func NextOrderNo(prefix, maxNo string) string {
	seq := 0
	if len(maxNo) >= len(prefix)+2 {
		if n, err := strconv.Atoi(maxNo[len(prefix) : len(prefix)+2]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%02d", prefix, seq+1)
}

// paymentDeadline 支払期限を求める。会社休日の取得に失敗した場合は
// 法定休日のみで算出する。
func (s *OrderService) paymentDeadline(ctx context.Context, year, month int) time.Time {
	next := calendar.AddMonths(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), 1)
	var extra []time.Time
	if s.holidays != nil {
		var err error
		extra, err = s.holidays.ListByMonth(ctx, next.Year(), int(next.Month()))
		if err != nil {
			s.logger.Warn("会社休日の取得に失敗しました。法定休日のみで支払期限を算出します。",
				zap.Error(err))
			extra = nil
		}
	}
	return PaymentDeadline(year, month, extra)
}

// PaymentDeadline 支払期限＝翌月の第6営業日。翌月の営業日が6日に満たない
// 場合は翌月1日。
func PaymentDeadline(year, month int, extraHolidays []time.Time) time.Time {
	next := calendar.AddMonths(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), 1)
	days := calendar.BusinessDays(next.Year(), int(next.Month()), nil, extraHolidays)
	if len(days) >= 6 {
		return days[5]
	}
	return next
}

// applyAllowances 見出しに単価情報を反映する。複数月の注文書は
// 月額コスト×月数の一括金額とし、1ヶ月の注文書は契約の単価計算結果を使う。
func applyAllowances(heading *entity.BpMemberOrderHeading, pricing *Pricing, interval int) {
	contract := pricing.Contract
	if interval > 1 {
		heading.AllowanceBase = pricing.Cost() * int64(interval)
		heading.AllowanceBaseMemo = fmt.Sprintf("月額￥%s×%dヶ月分", strutil.Comma(pricing.Cost()), interval)
		return
	}
	heading.AllowanceBase = contract.AllowanceBase
	heading.AllowanceBaseMemo = contract.AllowanceBaseMemo
	heading.AllowanceTimeMin = pricing.TimeMin()
	heading.AllowanceTimeMax = pricing.TimeMax()
	heading.AllowanceTimeMemo = pricing.TimeMemo()
	heading.AllowanceOvertime = pricing.Overtime()
	heading.AllowanceOvertimeMemo = pricing.OvertimeMemo()
	heading.AllowanceAbsenteeism = pricing.Absenteeism()
	heading.AllowanceAbsenteeismMemo = pricing.AbsenteeismMemo()
	heading.AllowanceOther = contract.AllowanceOther
	heading.AllowanceOtherMemo = contract.AllowanceOtherMemo
	heading.CalculateTypeComment = pricing.CalculateTypeComment()
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
