package service

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net/mail"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/YangWanjun/ebusiness/internal/config"
	"github.com/YangWanjun/ebusiness/internal/mail/entity"
	"github.com/YangWanjun/ebusiness/internal/mail/repository"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

// Attachment 添付ファイル（ファイル名とバイト列）
type Attachment struct {
	Name    string
	Content []byte
}

// SendInput メール送信の入力。宛先・添付・テンプレート変数を呼び出し側が組み立てる。
type SendInput struct {
	GroupCode   string
	Recipients  []string
	Cc          []string
	Bcc         []string
	Context     map[string]interface{} // テンプレート変数
	Attachments []Attachment
	Encrypt     bool // 添付をZIP化しパスワードを別メールで通知する
	UserID      string
}

// PostSendCallback 送信成功後に呼び出す処理。注文書の送信済みフラグ更新などを
// 呼び出し側がクロージャとして渡す。
type PostSendCallback func(ctx context.Context) error

// Sender SMTP 送信の差し替え点（テストではフェイクに置き換える）
type Sender interface {
	Send(msg *gomail.Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(msg *gomail.Message) error {
	return s.dialer.DialAndSend(msg)
}

// MailService メールの組み立てと送信
type MailService struct {
	repo   *repository.MailRepository
	sender Sender
	cfg    config.MailConfig
	logger *zap.Logger
}

func NewMailService(repo *repository.MailRepository, cfg config.MailConfig, logger *zap.Logger) *MailService {
	return &MailService{
		repo:   repo,
		sender: &smtpSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)},
		cfg:    cfg,
		logger: logger,
	}
}

// NewMailServiceWithSender テスト用
func NewMailServiceWithSender(repo *repository.MailRepository, cfg config.MailConfig, sender Sender, logger *zap.Logger) *MailService {
	return &MailService{repo: repo, sender: sender, cfg: cfg, logger: logger}
}

// Send メールを送信する。送信成功後に postSend を呼ぶ。
func (s *MailService) Send(ctx context.Context, in *SendInput, postSend PostSendCallback) error {
	if len(in.Recipients) == 0 {
		return bizerr.New("宛先はありません。")
	}
	if err := validateAddresses(in.Recipients, in.Cc, in.Bcc); err != nil {
		return err
	}

	group, err := s.groupByCode(ctx, in.GroupCode)
	if err != nil {
		return err
	}
	title, body, passTitle, passBody, err := renderTemplates(group, in.Context)
	if err != nil {
		return err
	}
	if title == "" {
		return bizerr.New("メールの題名を設定してください。")
	}

	cc := append([]string{}, in.Cc...)
	bcc := append([]string{}, in.Bcc...)
	for _, item := range group.CcList {
		if item.IsBcc {
			bcc = append(bcc, item.Email)
		} else {
			cc = append(cc, item.Email)
		}
	}

	sender := group.FullSender()
	if group.Sender == "" {
		sender = s.cfg.Sender
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", sender)
	msg.SetHeader("To", in.Recipients...)
	if len(cc) > 0 {
		msg.SetHeader("Cc", cc...)
	}
	if len(bcc) > 0 {
		msg.SetHeader("Bcc", bcc...)
	}
	msg.SetHeader("Subject", title)
	msg.SetBody("text/plain", body)

	var password string
	attachmentNames := make([]string, 0, len(in.Attachments))
	for _, a := range in.Attachments {
		attachmentNames = append(attachmentNames, a.Name)
	}
	if in.Encrypt && len(in.Attachments) > 0 {
		// 添付をまとめてZIP化し、パスワードは別メールで通知する。
		// パスワード付きZIPは標準では作れないため、アーカイブ自体は平文ZIP。
		password, err = generatePassword(8)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		archive, err := zipAttachments(in.Attachments)
		if err != nil {
			return err
		}
		attach(msg, title+".zip", archive)
	} else {
		for _, a := range in.Attachments {
			attach(msg, a.Name, a.Content)
		}
	}

	if err := s.sender.Send(msg); err != nil {
		s.logger.Error("メール送信に失敗しました。",
			zap.String("title", title),
			zap.Strings("to", in.Recipients),
			zap.Error(err))
		return bizerr.New("メール送信に失敗しました：%s", err)
	}
	s.logger.Info("メールを送信しました。",
		zap.String("title", title),
		zap.Strings("to", in.Recipients),
		zap.Strings("cc", cc))
	s.writeLog(ctx, in.UserID, sender, in.Recipients, cc, bcc, title, body, strings.Join(attachmentNames, ","))

	// パスワード通知
	if password != "" {
		if err := s.sendPassword(ctx, in, sender, title, passTitle, passBody, password, cc); err != nil {
			return err
		}
	}

	if postSend != nil {
		if err := postSend(ctx); err != nil {
			return fmt.Errorf("post-send callback failed: %w", err)
		}
	}
	return nil
}

func (s *MailService) sendPassword(ctx context.Context, in *SendInput, sender, title, passTitle, passBody, password string, cc []string) error {
	subject := passTitle
	if subject == "" {
		subject = title
	}
	body := strings.ReplaceAll(passBody, "{password}", password)
	if body == "" {
		body = "PW: " + password
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", sender)
	msg.SetHeader("To", in.Recipients...)
	if len(cc) > 0 {
		msg.SetHeader("Cc", cc...)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.sender.Send(msg); err != nil {
		return bizerr.New("パスワード通知メールの送信に失敗しました：%s", err)
	}
	s.logger.Info("パスワード通知メールを送信しました。", zap.String("title", title))
	s.writeLog(ctx, in.UserID, sender, in.Recipients, cc, nil, subject, body, "")
	return nil
}

func (s *MailService) groupByCode(ctx context.Context, code string) (*entity.MailGroup, error) {
	groups, err := s.repo.ListGroupsByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load mail group: %w", err)
	}
	switch len(groups) {
	case 0:
		return nil, bizerr.New("メールグループ（%s）が見つかりません。", code)
	case 1:
		return &groups[0], nil
	default:
		return nil, bizerr.New("メールグループ（%s）が複数存在します。", code)
	}
}

func (s *MailService) writeLog(ctx context.Context, userID, sender string, to, cc, bcc []string, title, body, attachment string) {
	log := &entity.EmailLog{
		ID:         uuid.New().String()[:32],
		ActionTime: time.Now(),
		UserID:     userID,
		Sender:     sender,
		Recipient:  strings.Join(to, ","),
		Cc:         strings.Join(cc, ","),
		Bcc:        strings.Join(bcc, ","),
		Title:      title,
		Body:       body,
		Attachment: attachment,
	}
	if err := s.repo.CreateLog(ctx, log); err != nil {
		s.logger.Warn("メール送信履歴の登録に失敗しました。", zap.Error(err))
	}
}

// renderTemplates グループのテンプレートから題名・本文・パスワード通知文を組み立てる
func renderTemplates(group *entity.MailGroup, data map[string]interface{}) (title, body, passTitle, passBody string, err error) {
	if group.Template == nil {
		return "", "", "", "", bizerr.New("メールグループ「%s」にテンプレートが設定されていません。", group.Name)
	}
	title, err = renderTemplate(group.Template.MailTitle, data)
	if err != nil {
		return "", "", "", "", err
	}
	body, err = renderTemplate(group.Template.MailBody, data)
	if err != nil {
		return "", "", "", "", err
	}
	if group.Footer != nil && group.Footer.MailBody != "" {
		footer, err := renderTemplate(group.Footer.MailBody, data)
		if err != nil {
			return "", "", "", "", err
		}
		body = body + "\n" + footer
	}
	passTitle, err = renderTemplate(group.Template.PassTitle, data)
	if err != nil {
		return "", "", "", "", err
	}
	passBody = group.Template.PassBody
	return title, body, passTitle, passBody, nil
}

func renderTemplate(text string, data map[string]interface{}) (string, error) {
	if text == "" {
		return "", nil
	}
	t, err := template.New("mail").Parse(text)
	if err != nil {
		return "", bizerr.New("メールテンプレートの形式が不正です：%s", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", bizerr.New("メールテンプレートの展開に失敗しました：%s", err)
	}
	return buf.String(), nil
}

func validateAddresses(lists ...[]string) error {
	for _, list := range lists {
		for _, address := range list {
			if _, err := mail.ParseAddress(address); err != nil {
				return bizerr.New("有効なメールアドレスを入れてください：%s", address)
			}
		}
	}
	return nil
}

func zipAttachments(attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, a := range attachments {
		f, err := w.Create(a.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := f.Write(a.Content); err != nil {
			return nil, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip: %w", err)
	}
	return buf.Bytes(), nil
}

func attach(msg *gomail.Message, name string, content []byte) {
	msg.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}))
}

const passwordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generatePassword(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordChars[n.Int64()])
	}
	return b.String(), nil
}
