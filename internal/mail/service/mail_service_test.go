package service

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/YangWanjun/ebusiness/internal/mail/entity"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

func TestRenderTemplates(t *testing.T) {
	group := &entity.MailGroup{
		Name: "ＢＰ注文書",
		Template: &entity.MailTemplate{
			MailTitle: "【{{.company}}】{{.year}}年{{.month}}月 注文書の送付",
			MailBody:  "{{.partner}} 御中\n注文書をお送りします。",
			PassTitle: "【{{.company}}】パスワードのお知らせ",
			PassBody:  "PW: {password}",
		},
		Footer: &entity.MailTemplate{MailBody: "イーＢＰ株式会社"},
	}
	data := map[string]interface{}{
		"company": "イーＢＰ",
		"partner": "パートナー株式会社",
		"year":    "2024",
		"month":   "03",
	}

	title, body, passTitle, passBody, err := renderTemplates(group, data)
	if err != nil {
		t.Fatalf("renderTemplates: %v", err)
	}
	if title != "【イーＢＰ】2024年03月 注文書の送付" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(body, "パートナー株式会社 御中") {
		t.Errorf("body = %q, want partner name", body)
	}
	if !strings.Contains(body, "イーＢＰ株式会社") {
		t.Errorf("body = %q, want footer", body)
	}
	if passTitle != "【イーＢＰ】パスワードのお知らせ" {
		t.Errorf("passTitle = %q", passTitle)
	}
	if passBody != "PW: {password}" {
		t.Errorf("passBody = %q", passBody)
	}
}

func TestRenderTemplatesMissingTemplate(t *testing.T) {
	group := &entity.MailGroup{Name: "支払通知書"}
	_, _, _, _, err := renderTemplates(group, nil)
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if !bizerr.Is(err) {
		t.Errorf("expected domain error, got %T", err)
	}
}

func TestValidateAddresses(t *testing.T) {
	if err := validateAddresses([]string{"taro@example.com"}, []string{"hanako@example.com"}); err != nil {
		t.Errorf("valid addresses: %v", err)
	}
	err := validateAddresses([]string{"not-an-address"})
	if err == nil {
		t.Fatal("expected error for invalid address")
	}
	if !bizerr.Is(err) {
		t.Errorf("expected domain error, got %T", err)
	}
}

func TestZipAttachments(t *testing.T) {
	attachments := []Attachment{
		{Name: "注文書.xlsx", Content: []byte("order")},
		{Name: "注文請書.xlsx", Content: []byte("ack")},
	}
	archive, err := zipAttachments(attachments)
	if err != nil {
		t.Fatalf("zipAttachments: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("archive has %d entries, want 2", len(reader.File))
	}
	rc, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	if string(content) != "order" {
		t.Errorf("entry content = %q, want order", content)
	}
}

func TestGeneratePassword(t *testing.T) {
	password, err := generatePassword(8)
	if err != nil {
		t.Fatalf("generatePassword: %v", err)
	}
	if len(password) != 8 {
		t.Errorf("password length = %d, want 8", len(password))
	}
	for _, c := range password {
		if !strings.ContainsRune(passwordChars, c) {
			t.Errorf("password contains unexpected character %q", c)
		}
	}
}
