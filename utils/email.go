package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type MailMessage struct {
	To          []string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type Mailer interface {
	Send(msg MailMessage) error
}

// GomailMailer gửi mail html có file đính kèm (báo giá, vé máy bay)
type GomailMailer struct {
	cfg SMTPConfig
}

func NewGomailMailer(cfg SMTPConfig) *GomailMailer {
	return &GomailMailer{cfg: cfg}
}

func (m *GomailMailer) Send(msg MailMessage) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.From)
	message.SetHeader("To", msg.To...)
	message.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		message.SetBody("text/plain", msg.Text)
	}
	if msg.HTML != "" {
		if msg.Text != "" {
			message.AddAlternative("text/html", msg.HTML)
		} else {
			message.SetBody("text/html", msg.HTML)
		}
	}
	for _, a := range msg.Attachments {
		data := a.Data
		message.Attach(a.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SimpleMailer gửi mail thông báo không đính kèm (reset mật khẩu, xác nhận inquiry)
type SimpleMailer struct {
	cfg SMTPConfig
}

func NewSimpleMailer(cfg SMTPConfig) *SimpleMailer {
	return &SimpleMailer{cfg: cfg}
}

func (m *SimpleMailer) Send(msg MailMessage) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp host is not configured")
	}
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Name, a.ContentType); err != nil {
			return fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendAsync gửi mail trong goroutine, chỉ log lỗi
func SendAsync(m Mailer, msg MailMessage) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(msg); err != nil {
			zap.L().Error("async mail failed", zap.Strings("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		}
	}()
}
