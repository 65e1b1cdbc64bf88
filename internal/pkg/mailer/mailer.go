package mailer

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Dispatcher отправляет письма чат-приложения. Доставка синхронная,
// ошибки доставки отдаются вызывающему как есть.
type Dispatcher interface {
	SendOTP(to, otp string) error
	SendInvite(chatName, token, to string, chatID uuid.UUID) error
}

type Sender struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSender(host string, port int, username, password, from, baseURL string) *Sender {
	dialer := gomail.NewDialer(host, port, username, password)
	return &Sender{
		dialer:  dialer,
		from:    from,
		baseURL: baseURL,
	}
}

func (s *Sender) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}

func (s *Sender) SendOTP(to, otp string) error {
	subject := "OTP for Login"
	body := fmt.Sprintf("Your OTP is %s. It expires in 5 minutes.", otp)
	return s.sendEmail(to, subject, body)
}

func (s *Sender) SendInvite(chatName, token, to string, chatID uuid.UUID) error {
	subject := fmt.Sprintf("Email invite to be in %s group", chatName)
	body := fmt.Sprintf("Join %s by accepting the url below.\n%s/joingroup/%s?token=%s",
		chatName, s.baseURL, chatID, token)
	return s.sendEmail(to, subject, body)
}
