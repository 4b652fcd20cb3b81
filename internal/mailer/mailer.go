package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/decorabur/decora-api/internal/config"
	"github.com/decorabur/decora-api/internal/models"
)

// Mailer sends back-office notifications for incoming quote and contact
// requests. A nil *Mailer (SMTP unconfigured) is a valid no-op sender;
// notification failures are logged and never fail the originating request.
type Mailer struct {
	host string
	port string
	user string
	pass string
	to   string
}

func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return nil
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.NotifyEmail,
	}
}

func (m *Mailer) NotifyQuote(q models.Quote) {
	if m == nil {
		return
	}
	subject := fmt.Sprintf("Nouvelle demande de devis - %s", q.Name)
	body := requestBody("demande de devis", q.ID, q.Name, q.Email, q.Phone, q.Subject, q.Message, q.CreatedAt)
	m.send(subject, body)
}

func (m *Mailer) NotifyContact(r models.ContactRequest) {
	if m == nil {
		return
	}
	subject := fmt.Sprintf("Nouvelle demande de contact - %s", r.Name)
	body := requestBody("demande de contact", r.ID, r.Name, r.Email, r.Phone, r.Subject, r.Message, r.CreatedAt)
	m.send(subject, body)
}

func (m *Mailer) send(subject, body string) {
	msg := strings.Join([]string{
		"From: " + m.user,
		"To: " + m.to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.user, []string{m.to}, []byte(msg)); err != nil {
		log.Println("notification mail failed:", err)
	}
}

func requestBody(kind string, id uint, name, email, phone, subject, message string, createdAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nouvelle %s recue via le site Decora.\n\n", kind)
	fmt.Fprintf(&b, "ID: #%d\n", id)
	fmt.Fprintf(&b, "Nom: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	if phone != "" {
		fmt.Fprintf(&b, "Telephone: %s\n", phone)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", createdAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Sujet: %s\n\n", subject)
	fmt.Fprintf(&b, "Message:\n%s\n", message)
	return b.String()
}
