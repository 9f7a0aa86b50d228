// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendScreeningAlert(toEmail, orgName string, previousCount, newCount int64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

// SendScreeningAlert notifies the organization contact that its set of
// applicable obligations changed after a re-screening run.
func (s *emailService) SendScreeningAlert(toEmail, orgName string, previousCount, newCount int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your applicable regulations have changed")

	dashboardLink := fmt.Sprintf("%s/screening", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Screening update for %s</h2>
			<p>A recent change to your organization profile changed the set of regulations that apply to you:</p>
			<p style="font-size: 18px;"><strong>%d</strong> obligations previously &rarr; <strong>%d</strong> obligations now.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Review your screening results</a>
			<p>If you did not change your profile, please contact support.</p>
		</div>
	`, orgName, previousCount, newCount, dashboardLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send screening alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Screening alert sent to %s\n", toEmail)
	return nil
}
