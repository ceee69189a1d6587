package utils

import (
	"fmt"
	"lms/config"
	courseModels "lms/models/course"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// getEmailTemplate wraps body content in the platform's email layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C6E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C6E; line-height: 1.6; }
			.cert-number { font-size: 20px; font-weight: bold; letter-spacing: 2px; text-align: center; padding: 16px; background: #F0F4FA; border-radius: 6px; }
			.footer { padding: 20px 30px; text-align: center; color: #999999; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">This is an automated message. Please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendCertificateIssuedEmail tells a learner their session certificate is ready
func SendCertificateIssuedEmail(email, name string, cert courseModels.Certificate) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed <strong>%s</strong> with a score of <strong>%.1f%%</strong> and your certificate has been issued.</p>
		<div class="cert-number">%s</div>
		<p>You can view and download your certificate from your dashboard.</p>`,
		name, cert.ArchivedSessionTitle, cert.ArchivedScorePercentage, cert.CertificateNumber)

	return SendEmail([]string{email}, "Your certificate is ready!", getEmailTemplate("Certificate Issued", body))
}
