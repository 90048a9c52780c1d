package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ReceiptEmailData carries the values rendered into the receipt email body.
type ReceiptEmailData struct {
	ClientName    string
	OrderNumber   string
	ReceiptNumber string
	BranchName    string
	TotalAmount   string
	BalanceAmount string
	CompletionBy  string
}

// SendReceiptEmail sends the order receipt to the client, attaching the PDF
// when one is provided.
func (s *EmailService) SendReceiptEmail(toEmail string, data ReceiptEmailData, pdf []byte) error {
	htmlContent, err := s.renderReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Квитанція %s — Хімчистка AKSI", data.ReceiptNumber)

	var message []byte
	if len(pdf) > 0 {
		message = s.buildEmailWithAttachment(toEmail, subject, htmlContent,
			data.ReceiptNumber+".pdf", pdf)
	} else {
		message = s.buildHTMLEmail(toEmail, subject, htmlContent)
	}

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds a plain HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// buildEmailWithAttachment builds a multipart email with an HTML body and a
// single PDF attachment.
func (s *EmailService) buildEmailWithAttachment(to, subject, htmlBody, filename string, pdf []byte) []byte {
	boundary := "aksi-receipt-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(htmlBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// wrap base64 at 76 chars per RFC 2045
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(data ReceiptEmailData) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// receiptTemplate is the HTML template for receipt emails
const receiptTemplate = `
<!DOCTYPE html>
<html lang="uk">
<head>
    <meta charset="UTF-8">
    <title>Квитанція {{.ReceiptNumber}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1a3c6e; padding: 24px; text-align: center;">
                            <span style="color: #ffffff; font-size: 22px; font-weight: bold;">Хімчистка AKSI</span>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px;">
                            <p style="font-size: 16px;">Шановний(а) {{.ClientName}},</p>
                            <p>Дякуємо за ваше замовлення <b>{{.OrderNumber}}</b> у філії {{.BranchName}}.</p>
                            <table style="width: 100%; margin: 16px 0; font-size: 15px;">
                                <tr><td>Квитанція</td><td style="text-align: right;"><b>{{.ReceiptNumber}}</b></td></tr>
                                <tr><td>До сплати</td><td style="text-align: right;"><b>{{.TotalAmount}}</b></td></tr>
                                <tr><td>Залишок</td><td style="text-align: right;"><b>{{.BalanceAmount}}</b></td></tr>
                                <tr><td>Готовність</td><td style="text-align: right;"><b>{{.CompletionBy}}</b></td></tr>
                            </table>
                            <p style="color: #6b7280; font-size: 13px;">Квитанція у форматі PDF додана до цього листа.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
