package utils

import (
	"fmt"
	"log"
	"mediary/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

// SendEmail sends a transactional email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("Mediary", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] failed to send to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid rejected mail to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid error, code: %d", response.StatusCode)
	}
	return nil
}

// SendPayoutResultEmail notifies a wallet owner about their payout outcome
func SendPayoutResultEmail(toEmail, toName string, payoutID uint, amount decimal.Decimal, success bool, reason string) error {
	var subject, body string
	if success {
		subject = fmt.Sprintf("Payout of ₹%s processed", amount.StringFixed(2))
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your payout <b>#%d</b> of <b>₹%s</b> has been transferred to your bank account.</p>
			<p>— Team Mediary</p>`, toName, payoutID, amount.StringFixed(2))
	} else {
		subject = fmt.Sprintf("Payout of ₹%s failed", amount.StringFixed(2))
		body = fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your payout <b>#%d</b> of <b>₹%s</b> could not be processed: %s.</p>
			<p>The amount has been returned to your wallet.</p>
			<p>— Team Mediary</p>`, toName, payoutID, amount.StringFixed(2), reason)
	}

	return SendEmail(toEmail, toName, subject, body)
}
