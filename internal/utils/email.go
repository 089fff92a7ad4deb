package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/wneessen/go-mail"

	"tibeb_back_end/internal/models"
)

// SendMail envoie un e-mail HTML via le SMTP configuré.
func SendMail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@tibeb.et"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// NotifyOrderPlaced envoie la confirmation de commande. Appelé sur une
// goroutine après la persistance : un échec est loggé, jamais remonté
// dans la réponse de l'opération principale.
func NotifyOrderPlaced(order models.Order, userEmail string) {
	subject := fmt.Sprintf("🧵 Confirmation de votre commande %s - TIBEB", order.ID)
	if err := SendMail(userEmail, subject, orderConfirmationHTML(order)); err != nil {
		log.Printf("❌ Erreur envoi email confirmation commande %s: %v", order.ID, err)
	}
}

// NotifyContactMessage prévient l'équipe d'un nouveau message de contact.
func NotifyContactMessage(msg models.ContactMessage) {
	to := os.Getenv("CONTACT_NOTIFY_EMAIL")
	if to == "" {
		return
	}
	body := fmt.Sprintf(`<p><strong>%s</strong> (%s) a écrit :</p><blockquote>%s</blockquote>`,
		msg.FullName, msg.Email, msg.Message)
	if err := SendMail(to, "📬 Nouveau message de contact - TIBEB", body); err != nil {
		log.Printf("❌ Erreur envoi notification contact: %v", err)
	}
}

func orderConfirmationHTML(order models.Order) string {
	var rows strings.Builder
	for _, line := range order.Lines {
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f ETB</td>
				<td>%.2f ETB</td>
			</tr>`, line.ProductName, line.Quantity, line.PriceAtPurchase,
			line.PriceAtPurchase*float64(line.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a bien été enregistrée.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f ETB</td>
				</tr>
			</tfoot>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe TIBEB</strong>
		</p>
	</div>
</body>
</html>`, rows.String(), order.TotalAmount)
}
