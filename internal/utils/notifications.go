package utils

import (
	"fmt"
	"log"
	"os"

	"plantnet_back_end/internal/models"
)

func frontendURL() string {
	u := os.Getenv("FRONTEND_URL")
	if u == "" {
		return "http://localhost:5173"
	}
	return u
}

// SendWelcomeEmail envoie un email de bienvenue à la première connexion.
func SendWelcomeEmail(userEmail, userName string) error {
	subject := "🌱 Bienvenue sur plantNet !"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #15803d;">🌱 Bienvenue %s !</h2>
		<p>Merci de vous être inscrit sur plantNet, le marché des passionnés de plantes.</p>
		<p>Parcourez le catalogue, ou demandez le statut vendeur pour proposer vos propres plantes.</p>
		<a href="%s" style="display: inline-block; padding: 12px 24px; background: #15803d; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0;">Découvrir les plantes</a>
	</div>
</body>
</html>
`, userName, frontendURL())

	return SendEmail(userEmail, subject, html)
}

// SendOrderConfirmationEmail confirme la commande au client, avec un QR de
// suivi. Best-effort : l'échec est journalisé par l'appelant.
func SendOrderConfirmationEmail(order models.Order, plantName string) error {
	subject := "✅ Confirmation de votre commande plantNet"

	trackURL := fmt.Sprintf("%s/dashboard/my-orders", frontendURL())
	qr, err := GenerateTrackingQR(trackURL)
	if err != nil {
		log.Println("⚠️ Erreur génération QR de suivi:", err)
		qr = ""
	}

	qrHTML := ""
	if qr != "" {
		qrHTML = fmt.Sprintf(`<p style="text-align: center;"><img src="%s" alt="QR de suivi" width="160" height="160"/></p>`, qr)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #15803d;">Confirmation de votre commande</h2>
		<p>Bonjour %s,</p>
		<p>Votre commande a été enregistrée avec succès.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr style="background-color: #f0f0f0;">
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Plante</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
				<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
			</tr>
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f$</td>
			</tr>
		</table>
		<p>Scannez ce code pour suivre votre commande :</p>
		%s
		<p style="margin-top: 30px; color: #555;">Cordialement,<br><strong>L'équipe plantNet</strong></p>
	</div>
</body>
</html>
`, order.Customer.Name, plantName, order.Quantity, order.Price, qrHTML)

	return SendEmail(order.Customer.Email, subject, html)
}

// SendSellerOrderAlert prévient le vendeur qu'une commande attend sa
// préparation.
func SendSellerOrderAlert(order models.Order, plantName string) error {
	subject := "📦 Nouvelle commande à préparer - plantNet"

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #15803d;">📦 Nouvelle commande</h2>
		<p>Une commande vient d'être passée sur votre plante <strong>%s</strong>.</p>
		<p><strong>Quantité :</strong> %d<br>
		<strong>Client :</strong> %s (%s)<br>
		<strong>Adresse :</strong> %s</p>
		<a href="%s/dashboard/manage-orders" style="display: inline-block; padding: 12px 24px; background: #15803d; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0;">Gérer mes commandes</a>
	</div>
</body>
</html>
`, plantName, order.Quantity, order.Customer.Name, order.Customer.Email, order.Address, frontendURL())

	return SendEmail(order.Seller, subject, html)
}

// SendOrderStatusEmail notifie le client d'un changement de statut.
func SendOrderStatusEmail(order models.Order, newStatus string) error {
	subject := getStatusEmailSubject(newStatus)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #15803d;">Mise à jour de votre commande</h2>
		<p>Bonjour %s,</p>
		<p>%s</p>
		<p><strong>Commande :</strong> #%s<br>
		<strong>Nouveau statut :</strong> %s</p>
		<p style="margin-top: 30px; color: #555;">Cordialement,<br><strong>L'équipe plantNet</strong></p>
	</div>
</body>
</html>
`, order.Customer.Name, getStatusMessage(newStatus), order.ID.Hex(), newStatus)

	return SendEmail(order.Customer.Email, subject, html)
}

func getStatusEmailSubject(status string) string {
	switch status {
	case models.OrderInProgress:
		return "📦 Votre commande est en préparation - plantNet"
	case models.OrderDelivered:
		return "🎉 Votre commande a été livrée - plantNet"
	default:
		return "📋 Mise à jour de votre commande - plantNet"
	}
}

func getStatusMessage(status string) string {
	switch status {
	case models.OrderInProgress:
		return "Bonne nouvelle ! Le vendeur prépare votre commande."
	case models.OrderDelivered:
		return "Votre commande a été livrée. Nous espérons que vos plantes se plaisent chez vous !"
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}
