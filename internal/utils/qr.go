package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateTrackingQR encode l'URL de suivi d'une commande en QR base64 prêt
// à mettre dans <img src="...">.
func GenerateTrackingQR(orderURL string) (string, error) {
	png, err := qrcode.Encode(orderURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
