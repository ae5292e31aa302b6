package helper

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRCodePNG: PNG QR untuk content (recovery level medium).
func QRCodePNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}

// QRCodeDataURI: "data:image/png;base64,..." siap dipakai di <img src>.
func QRCodeDataURI(content string) (string, error) {
	png, err := QRCodePNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
