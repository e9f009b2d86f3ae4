package qrcode

import (
	"github.com/skip2/go-qrcode"
)

// Generator renders share QR codes for job postings.
type Generator struct {
	baseURL string
}

// NewGenerator creates a QR code generator rooted at the public base URL.
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: baseURL,
	}
}

// JobShareCode generates a PNG QR code pointing at a job's public page.
func (g *Generator) JobShareCode(jobID string, size int) ([]byte, error) {
	targetURL := g.baseURL + "/jobs/" + jobID

	var png []byte
	png, err := qrcode.Encode(targetURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}

	return png, nil
}
