package services

import (
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"qrcheckctl/internal/domain"
)

const defaultQRSize = 300

// qrPayload is what admission scanners read. It carries the participant's
// public identifier plus display fields; nothing in it is a credential.
type qrPayload struct {
	PublicID  string `json:"id_public"`
	Name      string `json:"nome"`
	Surname   string `json:"sobrenome"`
	Timestamp string `json:"timestamp"`
}

// QRCodeService renders the participant's admission QR code.
type QRCodeService struct {
	size  int
	clock func() time.Time
}

// NewQRCodeService returns a QRCodeService rendering PNGs of the given pixel
// size; size <= 0 selects the default.
func NewQRCodeService(size int) *QRCodeService {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QRCodeService{size: size, clock: time.Now}
}

// Payload returns the JSON the QR code encodes for the participant.
func (s *QRCodeService) Payload(p *domain.Participant) (string, error) {
	data, err := json.Marshal(qrPayload{
		PublicID:  p.PublicID.String(),
		Name:      p.Name,
		Surname:   p.Surname,
		Timestamp: s.clock().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(data), nil
}

// PNG renders the participant's admission QR code as a PNG image.
func (s *QRCodeService) PNG(p *domain.Participant) ([]byte, error) {
	payload, err := s.Payload(p)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}

// Terminal renders the participant's admission QR code as terminal block art.
func (s *QRCodeService) Terminal(p *domain.Participant) (string, error) {
	payload, err := s.Payload(p)
	if err != nil {
		return "", err
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return code.ToSmallString(false), nil
}
