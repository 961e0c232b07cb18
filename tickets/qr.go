package tickets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

var hmacSecret = []byte(ticketSecret())

func ticketSecret() string {
	if s := os.Getenv("TICKET_SECRET"); s != "" {
		return s
	}
	return "kasibeats-ticket-secret"
}

// GenerateQRPayload returns a signed payload: eventID|ticketID|uniqueCode|signature.
// The signature binds the code to its event and ticket so a QR cannot be
// replayed against a different event.
func GenerateQRPayload(eventID, ticketID, uniqueCode string) string {
	data := fmt.Sprintf("%s|%s|%s", eventID, ticketID, uniqueCode)

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyTicketQR checks a scanned payload and returns its parts.
func VerifyTicketQR(payload string) (eventID, ticketID, uniqueCode string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", "", errors.New("invalid QR format")
	}

	eventID = parts[0]
	ticketID = parts[1]
	uniqueCode = parts[2]
	signature := parts[3]

	data := fmt.Sprintf("%s|%s|%s", eventID, ticketID, uniqueCode)
	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	expectedSig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSig)) {
		return "", "", "", errors.New("invalid signature")
	}

	return eventID, ticketID, uniqueCode, nil
}
