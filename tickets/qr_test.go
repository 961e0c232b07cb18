package tickets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := GenerateQRPayload("e1", "t1", "12345678")

	eventID, ticketID, uniqueCode, err := VerifyTicketQR(payload)
	assert.NoError(t, err)
	assert.Equal(t, "e1", eventID)
	assert.Equal(t, "t1", ticketID)
	assert.Equal(t, "12345678", uniqueCode)
}

func TestQRPayloadTamperedCode(t *testing.T) {
	payload := GenerateQRPayload("e1", "t1", "12345678")
	tampered := strings.Replace(payload, "12345678", "87654321", 1)

	_, _, _, err := VerifyTicketQR(tampered)
	assert.Error(t, err)
}

func TestQRPayloadWrongEvent(t *testing.T) {
	payload := GenerateQRPayload("e1", "t1", "12345678")
	tampered := strings.Replace(payload, "e1|", "e2|", 1)

	_, _, _, err := VerifyTicketQR(tampered)
	assert.Error(t, err)
}

func TestQRPayloadMalformed(t *testing.T) {
	_, _, _, err := VerifyTicketQR("not-a-payload")
	assert.Error(t, err)

	_, _, _, err = VerifyTicketQR("a|b|c")
	assert.Error(t, err)
}
