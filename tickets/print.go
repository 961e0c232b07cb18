package tickets

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// PrintTicket renders a ticket as a PDF with a signed QR code. Only the
// ticket holder can print their own ticket.
func PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestingUserID, ok := utils.GetUserIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	ticketID := ps.ByName("ticketid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ticket models.Ticket
	err := db.TicketsCollection.FindOne(ctx, bson.M{
		"ticketid": ticketID,
		"userid":   requestingUserID,
	}).Decode(&ticket)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ticket not found")
		return
	}
	if ticket.Status != models.TicketConfirmed {
		utils.RespondWithError(w, http.StatusConflict, "Ticket is "+ticket.Status)
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": ticket.EventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	qrPayload := GenerateQRPayload(ticket.EventID, ticket.TicketID, ticket.UniqueCode)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "KasiBeats Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", event.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", event.Location))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", event.Date.Format("Mon, 02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Code: %s", ticket.UniqueCode))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ticket-"+ticket.UniqueCode+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
