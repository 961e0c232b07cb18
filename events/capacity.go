package events

import (
	"context"

	"github.com/SMT2501/kasiBeats/db"

	"go.mongodb.org/mongo-driver/bson"
)

// Roster mutations are single-field atomic updates against the event
// document. $addToSet and $pull make each call idempotent, so a retried
// accept or reject converges to the same rosters.

// AddPendingDJ records a DJ awaiting a decision on the event.
func AddPendingDJ(ctx context.Context, eventID, djID string) error {
	_, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$addToSet": bson.M{"pending_djs": djID}},
	)
	if err == nil {
		dropCached(eventID)
	}
	return err
}

// PromoteDJ moves a DJ from the pending roster onto the booked roster.
func PromoteDJ(ctx context.Context, eventID, djID string) error {
	_, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{
			"$addToSet": bson.M{"djs_booked": djID},
			"$pull":     bson.M{"pending_djs": djID},
		},
	)
	if err == nil {
		dropCached(eventID)
	}
	return err
}

// RemovePendingDJ drops a DJ from the pending roster after a rejection
// or a cancelled request.
func RemovePendingDJ(ctx context.Context, eventID, djID string) error {
	_, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$pull": bson.M{"pending_djs": djID}},
	)
	if err == nil {
		dropCached(eventID)
	}
	return err
}

// RecordTicketSale bumps the sold counter and revenue after a completed
// purchase. Counters are write-through; nothing ever re-derives them from
// the tickets collection.
func RecordTicketSale(ctx context.Context, eventID string, quantity int, amount float64) error {
	_, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$inc": bson.M{
			"tickets_sold": quantity,
			"revenue":      amount,
		}},
	)
	if err == nil {
		dropCached(eventID)
	}
	return err
}
