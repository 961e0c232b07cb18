package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/SMT2501/kasiBeats/models"
	"github.com/SMT2501/kasiBeats/rdx"
)

const pushChannel = "push-events"

// EmitPush publishes a push notification to Redis for the delivery worker.
// Failures are logged and swallowed; push delivery never blocks a request.
func EmitPush(ctx context.Context, msg models.PushMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[EmitPush] failed to marshal push message: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, pushChannel, data).Err(); err != nil {
		log.Printf("[EmitPush] failed to publish push message: %v", err)
	}
}

// StartPushWorker consumes push messages and hands them to the delivery hook.
// Deliver is a var so tests and alternative transports can swap it out; the
// default logs the payload, which is also the dev-mode behavior when no FCM
// credentials are configured.
var Deliver = func(ctx context.Context, msg models.PushMessage) error {
	log.Printf("[PushWorker] deliver token=%s title=%q body=%q", msg.Token, msg.Title, msg.Body)
	return nil
}

func StartPushWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, pushChannel)
	ch := sub.Channel()

	log.Println("[PushWorker] Listening for push events...")

	for msg := range ch {
		var event models.PushMessage
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[PushWorker] Failed to parse event: %v", err)
			continue
		}
		if event.Token == "" {
			continue
		}
		if err := Deliver(ctx, event); err != nil {
			log.Printf("[PushWorker] delivery error: %v", err)
		}
	}
}
