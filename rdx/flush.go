package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/SMT2501/kasiBeats/db"
	"github.com/SMT2501/kasiBeats/globals"

	"go.mongodb.org/mongo-driver/bson"
)

// FlushRedisLikes periodically writes Redis-cached like counters back to the
// posts collection. Counters live under like:count:post:<postid>.
func FlushRedisLikes() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "like:count:post:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 4 {
				log.Println("Invalid Redis like key format:", key)
				continue
			}
			postID := parts[3]

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}

			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse like count:", countStr)
				continue
			}

			_, err = db.PostsCollection.UpdateOne(globals.Ctx,
				bson.M{"postid": postID},
				bson.M{"$set": bson.M{"likes": count}},
			)
			if err != nil {
				log.Println("MongoDB update error for post", postID, ":", err)
				continue
			}

			if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
				log.Println("Failed to delete Redis key:", key)
			}
		}
	}
}
