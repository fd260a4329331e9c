package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisChannel = "dispatch:available"

// Redis is a Broadcast backed by Redis pub/sub so that several scheduler
// instances can share availability signals.
type Redis struct {
	rdb    *redis.Client
	cancel context.CancelFunc
}

// NewRedisBroadcast connects to the given redis URL (redis://host:port/db).
func NewRedisBroadcast(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{rdb: redis.NewClient(opts)}, nil
}

func (r *Redis) Publish(evt *Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return r.rdb.Publish(context.Background(), redisChannel, data).Err()
}

func (r *Redis) Subscribe() (<-chan *Event, error) {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	sub := r.rdb.Subscribe(ctx, redisChannel)
	// force the subscription to be established before we return
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		return nil, err
	}

	out := make(chan *Event, 64)
	go func() {
		defer close(out)
		defer sub.Close()
		for msg := range sub.Channel() {
			evt := &Event{}
			if err := json.Unmarshal([]byte(msg.Payload), evt); err != nil {
				log.Warn().Err(err).Msg("dropping malformed availability event")
				continue
			}
			out <- evt
		}
	}()
	return out, nil
}

func (r *Redis) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return r.rdb.Close()
}
