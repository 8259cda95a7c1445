package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const redisChannel = "appointease:changes"

// RedisBus relays changes through Redis PUBLISH/SUBSCRIBE so every API
// instance sees writes made by the others.
type RedisBus struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisBus(ctx context.Context, url string, log zerolog.Logger) (*RedisBus, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisBus{
		client: client,
		log:    log.With().Str("component", "notify").Logger(),
	}, nil
}

var _ Bus = (*RedisBus)(nil)

func (b *RedisBus) Publish(ctx context.Context, c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	payload, err := json.Marshal(c)
	if err != nil {
		b.log.Error().Err(err).Msg("encode change")
		return
	}

	// the request already committed; a lost notification only delays a reload
	if err := b.client.Publish(context.WithoutCancel(ctx), redisChannel, payload).Err(); err != nil {
		b.log.Error().Err(err).Str("topic", c.Topic).Msg("publish change")
	}
}

func (b *RedisBus) Subscribe(ctx context.Context) <-chan Change {
	out := make(chan Change, subscriberBuffer)
	sub := b.client.Subscribe(ctx, redisChannel)

	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var c Change
				if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
					b.log.Warn().Err(err).Msg("discarding malformed change")
					continue
				}
				select {
				case out <- c:
				default:
					b.log.Warn().Str("topic", c.Topic).Msg("subscriber slow, dropping change")
				}
			}
		}
	}()

	return out
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}

// NewBus picks Redis when url is set and the in-process bus otherwise.
func NewBus(ctx context.Context, url string, log zerolog.Logger) (Bus, error) {
	if url == "" {
		log.Info().Msg("REDIS_URL not set, using in-process change bus")
		return NewLocalBus(log), nil
	}
	return NewRedisBus(ctx, url, log)
}
