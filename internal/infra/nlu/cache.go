package nlu

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "nlu:classify:"

// CachedClassifier memoizes classifications of identical turns in Redis.
// Cache failures fall through to the wrapped classifier.
type CachedClassifier struct {
	next   dispatch.Classifier
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClassifier(next dispatch.Classifier, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedClassifier{next: next, redis: rdb, ttl: ttl, logger: logger}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string, history []intent.Message) (intent.Classification, error) {
	key := cacheKey(text, history)
	if cls, ok := c.read(ctx, key); ok {
		return cls, nil
	}

	cls, err := c.next.Classify(ctx, text, history)
	if err != nil {
		return intent.Classification{}, err
	}
	c.write(ctx, key, cls)
	return cls, nil
}

func (c *CachedClassifier) read(ctx context.Context, key string) (intent.Classification, bool) {
	if c.redis == nil || c.ttl <= 0 {
		return intent.Classification{}, false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "classification cache read failed", slog.String("error", err.Error()))
		}
		return intent.Classification{}, false
	}
	var w classification
	if err := json.Unmarshal(val, &w); err != nil {
		return intent.Classification{}, false
	}
	cls, err := w.toDomain()
	if err != nil {
		return intent.Classification{}, false
	}
	return cls, true
}

func (c *CachedClassifier) write(ctx context.Context, key string, cls intent.Classification) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(fromDomain(cls))
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "classification cache write failed", slog.String("error", err.Error()))
	}
}

func cacheKey(text string, history []intent.Message) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(classifyRequest{Text: text, History: encodeHistory(history)})
	return cachePrefix + hex.EncodeToString(h.Sum(nil))
}
