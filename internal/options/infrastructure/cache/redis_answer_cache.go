package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/wyfcoding/optioncalc/internal/options/domain"
)

// keyVersion 结果格式或优化参数变化时递增，旧缓存自然失效
const keyVersion = "v1"

// JSONStore 按 key 读写 JSON，由 pkg/cache.RedisCache 实现
type JSONStore interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
}

// RedisAnswerCache 实现 domain.AnswerCache
type RedisAnswerCache struct {
	store  JSONStore
	prefix string
	ttl    time.Duration
}

// NewRedisAnswerCache 创建 RedisAnswerCache
func NewRedisAnswerCache(store JSONStore, prefix string, ttl time.Duration) *RedisAnswerCache {
	return &RedisAnswerCache{store: store, prefix: prefix, ttl: ttl}
}

func (c *RedisAnswerCache) Get(ctx context.Context, env domain.Environment, predict domain.Movement) (*domain.Answer, bool, error) {
	var answer domain.Answer
	found, err := c.store.GetJSON(ctx, c.Key(env, predict), &answer)
	if err != nil || !found {
		return nil, false, err
	}
	return &answer, true, nil
}

func (c *RedisAnswerCache) Set(ctx context.Context, env domain.Environment, predict domain.Movement, answer *domain.Answer) error {
	return c.store.SetJSON(ctx, c.Key(env, predict), answer, c.ttl)
}

// Key 输入的规范化 SHA-256 摘要，浮点数按最短可逆格式编码
func (c *RedisAnswerCache) Key(env domain.Environment, predict domain.Movement) string {
	fields := []float64{env.Stock, env.RiskFree, env.Vol, env.DivYield, predict.Stock, predict.Time}
	parts := make([]string, 0, len(fields)+2)
	parts = append(parts, keyVersion, strconv.Itoa(domain.OptimizerIterations))
	for _, f := range fields {
		parts = append(parts, strconv.FormatFloat(f, 'g', -1, 64))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return c.prefix + hex.EncodeToString(sum[:])
}

var _ domain.AnswerCache = (*RedisAnswerCache)(nil)
