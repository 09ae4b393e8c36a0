package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optioncalc/internal/options/domain"
)

type memoryStore struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memoryStore) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memoryStore) SetJSON(_ context.Context, key string, value any, expiration time.Duration) error {
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.ttl[key] = expiration
	return nil
}

var (
	env     = domain.Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	predict = domain.Movement{Stock: 110, Time: 0.5}
)

func TestKey(t *testing.T) {
	c := NewRedisAnswerCache(newMemoryStore(), "optioncalc:answer:", time.Hour)

	k1 := c.Key(env, predict)
	if !strings.HasPrefix(k1, "optioncalc:answer:") || len(k1) != len("optioncalc:answer:")+64 {
		t.Fatalf("key = %s", k1)
	}
	if k1 != c.Key(env, predict) {
		t.Fatal("key must be stable")
	}
	other := env
	other.DivYield = 1e-12
	if c.Key(other, predict) == k1 {
		t.Fatal("tiny input change must change the key")
	}
	swapped := domain.Movement{Stock: predict.Time, Time: predict.Stock}
	if c.Key(env, swapped) == k1 {
		t.Fatal("field order must matter")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	store := newMemoryStore()
	c := NewRedisAnswerCache(store, "p:", 30*time.Minute)
	ctx := context.Background()

	if _, found, err := c.Get(ctx, env, predict); err != nil || found {
		t.Fatalf("empty cache: found=%v err=%v", found, err)
	}

	answer := domain.Solve(env, predict)
	if err := c.Set(ctx, env, predict, &answer); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if store.ttl[c.Key(env, predict)] != 30*time.Minute {
		t.Fatalf("ttl = %v", store.ttl[c.Key(env, predict)])
	}

	got, found, err := c.Get(ctx, env, predict)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got.Contract != answer.Contract || got.ROI != answer.ROI || got.Kind != answer.Kind {
		t.Fatalf("got %+v, want %+v", got, answer)
	}
	if !got.PracticalBuy.Equal(answer.PracticalBuy) || !got.PracticalSell.Equal(answer.PracticalSell) {
		t.Fatalf("practical prices %s/%s, want %s/%s", got.PracticalBuy, got.PracticalSell, answer.PracticalBuy, answer.PracticalSell)
	}
	if got.PracticalBuy.LessThan(decimal.New(1, -2)) {
		t.Fatalf("practical buy below one cent: %s", got.PracticalBuy)
	}
}

func TestGet_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	c := NewRedisAnswerCache(store, "p:", time.Minute)

	if _, _, err := c.Get(context.Background(), env, predict); !errors.Is(err, store.err) {
		t.Fatalf("err = %v", err)
	}
}
