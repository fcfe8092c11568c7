package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
)

// Locker 帳票再生成の排他ロック。同一ドキュメントの同時再生成による
// delete-then-insert の競合を防ぐ。
type Locker interface {
	// Acquire ロックを取得する。取得できた場合は解放関数を返す。
	// 他の呼び出しが保持中の場合は業務エラー。
	Acquire(ctx context.Context, kind, id string) (release func(), err error)
}

// RedisLocker Redis SetNX による advisory lock
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, kind, id string) (func(), error) {
	key := fmt.Sprintf("doc_lock:%s:%s", kind, id)
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire document lock: %w", err)
	}
	if !ok {
		return nil, bizerr.New("ドキュメントは他のユーザーが生成中です。しばらくしてから再実行してください。")
	}
	release := func() {
		// 自分のトークンの場合のみ削除する
		val, err := l.client.Get(context.Background(), key).Result()
		if err == nil && val == token {
			l.client.Del(context.Background(), key)
		}
	}
	return release, nil
}

// NopLocker ロックなし（テスト用）
type NopLocker struct{}

func (NopLocker) Acquire(ctx context.Context, kind, id string) (func(), error) {
	return func() {}, nil
}
