package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the revocation state for issued JWTs in Redis, keyed by
// jti. A token is valid until its jti shows up here; logout and user deletion
// write revocations that outlive the token's own expiry window.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

func revokedKey(jti string) string { return fmt.Sprintf("auth:revoked:%s", jti) }
func userSetKey(uid uint) string   { return fmt.Sprintf("auth:user_tokens:%d", uid) }

// Track registers a freshly issued token under its user so the whole set can
// be revoked at once later.
func (s *TokenStore) Track(ctx context.Context, jti string, userID uint) error {
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, userSetKey(userID), jti)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *TokenStore) Revoke(ctx context.Context, jti string, userID uint) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, revokedKey(jti), "1", s.ttl)
	pipe.SRem(ctx, userSetKey(userID), jti)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil && err != redis.Nil {
		return false, err
	}
	return n > 0, nil
}

// ✅ 关键：删除用户时，撤销该用户的所有令牌
func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID uint) error {
	jtis, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, jti := range jtis {
		pipe.Set(ctx, revokedKey(jti), "1", s.ttl)
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
