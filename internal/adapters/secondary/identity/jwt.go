package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/unihub/unihub-api/internal/adapters/secondary/redis"
	"github.com/unihub/unihub-api/internal/ports/secondary"
)

const maxCacheTTL = 15 * time.Minute

// JWTResolver validates HS256 bearer tokens issued by the identity provider
// and maps them to the subject's external UID. Validated tokens are cached in
// redis until they expire so hot requests skip signature verification.
type JWTResolver struct {
	secret []byte
	cache  *redis.Client
}

func NewJWTResolver(secret string, cache *redis.Client) *JWTResolver {
	return &JWTResolver{
		secret: []byte(secret),
		cache:  cache,
	}
}

func (r *JWTResolver) Resolve(ctx context.Context, token string) (string, error) {
	key := cacheKey(token)
	if r.cache != nil {
		if uid, err := r.cache.Get(ctx, key).Result(); err == nil {
			return uid, nil
		} else if !errors.Is(err, goredis.Nil) {
			return "", err
		}
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", secondary.ErrNotFound
	}

	if r.cache != nil {
		ttl := maxCacheTTL
		if claims.ExpiresAt != nil {
			if until := time.Until(claims.ExpiresAt.Time); until < ttl {
				ttl = until
			}
		}
		if ttl > 0 {
			_ = r.cache.Set(ctx, key, claims.Subject, ttl).Err()
		}
	}
	return claims.Subject, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:token:" + hex.EncodeToString(sum[:])
}
