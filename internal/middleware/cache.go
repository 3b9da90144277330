package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/habit-tracker/internal/config"
	"github.com/iliyamo/habit-tracker/internal/logger"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// tooLarge reports whether the body outgrew the capture limit.
func (cw *captureWriter) tooLarge() bool {
	return cw.limit > 0 && cw.size > cw.limit
}

// versionKey holds the user's cache generation. Bumping it orphans every
// cached response of that user at once.
func versionKey(prefix, uid string) string {
	return fmt.Sprintf("%s:u:%s:ver", prefix, uid)
}

// cacheKey is prefix:u:<uid>:v<version>:<sha1(route, path, query)>.
func cacheKey(prefix, uid string, version int64, c echo.Context) string {
	r := c.Request()
	tail := strings.Join([]string{"route", c.Path(), "path", r.URL.Path, "q", r.URL.RawQuery}, ":")
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:u:%s:v%d:%x", prefix, uid, version, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, hdr, bs[8+hlen:], true
}

// UserCache caches successful GET responses per authenticated user in
// Redis. Any successful write by a user bumps that user's version so the
// next read misses. It must run after JWTAuth.
type UserCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

// NewUserCache returns a cache; a nil client or disabled config yields a
// pass-through middleware.
func NewUserCache(cfg config.CacheConfig, rdb *redis.Client) *UserCache {
	return &UserCache{cfg: cfg, rdb: rdb}
}

// Enabled reports whether responses are actually cached.
func (uc *UserCache) Enabled() bool {
	return uc != nil && uc.cfg.Enabled && uc.rdb != nil
}

// Middleware serves and fills the cache on GET and invalidates the user's
// entries after any other request that ends in a 2xx status.
func (uc *UserCache) Middleware() echo.MiddlewareFunc {
	if !uc.Enabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := uc.cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := userKey(c)
			if c.Request().Method != http.MethodGet {
				err := next(c)
				if status := c.Response().Status; err == nil && status >= 200 && status < 300 {
					uc.Invalidate(c.Request().Context(), uid)
				}
				return err
			}
			return uc.serveGet(c, next, uid, ttl)
		}
	}
}

// Invalidate bumps the user's cache version.
func (uc *UserCache) Invalidate(ctx context.Context, uid string) {
	if err := uc.rdb.Incr(ctx, versionKey(uc.cfg.Prefix, uid)).Err(); err != nil {
		logger.Warn("cache invalidate failed", "user_id", uid, "err", err)
	}
}

func (uc *UserCache) serveGet(c echo.Context, next echo.HandlerFunc, uid string, ttl time.Duration) error {
	ctx := c.Request().Context()

	version, err := uc.rdb.Get(ctx, versionKey(uc.cfg.Prefix, uid)).Int64()
	if err != nil && err != redis.Nil {
		// Redis trouble: serve uncached
		return next(c)
	}
	key := cacheKey(uc.cfg.Prefix, uid, version, c)

	if bs, err := uc.rdb.Get(ctx, key).Bytes(); err == nil {
		if status, hdr, body, ok := decodePayload(bs); ok {
			for k, vals := range hdr {
				if strings.EqualFold(k, echo.HeaderContentLength) {
					continue
				}
				for _, v := range vals {
					c.Response().Header().Add(k, v)
				}
			}
			c.Response().Header().Set("X-Cache", "HIT")
			c.Response().WriteHeader(status)
			if len(body) > 0 {
				_, _ = c.Response().Write(body)
			}
			return nil
		}
	}

	// Miss: capture
	cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(uc.cfg.MaxBodyBytes)}
	c.Response().Writer = cw
	c.Response().Header().Set("X-Cache", "MISS")

	if err := next(c); err != nil {
		return err
	}
	if cw.status != http.StatusOK || cw.tooLarge() {
		return nil
	}

	hdr := make(http.Header, len(c.Response().Header()))
	for k, vals := range c.Response().Header() {
		if strings.EqualFold(k, "X-Cache") || strings.EqualFold(k, echo.HeaderXRequestID) {
			continue
		}
		hdr[k] = append([]string(nil), vals...)
	}
	payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
	if err != nil {
		return nil
	}
	if err := uc.rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
		logger.Warn("cache store failed", "key", key, "err", err)
	}
	return nil
}
