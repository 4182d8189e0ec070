package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// KeyFunc picks the rate limit bucket for a request.
type KeyFunc func(r *http.Request) string

// PerIPKey buckets callers by client IP.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

// clientIP trusts the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Refills at ARGV[1] tokens/s up to ARGV[2]; one request takes one token.
// Returns {allowed, tokens left, retry after ms}.
const tokenBucketLua = `
local rate = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])

local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local state  = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or cap
local ts     = tonumber(state[2]) or now

if now > ts then
  tokens = math.min(cap, tokens + (now - ts) / 1000.0 * rate)
end

local allowed, wait = 0, 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) * 1000.0 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], math.ceil(cap / rate * 1000.0))
return {allowed, math.floor(tokens), wait}
`

// RedisTokenBucket smooths bursts per key. Redis errors let the request through.
type RedisTokenBucket struct {
	rdb    redis.Scripter
	log    zerolog.Logger
	keyFn  KeyFunc
	rate   float64
	burst  int
	script *redis.Script
}

func NewRedisTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int, keyFn KeyFunc, log zerolog.Logger) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:    rdb,
		log:    log.With().Str("component", "token_bucket").Logger(),
		keyFn:  keyFn,
		rate:   ratePerSecond,
		burst:  burst,
		script: redis.NewScript(tokenBucketLua),
	}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := tb.keyFn(r)
		res, err := tb.script.Run(r.Context(), tb.rdb, []string{key},
			strconv.FormatFloat(tb.rate, 'f', -1, 64), tb.burst).Slice()
		if err != nil || len(res) != 3 {
			tb.log.Warn().Err(err).Msg("limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		setLimitHeaders(w, "token-bucket", tb.burst, toInt64(res[1]))
		if toInt64(res[0]) != 1 {
			tooManyRequests(w, r, tb.log, key, retrySeconds(toInt64(res[2])))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedisSlidingWindow caps requests per key over a rolling window using a ZSET
// of request timestamps.
type RedisSlidingWindow struct {
	rdb    redis.Cmdable
	log    zerolog.Logger
	keyFn  KeyFunc
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb redis.Cmdable, limit int, window time.Duration, keyFn KeyFunc, log zerolog.Logger) *RedisSlidingWindow {
	return &RedisSlidingWindow{
		rdb:    rdb,
		log:    log.With().Str("component", "sliding_window").Logger(),
		keyFn:  keyFn,
		limit:  limit,
		window: window,
	}
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := sw.keyFn(r)
		now := time.Now().UnixMilli()
		windowMs := sw.window.Milliseconds()

		pipe := sw.rdb.TxPipeline()
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now-windowMs, 10))
		card := pipe.ZCard(ctx, key)
		pipe.PExpire(ctx, key, sw.window+time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			sw.log.Warn().Err(err).Msg("limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		count := int(card.Val())
		setLimitHeaders(w, "sliding-window", sw.limit, int64(sw.limit-count))
		if count <= sw.limit {
			next.ServeHTTP(w, r)
			return
		}

		// the oldest entry decides when a slot frees up
		var waitMs int64
		if oldest, err := sw.rdb.ZRangeWithScores(ctx, key, 0, 0).Result(); err == nil && len(oldest) == 1 {
			waitMs = int64(oldest[0].Score) + windowMs - now
		}
		tooManyRequests(w, r, sw.log, key, retrySeconds(waitMs))
	})
}

func setLimitHeaders(w http.ResponseWriter, policy string, limit int, remaining int64) {
	w.Header().Set("X-RateLimit-Policy", policy)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, remaining), 10))
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, log zerolog.Logger, key string, retry int64) {
	log.Info().Str("key", key).Int64("retry_after_s", retry).Msg("request blocked")
	w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
	apperr.Write(w, r, apperr.Problem{
		Status:    http.StatusTooManyRequests,
		Title:     "Too Many Requests",
		Retryable: true,
	})
}

// retrySeconds rounds ms up to whole seconds, at least one.
func retrySeconds(ms int64) int64 {
	return max(1, (ms+999)/1000)
}

// toInt64 normalizes the reply types go-redis hands back from scripts.
func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(t), 10, 64)
		return i
	case float64:
		return int64(t)
	default:
		return 0
	}
}
