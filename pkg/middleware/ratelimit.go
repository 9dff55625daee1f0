package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"cinema-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Token-bucket limiter backed by redis, applied to the contended
// hold/checkout routes. The bucket state lives in a redis hash so multiple
// instances share one budget per caller. When redis is not configured the
// middleware is a pass-through.
func RateLimit(cfg utils.RedisConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	limiterScript := redis.NewScript(`
		local key = KEYS[1]
		local now_ms = tonumber(ARGV[1])
		local capacity = tonumber(ARGV[2])
		local refill_tokens = tonumber(ARGV[3])
		local interval_ms = tonumber(ARGV[4])
		local ttl_seconds = tonumber(ARGV[5])

		local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
		local tokens = tonumber(state[1])
		local last_refill = tonumber(state[2])

		if tokens == nil or last_refill == nil then
			tokens = capacity
			last_refill = now_ms
		end

		if interval_ms > 0 and refill_tokens > 0 then
			local elapsed = math.max(0, now_ms - last_refill)
			local intervals = math.floor(elapsed / interval_ms)
			if intervals > 0 then
				tokens = math.min(capacity, tokens + (intervals * refill_tokens))
				last_refill = last_refill + (intervals * interval_ms)
			end
		end

		local allowed = 0
		local retry_after_ms = 0
		if tokens > 0 then
			allowed = 1
			tokens = tokens - 1
		else
			local until_next = interval_ms - (now_ms - last_refill)
			if until_next < 0 then until_next = 0 end
			retry_after_ms = until_next
		end

		redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
		redis.call('EXPIRE', key, ttl_seconds)

		return { allowed, tokens, retry_after_ms }
	`)

	// one refill per token interval: RateLimitPerMin tokens per minute
	intervalMs := int64(0)
	if cfg.RateLimitPerMin > 0 {
		intervalMs = int64(time.Minute/time.Millisecond) / int64(cfg.RateLimitPerMin)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(r)

			res, err := limiterScript.Run(r.Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.RateLimitBurst,
				1,
				intervalMs,
				cfg.RateLimitTTLSecs,
			).Int64Slice()

			if err != nil || len(res) < 3 {
				// redis trouble must not take down the booking path
				logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if res[0] != 1 {
				retryAfter := time.Duration(res[2]) * time.Millisecond
				secs := int(retryAfter.Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				utils.ResponseJSON(w, http.StatusTooManyRequests, map[string]any{
					"error": map[string]any{
						"code":    "RATE_LIMITED",
						"message": "Too many requests, slow down.",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateKey buckets by user when authenticated, else by client IP.
func rateKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("ratelimit:user:%s", userID.String())
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return fmt.Sprintf("ratelimit:ip:%s", host)
}
