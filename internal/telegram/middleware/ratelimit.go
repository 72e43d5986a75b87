package middleware

import (
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"github.com/samsontands/RAG/internal/telegram/render"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// inactiveUserTTL drops the limiter of a user who has been quiet this long
	inactiveUserTTL = time.Hour
	cleanupInterval = 10 * time.Minute
	warningInterval = 30 * time.Second
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	limiter *rate.Limiter

	mu            sync.Mutex
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	limits   *cache.Cache
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	interval time.Duration
	logger   *zap.Logger
	bot      Sender
	now      func() time.Time
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	bot Sender,
) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:   cache.New(inactiveUserTTL, cleanupInterval),
		every:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    burstSize,
		interval: warningInterval,
		logger:   logger,
		bot:      bot,
		now:      time.Now,
	}
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateChat(update)
	if !ok {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// allowRequest checks if request is allowed under rate limit
func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	limit := rl.userLimit(userID)
	now := rl.now()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > rl.interval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

// userLimit returns the user's limiter and keeps it alive for another inactiveUserTTL
func (rl *RateLimiterMiddleware) userLimit(userID int64) *userLimit {
	key := strconv.FormatInt(userID, 10)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, ok := rl.limits.Get(key)
	if !ok {
		limit = &userLimit{limiter: rate.NewLimiter(rl.every, rl.burst)}
	}
	rl.limits.SetDefault(key, limit)
	return limit.(*userLimit)
}

// sendRateLimitWarning sends a warning that gets firmer the more the user insists
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	text := render.MsgRateLimit
	switch {
	case warningCount == 2:
		text = render.MsgRateLimit2
	case warningCount >= 3:
		text = render.MsgRateLimit3
	}

	if _, err := rl.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
