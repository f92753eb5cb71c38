package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tnega/gosearch/internal/telegram/render"
	"go.uber.org/zap"
)

const (
	warningInterval = 30 * time.Second
	inactiveAfter   = 10 * time.Minute
	cleanupEvery    = 5 * time.Minute
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	limits     map[int64]*userLimit
	mu         sync.RWMutex
	maxTokens  float64
	refillRate float64 // tokens per second
	logger     *zap.Logger
	api        *tgbotapi.BotAPI
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api *tgbotapi.BotAPI,
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:     make(map[int64]*userLimit),
		maxTokens:  float64(burstSize),
		refillRate: float64(requestsPerMinute) / 60.0,
		logger:     logger,
		api:        api,
	}

	go rl.cleanupInactiveUsers()

	return rl
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	if update.Message == nil {
		next(update)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	limit := rl.limitFor(userID)

	limit.mu.Lock()
	now := time.Now()
	limit.tokens += now.Sub(limit.lastRefill).Seconds() * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens < 1 {
		warn := now.Sub(limit.lastWarningAt) > warningInterval
		if warn {
			limit.lastWarningAt = now
		}
		limit.mu.Unlock()

		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
		)

		if warn {
			msg := tgbotapi.NewMessage(chatID, render.MsgRateLimited)
			if _, err := rl.api.Send(msg); err != nil {
				rl.logger.Error("failed to send rate limit warning", zap.Error(err))
			}
		}
		return
	}

	limit.tokens--
	limit.mu.Unlock()

	next(update)
}

func (rl *RateLimiterMiddleware) limitFor(userID int64) *userLimit {
	rl.mu.RLock()
	limit, ok := rl.limits[userID]
	rl.mu.RUnlock()
	if ok {
		return limit
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if limit, ok = rl.limits[userID]; ok {
		return limit
	}

	limit = &userLimit{tokens: rl.maxTokens, lastRefill: time.Now()}
	rl.limits[userID] = limit
	return limit
}

func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-inactiveAfter)

		rl.mu.Lock()
		for userID, limit := range rl.limits {
			limit.mu.Lock()
			inactive := limit.lastRefill.Before(cutoff)
			limit.mu.Unlock()
			if inactive {
				delete(rl.limits, userID)
			}
		}
		rl.mu.Unlock()
	}
}
