package telegram

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/config"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultCooldown = 5 * time.Minute

// sender 发送消息的最小接口，*tgbotapi.BotAPI 满足
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier 上游失败时通过Telegram告警
// 未启用、缺少token或chat id时为空操作
type Notifier struct {
	bot      sender
	chatIDs  []int64
	cooldown time.Duration
	now      func() time.Time

	mu        sync.Mutex
	lastSent  map[string]time.Time
	lastSweep time.Time
	wg        sync.WaitGroup
}

// NewNotifier 根据配置创建告警器
func NewNotifier(cfg config.TelegramConfig) *Notifier {
	n := &Notifier{
		chatIDs:  cfg.ChatIDs,
		cooldown: defaultCooldown,
		now:      time.Now,
		lastSent: make(map[string]time.Time),
	}

	if !cfg.Enabled {
		return n
	}
	if cfg.BotToken == "" || len(cfg.ChatIDs) == 0 {
		logger.Warn("Telegram alerts enabled but bot token or chat ids missing")
		return n
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		return n
	}
	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)
	n.bot = bot
	return n
}

// Enabled 是否会真正发送
func (n *Notifier) Enabled() bool {
	return n.bot != nil && len(n.chatIDs) > 0
}

// NotifyUpstreamFailure 异步发送告警，同一操作和资源在冷却期内只发一次
func (n *Notifier) NotifyUpstreamFailure(operation, resourceID string, err error) {
	if !n.Enabled() || err == nil {
		return
	}

	key := operation + ":" + resourceID
	now := n.now()

	n.mu.Lock()
	if last, ok := n.lastSent[key]; ok && now.Sub(last) < n.cooldown {
		n.mu.Unlock()
		logger.Debug("Alert suppressed during cooldown", "operation", operation, "resource_id", resourceID)
		return
	}
	n.sweep(now)
	n.lastSent[key] = now
	n.mu.Unlock()

	text := formatAlert(operation, resourceID, err, now)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for _, chatID := range n.chatIDs {
			msg := tgbotapi.NewMessage(chatID, text)
			if _, sendErr := n.bot.Send(msg); sendErr != nil {
				logger.Error("Failed to send alert", "chatID", chatID, "error", sendErr)
				continue
			}
			logger.Info("Alert sent", "chatID", chatID, "operation", operation)
		}
	}()
}

// sweep 清理已过冷却期的记录，需持有锁
func (n *Notifier) sweep(now time.Time) {
	if now.Sub(n.lastSweep) < n.cooldown {
		return
	}
	for key, sent := range n.lastSent {
		if now.Sub(sent) >= n.cooldown {
			delete(n.lastSent, key)
		}
	}
	n.lastSweep = now
}

// Wait 等待已发出的告警完成，关闭服务时调用
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// formatAlert 告警文本，错误信息先脱敏
func formatAlert(operation, resourceID string, err error, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "❌ Upstream failure: %s\n", operation)
	if resourceID != "" {
		fmt.Fprintf(&b, "🆔 %s\n", resourceID)
	}
	fmt.Fprintf(&b, "🚨 %s\n", logger.SanitizeString(err.Error()))
	fmt.Fprintf(&b, "⏰ %s", at.Format("2006-01-02 15:04:05"))
	return cleanUTF8(b.String())
}

// cleanUTF8 确保文本是有效的UTF-8编码
func cleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		return strings.ToValidUTF8(text, "?")
	}
	return text
}
