// Package messenger delivers text to Telegram chats and exposes the inbound
// update stream for the interactive listener.
package messenger

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// maxMessageLen is the split boundary for outbound messages, kept under
// Telegram's 4096-character limit to leave room for part markers.
const maxMessageLen = 4000

// Telegram wraps the bot API. Outbound sends are paced through a rate
// limiter so multi-part messages and fan-outs do not trip rate limiting.
type Telegram struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
}

// NewTelegram authenticates the bot token against the API.
func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &Telegram{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}, nil
}

// SendMessage delivers text to a single chat, splitting oversized text into
// ordered parts. Success means every part was sent.
func (t *Telegram) SendMessage(text, chatID string) bool {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		log.Printf("Invalid chat id %q: %v", chatID, err)
		return false
	}

	parts := splitMessage(text, maxMessageLen)
	ok := true
	for i, part := range parts {
		if len(parts) > 1 {
			part = fmt.Sprintf("Parte %d/%d\n\n%s", i+1, len(parts), part)
		}

		if err := t.limiter.Wait(context.Background()); err != nil {
			return false
		}

		msg := tgbotapi.NewMessage(id, part)
		msg.DisableWebPagePreview = true
		if _, err := t.bot.Send(msg); err != nil {
			log.Printf("Failed to send message part %d/%d to %s: %v", i+1, len(parts), chatID, err)
			ok = false
		}
	}
	return ok
}

// SendToMany delivers text to each recipient in turn and reports per-chat
// success.
func (t *Telegram) SendToMany(text string, chatIDs []string) map[string]bool {
	results := make(map[string]bool, len(chatIDs))
	for _, chatID := range chatIDs {
		results[chatID] = t.SendMessage(text, chatID)
	}
	return results
}

// Updates returns the long-poll update stream starting after offset.
func (t *Telegram) Updates(offset int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(offset)
	u.Timeout = 60
	return t.bot.GetUpdatesChan(u)
}

// StopPolling shuts down the update stream.
func (t *Telegram) StopPolling() {
	t.bot.StopReceivingUpdates()
}

// splitMessage cuts text into chunks of at most max bytes, preferring the
// last newline at or before the boundary and hard-cutting when a chunk has
// none. A hard cut lands on a rune start, never inside a multi-byte rune:
// Telegram rejects payloads that are not valid UTF-8.
func splitMessage(text string, max int) []string {
	var parts []string
	for len(text) > 0 {
		if len(text) <= max {
			parts = append(parts, text)
			break
		}

		cut := strings.LastIndex(text[:max], "\n")
		if cut <= 0 {
			cut = max
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = max
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], " \t\n")
	}
	return parts
}
