// Package telegram provides a client for sending notifications via Telegram Bot API.
// It formats scoring plays of the tracked game into short messages and handles
// delivery with retry logic for reliability.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/dugout/internal/models"
)

// sender is the part of tgbotapi.BotAPI the client uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// Send sends one message listing the given scoring plays
func (c *Client) Send(alerts []models.ScoringAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(c.chatID, formatMessage(alerts))
	msg.ParseMode = "MarkdownV2"

	// Send with retry
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats scoring alerts into a Telegram message
func formatMessage(alerts []models.ScoringAlert) string {
	var b strings.Builder

	first := alerts[0]
	fmt.Fprintf(&b, "⚾ *%s @ %s*\n\n", escapeMarkdownV2(first.AwayTeam), escapeMarkdownV2(first.HomeTeam))

	for _, a := range alerts {
		event := a.Event
		if event == "" {
			event = "Run scores"
		}
		score := fmt.Sprintf("%s %d, %s %d", a.AwayTeam, a.AwayScore, a.HomeTeam, a.HomeScore)

		fmt.Fprintf(&b, "*%s* %s\n", escapeMarkdownV2(formatInning(a.Inning, a.IsTop)), escapeMarkdownV2(event))
		fmt.Fprintf(&b, "%s\n", escapeMarkdownV2(a.Summary))
		if a.RBI > 0 {
			fmt.Fprintf(&b, "RBI: %d\n", a.RBI)
		}
		fmt.Fprintf(&b, "Score: *%s*\n\n", escapeMarkdownV2(score))
	}

	dateStr := escapeMarkdownV2(alerts[len(alerts)-1].DetectedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "_Detected %s_", dateStr)
	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	var b strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}

// formatInning formats an inning half like "Top 3rd"
func formatInning(inning int, top bool) string {
	half := "Bot"
	if top {
		half = "Top"
	}
	if inning <= 0 {
		return half
	}

	suffix := "th"
	switch inning % 100 {
	case 11, 12, 13:
	default:
		switch inning % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%s %d%s", half, inning, suffix)
}
