// Package telegram notifies editors about new drafts.
package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agri-updates/internal/extract"
	"agri-updates/internal/models"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	now    func() time.Time
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
		now:    time.Now,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// escapeURL escapes the two characters MarkdownV2 reserves inside link targets.
func escapeURL(u string) string {
	return strings.NewReplacer(`\`, `\\`, ")", `\)`).Replace(u)
}

// FormatDraft renders the MarkdownV2 notification for a new draft. A deadline
// already in the past is flagged so the editor can reject the draft.
func FormatDraft(d *models.Draft, url string, now time.Time) string {
	msgText := fmt.Sprintf("📝 *New draft:* %s\n", escapeMarkdown(d.Post.Title))
	msgText += fmt.Sprintf("🏷️ %s\n", escapeMarkdown(string(d.Post.Category)))

	if j := d.Job; j != nil {
		msgText += fmt.Sprintf("🏢 %s\n", escapeMarkdown(j.Company))
		msgText += fmt.Sprintf("📍 %s\n", escapeMarkdown(j.Location))
		if j.SalaryRange != "" {
			msgText += fmt.Sprintf("💰 %s\n", escapeMarkdown(j.SalaryRange))
		}
		if j.Deadline != "" {
			line := fmt.Sprintf("📅 %s", escapeMarkdown(j.Deadline))
			if !extract.IsOpen(j.Deadline, now) {
				line += " ⚠️ *deadline passed*"
			}
			msgText += line + "\n"
		}
	}

	if d.Post.Excerpt != "" {
		msgText += fmt.Sprintf("📄 %s\n", escapeMarkdown(d.Post.Excerpt))
	}
	if url != "" {
		msgText += fmt.Sprintf("🔗 [Preview](%s)\n", escapeURL(url))
	}
	return msgText
}

// SendDraft posts a new-draft notification with a preview button.
func (b *Bot) SendDraft(d *models.Draft, url string) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatDraft(d, url, b.now()))
	msg.ParseMode = "MarkdownV2"
	if url != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 Review Draft", url)),
		)
	}

	_, err := b.api.Send(msg)
	return err
}

// FormatDigest summarizes the pending drafts, newest first.
func FormatDigest(pending int, recent []models.Post) string {
	if pending == 0 {
		return "✅ No drafts waiting for review."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📬 %d draft(s) waiting for review", pending)
	for _, p := range recent {
		fmt.Fprintf(&sb, "\n• [%s] %s", p.Category, p.Title)
	}
	if extra := pending - len(recent); extra > 0 && len(recent) > 0 {
		fmt.Fprintf(&sb, "\n… and %d more", extra)
	}
	return sb.String()
}

func (b *Bot) SendDigest(pending int, recent []models.Post) error {
	return b.SendStatus(FormatDigest(pending, recent))
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
