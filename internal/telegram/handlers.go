package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	dbot "github.com/MrJamesThe3rd/dompetku/internal/bot"
	"github.com/MrJamesThe3rd/dompetku/internal/botuser"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

const notLinkedText = "🔗 Akun Telegram kamu belum terhubung.\n" +
	"Buat token di aplikasi Dompetku lalu kirim <code>/link &lt;token&gt;</code>."

func (b *Bot) reply(ctx context.Context, tg API, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		slog.Error("failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func platformUserID(update *models.Update) string {
	if update.Message.From == nil {
		return strconv.FormatInt(update.Message.Chat.ID, 10)
	}

	return strconv.FormatInt(update.Message.From.ID, 10)
}

func (b *Bot) message(update *models.Update) dbot.Message {
	return dbot.Message{
		Platform:       botuser.PlatformTelegram,
		PlatformUserID: platformUserID(update),
		Text:           update.Message.Text,
		ReceivedAt:     time.Unix(int64(update.Message.Date), 0),
	}
}

// linkedUser resolves the sender. When that fails the user is told why and
// ok is false.
func (b *Bot) linkedUser(ctx context.Context, tg API, update *models.Update) (string, bool) {
	u, err := b.deps.Accounts.Resolve(ctx, botuser.PlatformTelegram, platformUserID(update))
	if err == nil {
		return u.UserID, true
	}

	switch {
	case errors.Is(err, botuser.ErrNotLinked):
		errorsTotal.WithLabelValues("not_linked").Inc()
		b.reply(ctx, tg, update.Message.Chat.ID, notLinkedText)
	case errors.Is(err, botuser.ErrInactive):
		errorsTotal.WithLabelValues("not_linked").Inc()
		b.reply(ctx, tg, update.Message.Chat.ID, "⛔ Akun Telegram ini sedang dinonaktifkan.")
	default:
		errorsTotal.WithLabelValues("resolve").Inc()
		slog.Error("failed to resolve telegram user", "platform_user_id", platformUserID(update), "error", err)
		b.reply(ctx, tg, update.Message.Chat.ID, "❌ Terjadi kesalahan. Coba lagi nanti.")
	}

	return "", false
}

func (b *Bot) monthRange() (time.Time, time.Time) {
	now := b.now().In(b.cfg.Location)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, b.cfg.Location)

	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (b *Bot) handleStart(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("start").Inc()

	if update.Message == nil {
		return
	}

	firstName := ""
	if update.Message.From != nil {
		firstName = update.Message.From.FirstName
	}

	text := fmt.Sprintf("👋 Halo%s!\n\n"+
		"Aku Dompetku, asisten pencatat keuanganmu. Kirim pesan seperti <code>kopi 18k</code> "+
		"dan aku akan mencatatnya.\n\n"+
		"Hubungkan akunmu dulu dengan <code>/link &lt;token&gt;</code>, lalu gunakan /help untuk melihat semua perintah.",
		formatGreeting(firstName))

	b.reply(ctx, tg, update.Message.Chat.ID, text)
}

func (b *Bot) handleHelp(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("help").Inc()

	if update.Message == nil {
		return
	}

	b.reply(ctx, tg, update.Message.Chat.ID, helpText)
}

func (b *Bot) handleLink(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("link").Inc()

	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	_, token := splitCommand(update.Message.Text)
	if token == "" {
		b.reply(ctx, tg, chatID, "Gunakan: <code>/link &lt;token&gt;</code>")
		return
	}

	username := ""
	if update.Message.From != nil {
		username = update.Message.From.Username
	}

	_, err := b.deps.Accounts.LinkWithToken(ctx, token, botuser.LinkParams{
		Platform:         botuser.PlatformTelegram,
		PlatformUserID:   platformUserID(update),
		PlatformUsername: username,
	})

	switch {
	case err == nil:
		b.reply(ctx, tg, chatID, "✅ Akun berhasil terhubung! Sekarang kamu bisa mencatat transaksi di sini.")
	case errors.Is(err, botuser.ErrInvalidLinkToken):
		errorsTotal.WithLabelValues("link").Inc()
		b.reply(ctx, tg, chatID, "❌ Token tidak valid atau sudah kedaluwarsa. Buat token baru di aplikasi.")
	case errors.Is(err, botuser.ErrAlreadyLinked):
		errorsTotal.WithLabelValues("link").Inc()
		b.reply(ctx, tg, chatID, "❌ Akun Telegram ini sudah terhubung ke pengguna lain.")
	default:
		errorsTotal.WithLabelValues("link").Inc()
		slog.Error("failed to link telegram account", "platform_user_id", platformUserID(update), "error", err)
		b.reply(ctx, tg, chatID, "❌ Gagal menghubungkan akun. Coba lagi nanti.")
	}
}

func (b *Bot) handleCategories(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("categories").Inc()

	if update.Message == nil {
		return
	}

	userID, ok := b.linkedUser(ctx, tg, update)
	if !ok {
		return
	}

	cats, err := b.deps.Categories.List(ctx, userID)
	if err != nil {
		errorsTotal.WithLabelValues("categories").Inc()
		slog.Error("failed to list categories", "user_id", userID, "error", err)
		b.reply(ctx, tg, update.Message.Chat.ID, "❌ Gagal mengambil kategori.")

		return
	}

	b.reply(ctx, tg, update.Message.Chat.ID, formatCategories(cats))
}

// parseStructured reads "<amount> <category> [note]".
func parseStructured(args string, typ transaction.Type) (*dbot.Command, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return nil, dbot.ErrInvalidCommandFormat
	}

	amount, err := money.Parse(fields[0])
	if err != nil {
		return nil, err
	}

	return &dbot.Command{
		Type:     typ,
		Amount:   amount,
		Category: fields[1],
		Note:     strings.Join(fields[2:], " "),
	}, nil
}

func (b *Bot) handleTransaction(ctx context.Context, tg API, update *models.Update, typ transaction.Type) {
	if update.Message == nil {
		return
	}

	name, args := splitCommand(update.Message.Text)
	commandsProcessed.WithLabelValues(strings.TrimPrefix(name, "/")).Inc()

	cmd, err := parseStructured(args, typ)
	if err != nil {
		b.reply(ctx, tg, update.Message.Chat.ID,
			fmt.Sprintf("Gunakan: <code>%s &lt;jumlah&gt; &lt;kategori&gt; [catatan]</code>\nContoh: <code>%s 25k makan nasi padang</code>", name, name))

		return
	}

	b.replyProcessed(ctx, tg, update.Message.Chat.ID, b.deps.Processor.Submit(ctx, b.message(update), cmd))
}

func (b *Bot) handleSummary(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("summary").Inc()

	if update.Message == nil {
		return
	}

	userID, ok := b.linkedUser(ctx, tg, update)
	if !ok {
		return
	}

	from, to := b.monthRange()

	summary, err := b.deps.Summary.Categories(ctx, analytics.CategoryQuery{UserID: userID, From: from, To: to})
	if err != nil {
		errorsTotal.WithLabelValues("summary").Inc()
		slog.Error("failed to build summary", "user_id", userID, "error", err)
		b.reply(ctx, tg, update.Message.Chat.ID, "❌ Gagal membuat ringkasan.")

		return
	}

	month := fmt.Sprintf("%s %d", monthNames[from.Month()-1], from.Year())
	b.reply(ctx, tg, update.Message.Chat.ID, formatSummary(summary, month))
}

func (b *Bot) handleInsights(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("insights").Inc()

	if update.Message == nil {
		return
	}

	userID, ok := b.linkedUser(ctx, tg, update)
	if !ok {
		return
	}

	period := insight.PeriodCurrentMonth
	if _, args := splitCommand(update.Message.Text); args != "" {
		period = insight.Period(args)
	}

	fi, err := b.deps.Insights.Generate(ctx, userID, period)
	if err != nil {
		errorsTotal.WithLabelValues("insights").Inc()
		slog.Error("failed to generate insights", "user_id", userID, "error", err)
		b.reply(ctx, tg, update.Message.Chat.ID, "❌ Gagal membuat insight: "+err.Error())

		return
	}

	b.reply(ctx, tg, update.Message.Chat.ID, formatInsights(fi))
}

func (b *Bot) handleBudget(ctx context.Context, tg API, update *models.Update) {
	commandsProcessed.WithLabelValues("budget").Inc()

	if update.Message == nil {
		return
	}

	userID, ok := b.linkedUser(ctx, tg, update)
	if !ok {
		return
	}

	from, to := b.monthRange()

	statuses, err := b.deps.Budgets.ListStatuses(ctx, userID, from, to)
	if err != nil {
		errorsTotal.WithLabelValues("budget").Inc()
		slog.Error("failed to list budget statuses", "user_id", userID, "error", err)
		b.reply(ctx, tg, update.Message.Chat.ID, "❌ Gagal mengambil status anggaran.")

		return
	}

	names := make(map[string]string)

	cats, err := b.deps.Categories.List(ctx, userID)
	if err != nil {
		slog.Warn("failed to list categories for budgets", "user_id", userID, "error", err)
	}

	for _, c := range cats {
		names[c.ID.String()] = c.Name
	}

	b.reply(ctx, tg, update.Message.Chat.ID, formatBudgets(statuses, names))
}

// handleMessage receives every update no command matched.
func (b *Bot) handleMessage(ctx context.Context, tg API, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	if name, _ := splitCommand(update.Message.Text); name != "" {
		b.reply(ctx, tg, update.Message.Chat.ID, "Perintah tidak dikenal. Gunakan /help untuk melihat daftar perintah.")
		return
	}

	messagesProcessed.Inc()

	b.replyProcessed(ctx, tg, update.Message.Chat.ID, b.deps.Processor.Process(ctx, b.message(update)))
}

func (b *Bot) replyProcessed(ctx context.Context, tg API, chatID int64, resp dbot.Response) {
	if !resp.Success && resp.Error == botuser.ErrNotLinked.Error() {
		b.reply(ctx, tg, chatID, notLinkedText)
		return
	}

	b.reply(ctx, tg, chatID, html.EscapeString(resp.Text))
}
