package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/MrJamesThe3rd/dompetku/internal/analytics"
	"github.com/MrJamesThe3rd/dompetku/internal/budget"
	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/insight"
	"github.com/MrJamesThe3rd/dompetku/internal/money"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

// splitCommand separates "/cmd@bot args" into "/cmd" and "args".
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}

	name, args, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")

	return strings.ToLower(name), strings.TrimSpace(args)
}

const helpText = `📚 <b>Perintah Dompetku</b>

<b>Catat transaksi:</b>
• Kirim pesan seperti <code>makan siang 25k</code> untuk pengeluaran
• Awali dengan <code>+</code> untuk pemasukan: <code>+ gaji 8jt</code>
• <code>/expense &lt;jumlah&gt; &lt;kategori&gt; [catatan]</code>
• <code>/income &lt;jumlah&gt; &lt;kategori&gt; [catatan]</code>

<b>Laporan:</b>
• <code>/summary</code> - Ringkasan bulan ini
• <code>/insights</code> - Analisis keuangan
• <code>/budget</code> - Status anggaran

<b>Lainnya:</b>
• <code>/categories</code> - Daftar kategori
• <code>/link &lt;token&gt;</code> - Hubungkan akun Telegram
• <code>/help</code> - Tampilkan pesan ini`

func formatGreeting(firstName string) string {
	if firstName == "" {
		return ""
	}

	return ", " + html.EscapeString(firstName)
}

func formatCategories(cats []*category.Category) string {
	if len(cats) == 0 {
		return "Belum ada kategori."
	}

	var sb strings.Builder

	for _, section := range []struct {
		typ   transaction.Type
		title string
	}{
		{transaction.TypeExpense, "📉 <b>Pengeluaran</b>"},
		{transaction.TypeIncome, "📈 <b>Pemasukan</b>"},
	} {
		var lines []string

		for _, c := range cats {
			if c.Type == section.typ {
				lines = append(lines, fmt.Sprintf("%s %s", c.Icon, html.EscapeString(c.Name)))
			}
		}

		if len(lines) == 0 {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}

		sb.WriteString(section.title + "\n")
		sb.WriteString(strings.Join(lines, "\n"))
	}

	return sb.String()
}

func formatSummary(s *analytics.Summary, month string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 <b>Ringkasan %s</b>\n\n", month)
	fmt.Fprintf(&sb, "Pemasukan: %s\n", money.FormatRupiah(s.TotalIncome))
	fmt.Fprintf(&sb, "Pengeluaran: %s\n", money.FormatRupiah(s.TotalExpense))
	fmt.Fprintf(&sb, "Saldo: %s", money.FormatRupiah(s.Balance))

	if len(s.ExpenseByCategory) > 0 {
		sb.WriteString("\n\n<b>Pengeluaran per kategori:</b>")

		for _, c := range s.ExpenseByCategory {
			fmt.Fprintf(&sb, "\n%s %s: %s (%d%%)", c.Icon, html.EscapeString(c.Name), money.FormatRupiah(c.TotalAmount), c.Percentage)
		}
	}

	return sb.String()
}

var severityIcon = map[insight.Severity]string{
	insight.SeverityInfo:     "💡",
	insight.SeverityWarning:  "⚠️",
	insight.SeverityCritical: "🚨",
}

func formatInsights(fi *insight.FinancialInsight) string {
	if len(fi.Insights) == 0 && len(fi.Recommendations) == 0 {
		return "Belum cukup transaksi untuk dianalisis."
	}

	var sb strings.Builder

	sb.WriteString("🔎 <b>Insight Keuangan</b>")

	for _, in := range fi.Insights {
		fmt.Fprintf(&sb, "\n\n%s <b>%s</b>\n%s", severityIcon[in.Severity], html.EscapeString(in.Title), html.EscapeString(in.Description))
	}

	if len(fi.Recommendations) > 0 {
		sb.WriteString("\n\n<b>Rekomendasi:</b>")

		for _, r := range fi.Recommendations {
			fmt.Fprintf(&sb, "\n• %s: %s", html.EscapeString(r.Title), html.EscapeString(r.Action))
		}
	}

	return sb.String()
}

var levelIcon = map[budget.Level]string{
	budget.LevelSafe:     "🟢",
	budget.LevelWarning:  "🟡",
	budget.LevelExceeded: "🔴",
}

func formatBudgets(statuses []*budget.Status, names map[string]string) string {
	if len(statuses) == 0 {
		return "Belum ada anggaran. Atur anggaran lewat aplikasi Dompetku."
	}

	var sb strings.Builder

	sb.WriteString("💰 <b>Status Anggaran</b>")

	for _, st := range statuses {
		name := names[st.Budget.CategoryID.String()]
		if name == "" {
			name = "Kategori terhapus"
		}

		fmt.Fprintf(&sb, "\n\n%s <b>%s</b> %d%%\n%s / %s, sisa %s",
			levelIcon[st.Level], html.EscapeString(name), st.Percentage,
			money.FormatRupiah(st.Spent), money.FormatRupiah(st.Budget.Amount), money.FormatRupiah(st.Remaining))
	}

	return sb.String()
}
