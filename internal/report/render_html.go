package report

import (
	"fmt"
	"html"
	"strings"
)

// Theme: Görüntüleyici tema tercihi (Setting "theme" anahtarı ile aynı değerler)
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type themeColors struct {
	Background string
	Card       string
	Text       string
	Muted      string
	Accent     string
	Border     string
	Positive   string
	Negative   string
}

var themePalettes = map[Theme]themeColors{
	ThemeDark: {
		Background: "#0f1117",
		Card:       "#1a1d27",
		Text:       "#e8e9ed",
		Muted:      "#8b8e99",
		Accent:     "#7c6cf0",
		Border:     "#2a2e3d",
		Positive:   "#3ecf8e",
		Negative:   "#f0564a",
	},
	ThemeLight: {
		Background: "#f6f7fb",
		Card:       "#ffffff",
		Text:       "#1c1e26",
		Muted:      "#6b6e7a",
		Accent:     "#5b4bd4",
		Border:     "#e3e5ee",
		Positive:   "#1d9e6c",
		Negative:   "#d4443a",
	},
}

// RenderHTML: Kendi başına açılabilen statik HTML raporu üretir. Harici script
// veya stil bağımlılığı yoktur; PDF çıktısı tarayıcının yazdırma ekranından
// alınır. Eksik alanlar varsayılanlarıyla boş bölüm olarak render edilir,
// fonksiyon kısmi dokümanda hata üretmez.
func RenderHTML(doc *Document, theme Theme) string {
	colors, ok := themePalettes[theme]
	if !ok {
		colors = themePalettes[ThemeDark]
	}

	var b strings.Builder

	title := esc(doc.Brand.Name)
	if title == "" {
		title = "Performans Raporu"
	}

	b.WriteString("<!DOCTYPE html>\n<html lang=\"tr\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s - Rapor</title>\n", title)
	writeStyles(&b, colors)
	b.WriteString("</head>\n<body>\n<div class=\"page\">\n")

	// Başlık
	b.WriteString("<header>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", title)
	if doc.Brand.Period != "" {
		fmt.Fprintf(&b, "<p class=\"period\">%s</p>\n", esc(doc.Brand.Period))
	}
	b.WriteString("</header>\n")

	writeSummarySection(&b, doc)
	writeEngagementSection(&b, doc)
	writeContentMixSection(&b, doc)
	writeTrendSection(&b, doc)
	writeTopContentSection(&b, doc)
	writeCampaignSection(&b, doc)
	writeListSection(&b, "Stratejiler", doc.Strategies)
	writeListSection(&b, "Öneriler", doc.Recommendations)
	writeDeliverablesSection(&b, doc)
	writeFeeAndBankSection(&b, doc)

	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}

func writeStyles(b *strings.Builder, c themeColors) {
	fmt.Fprintf(b, `<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { background: %s; color: %s; font-family: 'Segoe UI', Arial, sans-serif; }
.page { max-width: 960px; margin: 0 auto; padding: 32px 24px; }
header { margin-bottom: 32px; }
header h1 { font-size: 28px; }
.period { color: %s; margin-top: 4px; }
section { margin-bottom: 28px; }
section h2 { font-size: 18px; margin-bottom: 12px; }
section h3 { font-size: 14px; margin: 10px 0 6px; }
.tiles { display: flex; flex-wrap: wrap; gap: 12px; }
.tile { background: %s; border: 1px solid %s; border-radius: 10px; padding: 16px; min-width: 180px; flex: 1; }
.tile .label { color: %s; font-size: 13px; }
.tile .value { font-size: 24px; font-weight: 600; margin-top: 4px; }
.badge-up { color: %s; font-size: 13px; }
.badge-down { color: %s; font-size: 13px; }
table { width: 100%%; border-collapse: collapse; background: %s; border: 1px solid %s; border-radius: 10px; }
th, td { text-align: left; padding: 10px 12px; border-bottom: 1px solid %s; font-size: 14px; }
th { color: %s; font-weight: 600; }
ul.plain { list-style: none; }
ul.plain li { background: %s; border: 1px solid %s; border-radius: 8px; padding: 10px 14px; margin-bottom: 8px; font-size: 14px; }
.empty { color: %s; font-style: italic; font-size: 14px; }
.iban { font-family: monospace; letter-spacing: 1px; }
@media print { body { background: #ffffff; } }
</style>
`, c.Background, c.Text, c.Muted, c.Card, c.Border, c.Muted, c.Positive, c.Negative,
		c.Card, c.Border, c.Border, c.Muted, c.Card, c.Border, c.Muted)
}

func writeSummarySection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>Özet Metrikler</h2>\n<div class=\"tiles\">\n")
	writeTile(b, "Takipçi", FormatCompact(doc.Summary.Followers), doc.Summary.FollowersChange)
	writeTile(b, "Erişim", FormatCompact(doc.Summary.Reach), doc.Summary.ReachChange)
	writeTile(b, "Gösterim", FormatCompact(doc.Summary.Impressions), doc.Summary.ImpressionsChange)
	b.WriteString("</div>\n</section>\n")
}

func writeTile(b *strings.Builder, label, value string, change float64) {
	badgeClass := "badge-up"
	if change < 0 {
		badgeClass = "badge-down"
	}
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">%s</div><div class=\"value\">%s</div><div class=\"%s\">%s</div></div>\n",
		esc(label), esc(value), badgeClass, FormatChange(change))
}

func writeEngagementSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>Profil Etkileşimleri</h2>\n<div class=\"tiles\">\n")
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">Profil Ziyareti</div><div class=\"value\">%s</div></div>\n",
		FormatCompact(doc.ProfileActions.ProfileVisits))
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">Link Dokunuşu</div><div class=\"value\">%s</div></div>\n",
		FormatCompact(doc.ProfileActions.ExternalLinkTaps))
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">Adres Dokunuşu</div><div class=\"value\">%s</div></div>\n",
		FormatCompact(doc.ProfileActions.AddressTaps))
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">Etkileşim Oranı</div><div class=\"value\">%s</div></div>\n",
		FormatPercent(EngagementRate(doc)))
	b.WriteString("</div>\n</section>\n")
}

func writeContentMixSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>İçerik Dağılımı</h2>\n")
	if len(doc.ContentMix) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n</section>\n")
		return
	}
	b.WriteString("<table>\n<tr><th>İçerik Türü</th><th>Yüzde</th></tr>\n")
	for _, entry := range doc.ContentMix {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%%%.1f</td></tr>\n", esc(entry.Name), entry.Percent)
	}
	b.WriteString("</table>\n</section>\n")
}

func writeTrendSection(b *strings.Builder, doc *Document) {
	trend := BuildCombinedTrend(doc)
	b.WriteString("<section>\n<h2>Büyüme Trendi</h2>\n")
	if len(trend.Periods) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n</section>\n")
		return
	}
	b.WriteString("<table>\n<tr><th>Dönem</th><th>Erişim</th><th>Gösterim</th></tr>\n")
	for i, period := range trend.Periods {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			esc(period), trendCell(trend.Reach[i]), trendCell(trend.Impressions[i]))
	}
	b.WriteString("</table>\n</section>\n")
}

// trendCell: Seride karşılığı olmayan dönem "-" olarak gösterilir (0 değil)
func trendCell(v *int64) string {
	if v == nil {
		return "-"
	}
	return FormatCompact(*v)
}

func writeTopContentSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>En İyi İçerikler</h2>\n")
	if len(doc.TopContent) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n</section>\n")
		return
	}
	b.WriteString("<table>\n<tr><th>Başlık</th><th>Tür</th><th>Erişim</th><th>Etkileşim</th><th>Oran</th></tr>\n")
	for _, tc := range doc.TopContent {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%%%.1f</td></tr>\n",
			esc(tc.Title), esc(tc.Type), FormatCompact(tc.Reach), FormatCompact(tc.Eng), tc.EffectiveRate())
	}
	b.WriteString("</table>\n</section>\n")
}

func writeCampaignSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>Kampanyalar</h2>\n")
	if len(doc.Campaigns) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n</section>\n")
		return
	}
	b.WriteString("<div class=\"tiles\">\n")
	for _, cp := range doc.Campaigns {
		fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">%s · %s</div><div class=\"value\">%s</div>",
			esc(cp.Name), esc(ObjectiveLabel(cp.Objective)), esc(FormatMoney(cp.Spend, "TRY")))
		if cp.Metric1.Label != "" {
			fmt.Fprintf(b, "<div class=\"label\">%s: %s</div>", esc(cp.Metric1.Label), esc(cp.Metric1.Value))
		}
		if cp.Metric2.Label != "" {
			fmt.Fprintf(b, "<div class=\"label\">%s: %s</div>", esc(cp.Metric2.Label), esc(cp.Metric2.Value))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n</section>\n")
}

func writeListSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "<section>\n<h2>%s</h2>\n", esc(title))
	if len(items) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n</section>\n")
		return
	}
	b.WriteString("<ul class=\"plain\">\n")
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>\n", esc(item))
	}
	b.WriteString("</ul>\n</section>\n")
}

func writeDeliverablesSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>Teslim Edilenler</h2>\n")
	b.WriteString("<h3>Reels</h3>\n")
	if len(doc.Deliverables.Reels) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n")
	} else {
		b.WriteString("<ul class=\"plain\">\n")
		for _, r := range doc.Deliverables.Reels {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(r))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("<h3>Tasarımlar</h3>\n")
	if len(doc.Deliverables.Designs) == 0 {
		b.WriteString("<p class=\"empty\">Henüz eklenmedi</p>\n")
	} else {
		b.WriteString("<ul class=\"plain\">\n")
		for _, d := range doc.Deliverables.Designs {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(d))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</section>\n")
}

func writeFeeAndBankSection(b *strings.Builder, doc *Document) {
	b.WriteString("<section>\n<h2>Hizmet Bedeli ve Ödeme</h2>\n<div class=\"tiles\">\n")
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">Hizmet Bedeli</div><div class=\"value\">%s</div></div>\n",
		esc(FormatMoney(doc.ServiceFee.Amount, doc.ServiceFee.Currency)))
	fmt.Fprintf(b, "<div class=\"tile\"><div class=\"label\">%s · %s</div><div class=\"value iban\">%s</div></div>\n",
		esc(doc.BankInfo.AccountName), esc(doc.BankInfo.BankName), esc(doc.BankInfo.IBAN))
	b.WriteString("</div>\n</section>\n")
}

// HTMLFileName: Dışa aktarılan HTML dosya adı
func HTMLFileName(doc *Document, isoDate string) string {
	return exportFileName(doc, isoDate) + ".html"
}

func esc(s string) string {
	return html.EscapeString(s)
}
