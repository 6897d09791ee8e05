package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// utf8BOM: Excel'in Türkçe karakterleri doğru açması için dosya başına eklenir
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RenderCSV: Dokümanı bölüm bölüm düzleştirilmiş CSV'ye çevirir. Her bölüm
// "=== BÖLÜM ADI ===" satırı ile başlar. Sayılar ham değer olarak yazılır
// (K/M kısaltması yok); virgül veya tırnak içeren metinler tırnaklanır.
func RenderCSV(doc *Document) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csvWriter{&buf}

	w.section("MARKA")
	w.row("Marka", doc.Brand.Name)
	w.row("Dönem", doc.Brand.Period)

	w.section("ÖZET METRİKLER")
	w.row("Metrik", "Değer", "Değişim (%)")
	w.row("Takipçi", formatInt(doc.Summary.Followers), formatFloat(doc.Summary.FollowersChange))
	w.row("Erişim", formatInt(doc.Summary.Reach), formatFloat(doc.Summary.ReachChange))
	w.row("Gösterim", formatInt(doc.Summary.Impressions), formatFloat(doc.Summary.ImpressionsChange))
	w.row("Etkileşim Değişimi (%)", formatFloat(doc.Summary.EngagementChange))
	// Reklam kaynaklı gösterim yüzdesi ayrı bir metriktir; gösterim değişimi
	// kolonuna yedek değer olarak yazılmaz.
	w.row("Reklam Kaynaklı Gösterim (%)", formatFloat(doc.Summary.ImpressionsAdsPercent))

	w.section("PROFİL ETKİLEŞİMLERİ")
	w.row("Profil Ziyareti", formatInt(doc.ProfileActions.ProfileVisits))
	w.row("Link Dokunuşu", formatInt(doc.ProfileActions.ExternalLinkTaps))
	w.row("Adres Dokunuşu", formatInt(doc.ProfileActions.AddressTaps))
	w.row("Etkileşim Oranı", formatFloat(EngagementRate(doc)))

	w.section("İÇERİK DAĞILIMI")
	w.row("İçerik Türü", "Yüzde")
	for _, entry := range doc.ContentMix {
		w.row(entry.Name, formatFloat(entry.Percent))
	}

	w.section("ERİŞİM TRENDİ")
	w.row("Dönem", "Değer")
	for _, p := range doc.GrowthTrends.Reach {
		w.row(p.Period, formatInt(p.Value))
	}

	w.section("GÖSTERİM TRENDİ")
	w.row("Dönem", "Değer")
	for _, p := range doc.GrowthTrends.Impressions {
		w.row(p.Period, formatInt(p.Value))
	}

	w.section("EN İYİ İÇERİKLER")
	w.row("Başlık", "Tür", "Erişim", "Etkileşim", "Oran (%)")
	for _, tc := range doc.TopContent {
		w.row(tc.Title, tc.Type, formatInt(tc.Reach), formatInt(tc.Eng), formatFloat(tc.EffectiveRate()))
	}

	w.section("KAMPANYALAR")
	w.row("Kampanya", "Hedef", "Harcama", "Metrik 1", "Değer 1", "Metrik 2", "Değer 2")
	for _, cp := range doc.Campaigns {
		w.row(cp.Name, ObjectiveLabel(cp.Objective), formatFloat(cp.Spend),
			cp.Metric1.Label, cp.Metric1.Value, cp.Metric2.Label, cp.Metric2.Value)
	}

	w.section("STRATEJİLER")
	for _, s := range doc.Strategies {
		w.row(s)
	}

	w.section("ÖNERİLER")
	for _, s := range doc.Recommendations {
		w.row(s)
	}

	w.section("TESLİM EDİLENLER")
	w.row("Tür", "Başlık")
	for _, r := range doc.Deliverables.Reels {
		w.row("Reels", r)
	}
	for _, d := range doc.Deliverables.Designs {
		w.row("Tasarım", d)
	}

	w.section("HİZMET BEDELİ")
	w.row("Tutar", formatFloat(doc.ServiceFee.Amount))
	w.row("Para Birimi", doc.ServiceFee.Currency)

	w.section("BANKA BİLGİLERİ")
	w.row("Hesap Adı", doc.BankInfo.AccountName)
	w.row("Banka", doc.BankInfo.BankName)
	w.row("IBAN", doc.BankInfo.IBAN)

	return buf.Bytes()
}

// CSVFileName: "{marka-adı}-Rapor-{tarih}.csv" (boşluklar tire olur)
func CSVFileName(doc *Document, isoDate string) string {
	return exportFileName(doc, isoDate) + ".csv"
}

func exportFileName(doc *Document, isoDate string) string {
	name := strings.TrimSpace(doc.Brand.Name)
	if name == "" {
		name = "Marka"
	}
	name = strings.Join(strings.Fields(name), "-")
	return fmt.Sprintf("%s-Rapor-%s", name, isoDate)
}

type csvWriter struct {
	buf *bytes.Buffer
}

func (w csvWriter) section(name string) {
	if w.buf.Len() > len(utf8BOM) {
		w.buf.WriteString("\n")
	}
	fmt.Fprintf(w.buf, "=== %s ===\n", name)
}

func (w csvWriter) row(fields ...string) {
	for i, f := range fields {
		if i > 0 {
			w.buf.WriteString(",")
		}
		w.buf.WriteString(csvEscape(f))
	}
	w.buf.WriteString("\n")
}

// csvEscape: Virgül, tırnak veya satır sonu içeren alanlar çift tırnakla sarılır
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
