package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX: Dokümanı tek sayfalık XLSX dosyasına çevirir. CSV ile aynı bölüm
// düzenini kullanır; sayılar ham değer olarak yazılır ki tablo tarafında
// hesaplama yapılabilsin.
func RenderXLSX(doc *Document) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Rapor"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDE3F0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("stil oluşturulamadı: %w", err)
	}

	row := 1
	section := func(title string) {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		row++
	}
	write := func(values ...interface{}) {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	blank := func() { row++ }

	section("MARKA")
	write("Marka", doc.Brand.Name)
	write("Dönem", doc.Brand.Period)
	blank()

	section("ÖZET METRİKLER")
	write("Metrik", "Değer", "Değişim (%)")
	write("Takipçi", doc.Summary.Followers, doc.Summary.FollowersChange)
	write("Erişim", doc.Summary.Reach, doc.Summary.ReachChange)
	write("Gösterim", doc.Summary.Impressions, doc.Summary.ImpressionsChange)
	write("Etkileşim Değişimi (%)", doc.Summary.EngagementChange)
	write("Reklam Kaynaklı Gösterim (%)", doc.Summary.ImpressionsAdsPercent)
	blank()

	section("PROFİL ETKİLEŞİMLERİ")
	write("Profil Ziyareti", doc.ProfileActions.ProfileVisits)
	write("Link Dokunuşu", doc.ProfileActions.ExternalLinkTaps)
	write("Adres Dokunuşu", doc.ProfileActions.AddressTaps)
	write("Etkileşim Oranı", EngagementRate(doc))
	blank()

	section("İÇERİK DAĞILIMI")
	write("İçerik Türü", "Yüzde")
	for _, entry := range doc.ContentMix {
		write(entry.Name, entry.Percent)
	}
	blank()

	section("BÜYÜME TRENDİ")
	write("Dönem", "Erişim", "Gösterim")
	trend := BuildCombinedTrend(doc)
	for i, period := range trend.Periods {
		// Seride karşılığı olmayan dönemin hücresi boş kalır (0 yazılmaz)
		var reach, impr interface{}
		if trend.Reach[i] != nil {
			reach = *trend.Reach[i]
		}
		if trend.Impressions[i] != nil {
			impr = *trend.Impressions[i]
		}
		write(period, reach, impr)
	}
	blank()

	section("EN İYİ İÇERİKLER")
	write("Başlık", "Tür", "Erişim", "Etkileşim", "Oran (%)")
	for _, tc := range doc.TopContent {
		write(tc.Title, tc.Type, tc.Reach, tc.Eng, tc.EffectiveRate())
	}
	blank()

	section("KAMPANYALAR")
	write("Kampanya", "Hedef", "Harcama", "Metrik 1", "Değer 1", "Metrik 2", "Değer 2")
	for _, cp := range doc.Campaigns {
		write(cp.Name, ObjectiveLabel(cp.Objective), cp.Spend,
			cp.Metric1.Label, cp.Metric1.Value, cp.Metric2.Label, cp.Metric2.Value)
	}
	blank()

	lists := []struct {
		title string
		items []string
	}{
		{"STRATEJİLER", doc.Strategies},
		{"ÖNERİLER", doc.Recommendations},
		{"TESLİM EDİLENLER (REELS)", doc.Deliverables.Reels},
		{"TESLİM EDİLENLER (TASARIM)", doc.Deliverables.Designs},
	}
	for _, list := range lists {
		section(list.title)
		for _, item := range list.items {
			write(item)
		}
		blank()
	}

	section("HİZMET BEDELİ VE ÖDEME")
	write("Tutar", doc.ServiceFee.Amount, doc.ServiceFee.Currency)
	write("Hesap Adı", doc.BankInfo.AccountName)
	write("Banka", doc.BankInfo.BankName)
	write("IBAN", doc.BankInfo.IBAN)

	// Okunabilirlik için ilk kolon geniş
	f.SetColWidth(sheet, "A", "A", 32)

	return f, nil
}

// XLSXFileName: Dışa aktarılan XLSX dosya adı
func XLSXFileName(doc *Document, isoDate string) string {
	return exportFileName(doc, isoDate) + ".xlsx"
}
