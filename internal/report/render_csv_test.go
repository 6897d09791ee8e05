package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := &Document{
		Brand: Brand{Name: "Lezzet Durağı", Period: "Ocak 2026"},
	}
	doc.Summary.Followers = 12500
	doc.Summary.Reach = 84000
	doc.Summary.Impressions = 2500000
	doc.Summary.FollowersChange = 4.2
	doc.Summary.ImpressionsChange = -1.5
	doc.Summary.ImpressionsAdsPercent = 35
	doc.ProfileActions.ProfileVisits = 4000
	doc.ContentMix = []ContentMixEntry{
		{Name: "Reels", Percent: 60},
		{Name: "Post, Story", Percent: 40},
	}
	doc.GrowthTrends.Reach = []GrowthPoint{{Period: "Ocak", Value: 84000}}
	doc.TopContent = []TopContent{{Title: `En iyi "video"`, Type: "reels", Reach: 1000, Eng: 53}}
	doc.Campaigns = []Campaign{{Name: "Yaz Kampanyası", Objective: "reach", Spend: 2500}}
	doc.Strategies = []string{"Haftada 3 reels"}
	doc.Deliverables.Reels = []string{"Mekan tanıtımı"}
	doc.ServiceFee = ServiceFee{Amount: 12500, Currency: "TRY"}
	doc.applyDefaults()
	return doc
}

func TestRenderCSVStartsWithBOM(t *testing.T) {
	out := RenderCSV(sampleDocument())
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
}

func TestRenderCSVSectionMarkers(t *testing.T) {
	out := string(RenderCSV(sampleDocument()))

	for _, section := range []string{
		"=== MARKA ===",
		"=== ÖZET METRİKLER ===",
		"=== PROFİL ETKİLEŞİMLERİ ===",
		"=== İÇERİK DAĞILIMI ===",
		"=== ERİŞİM TRENDİ ===",
		"=== GÖSTERİM TRENDİ ===",
		"=== EN İYİ İÇERİKLER ===",
		"=== KAMPANYALAR ===",
		"=== STRATEJİLER ===",
		"=== ÖNERİLER ===",
		"=== TESLİM EDİLENLER ===",
		"=== HİZMET BEDELİ ===",
		"=== BANKA BİLGİLERİ ===",
	} {
		assert.Contains(t, out, section)
	}
}

func TestRenderCSVRawNumbers(t *testing.T) {
	out := string(RenderCSV(sampleDocument()))

	// K/M kısaltması yok, ham değerler
	assert.Contains(t, out, "Gösterim,2500000,-1.5")
	assert.Contains(t, out, "Takipçi,12500,4.2")
	assert.NotContains(t, out, "2.5M")
	assert.NotContains(t, out, "12.5K")
}

func TestRenderCSVAdsPercentIsOwnRow(t *testing.T) {
	out := string(RenderCSV(sampleDocument()))

	assert.Contains(t, out, "Reklam Kaynaklı Gösterim (%),35")
	// Gösterim satırında değişim kolonu reklam yüzdesine düşmez
	assert.Contains(t, out, "Gösterim,2500000,-1.5")
}

func TestRenderCSVQuoting(t *testing.T) {
	out := string(RenderCSV(sampleDocument()))

	// Virgüllü alan tırnaklanır
	assert.Contains(t, out, `"Post, Story",40`)
	// Tırnaklı alan çift tırnakla kaçırılır
	assert.Contains(t, out, `"En iyi ""video"""`)
}

func TestRenderCSVObjectiveTranslated(t *testing.T) {
	out := string(RenderCSV(sampleDocument()))
	assert.Contains(t, out, "Yaz Kampanyası,Erişim,2500")
}

func TestRenderCSVEmptyDocument(t *testing.T) {
	doc, err := Parse([]byte("{}"))
	require.NoError(t, err)

	out := string(RenderCSV(doc))
	assert.Contains(t, out, "=== MARKA ===")
	assert.Contains(t, out, "Takipçi,0,0")
}

func TestCSVFileName(t *testing.T) {
	doc := &Document{Brand: Brand{Name: "Lezzet Durağı"}}
	assert.Equal(t, "Lezzet-Durağı-Rapor-2026-01-31.csv", CSVFileName(doc, "2026-01-31"))

	empty := &Document{}
	assert.Equal(t, "Marka-Rapor-2026-01-31.csv", CSVFileName(empty, "2026-01-31"))
}

func TestCSVEscape(t *testing.T) {
	assert.Equal(t, "düz", csvEscape("düz"))
	assert.Equal(t, `"a,b"`, csvEscape("a,b"))
	assert.Equal(t, `"a""b"`, csvEscape(`a"b`))
	assert.False(t, strings.Contains(csvEscape("temiz"), `"`))
}
