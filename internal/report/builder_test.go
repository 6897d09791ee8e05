package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFromFormFields(t *testing.T) {
	fields := FormFields{
		BrandName:             "Kahve Köşesi",
		Period:                "Şubat 2026",
		Followers:             "12.500,0",
		Reach:                 "84000",
		Impressions:           "bozuk",
		FollowersChange:       "%4,2",
		ImpressionsAdsPercent: "35",
		ProfileVisits:         "4000",
		ContentMix: []FormContentMixEntry{
			{Name: "Reels", Percent: "60"},
			{Name: "Post", Percent: "kırk"},
		},
		ReachTrend: []FormGrowthPoint{
			{Period: "Ocak", Value: "70000"},
			{Period: "Şubat", Value: "84000"},
		},
		TopContent: []FormTopContent{
			{Title: "Mekan turu", Type: "reels", Reach: "1000", Eng: "53", Rate: ""},
		},
		StrategiesText:     "Haftada 3 reels\n\nAyda 1 kampanya\n",
		ReelsText:          "Tanıtım videosu",
		ServiceFeeAmount:   "12500",
		ServiceFeeCurrency: "TRY",
		IBAN:               "TR00 0000 0000 0000 0000 0000 00",
	}

	doc := Build(fields)

	assert.Equal(t, "Kahve Köşesi", doc.Brand.Name)
	assert.EqualValues(t, 12500, doc.Summary.Followers)
	assert.EqualValues(t, 84000, doc.Summary.Reach)
	// Çözümlenemeyen sayı 0'a düşer, hata üretmez
	assert.EqualValues(t, 0, doc.Summary.Impressions)
	assert.InDelta(t, 4.2, doc.Summary.FollowersChange, 1e-9)
	assert.InDelta(t, 35, doc.Summary.ImpressionsAdsPercent, 1e-9)

	require.Len(t, doc.ContentMix, 2)
	assert.InDelta(t, 60, doc.ContentMix[0].Percent, 1e-9)
	assert.InDelta(t, 0, doc.ContentMix[1].Percent, 1e-9)

	require.Len(t, doc.GrowthTrends.Reach, 2)
	assert.Equal(t, "Ocak", doc.GrowthTrends.Reach[0].Period)
	assert.EqualValues(t, 70000, doc.GrowthTrends.Reach[0].Value)

	require.Len(t, doc.TopContent, 1)
	assert.InDelta(t, 5.3, doc.TopContent[0].EffectiveRate(), 1e-9)

	assert.Equal(t, []string{"Haftada 3 reels", "Ayda 1 kampanya"}, doc.Strategies)
	assert.Equal(t, []string{"Tanıtım videosu"}, doc.Deliverables.Reels)
	assert.InDelta(t, 12500, doc.ServiceFee.Amount, 1e-9)
	assert.Equal(t, "TR00 0000 0000 0000 0000 0000 00", doc.BankInfo.IBAN)
}

func TestBuildEmptyFormProducesRenderableDocument(t *testing.T) {
	doc := Build(FormFields{})

	// Boş form geçerli bir doküman üretir; tüm renderer'lar çalışır
	assert.NotNil(t, doc.ContentMix)
	assert.NotNil(t, doc.Strategies)
	assert.Equal(t, "TRY", doc.ServiceFee.Currency)

	out := RenderCSV(doc)
	assert.NotEmpty(t, out)
	htmlOut := RenderHTML(doc, ThemeLight)
	assert.Contains(t, htmlOut, "Performans Raporu")

	f, err := RenderXLSX(doc)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()
}

func TestBuildThenSerializeThenParse(t *testing.T) {
	doc := Build(FormFields{BrandName: "Atölye", Followers: "1500"})

	raw, err := Serialize(doc)
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)
}
