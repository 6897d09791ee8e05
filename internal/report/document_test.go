package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsInvalidJSON(t *testing.T) {
	doc, err := Parse([]byte("{bozuk"))
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "rapor JSON verisi geçersiz")
}

func TestParseEmptyObjectDefaults(t *testing.T) {
	doc, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.NotNil(t, doc.ContentMix)
	assert.Empty(t, doc.ContentMix)
	assert.NotNil(t, doc.GrowthTrends.Reach)
	assert.NotNil(t, doc.GrowthTrends.Impressions)
	assert.NotNil(t, doc.TopContent)
	assert.NotNil(t, doc.Campaigns)
	assert.NotNil(t, doc.Strategies)
	assert.NotNil(t, doc.Recommendations)
	assert.NotNil(t, doc.Deliverables.Reels)
	assert.NotNil(t, doc.Deliverables.Designs)
	assert.Equal(t, "TRY", doc.ServiceFee.Currency)
	assert.Zero(t, doc.Summary.Followers)
}

func TestParseKeepsSuppliedCurrency(t *testing.T) {
	doc, err := Parse([]byte(`{"service_fee":{"amount":100,"currency":"USD"}}`))
	require.NoError(t, err)
	assert.Equal(t, "USD", doc.ServiceFee.Currency)
}

func TestEngagementRate(t *testing.T) {
	doc := &Document{}
	doc.Summary.Reach = 450
	doc.ProfileActions.ProfileVisits = 100
	doc.ProfileActions.ExternalLinkTaps = 30
	doc.ProfileActions.AddressTaps = 20

	assert.InDelta(t, 3.0, EngagementRate(doc), 1e-9)
}

func TestEngagementRateZeroDenominator(t *testing.T) {
	doc := &Document{}
	doc.Summary.Reach = 450

	assert.Equal(t, 0.0, EngagementRate(doc))
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name string
		tc   TopContent
		want float64
	}{
		{"girilen oran korunur", TopContent{Reach: 1000, Eng: 50, Rate: 7.5}, 7.5},
		{"orandan türetme", TopContent{Reach: 1000, Eng: 53}, 5.3},
		{"yuvarlama tek basamak", TopContent{Reach: 3000, Eng: 100}, 3.3},
		{"erişim sıfırsa sıfır", TopContent{Reach: 0, Eng: 50}, 0},
		{"tamamen boş", TopContent{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.tc.EffectiveRate(), 1e-9)
		})
	}
}

func TestBuildCombinedTrendUnionsPeriods(t *testing.T) {
	doc := &Document{}
	doc.GrowthTrends.Reach = []GrowthPoint{
		{Period: "Ocak", Value: 100},
		{Period: "Şubat", Value: 150},
	}
	doc.GrowthTrends.Impressions = []GrowthPoint{
		{Period: "Şubat", Value: 300},
		{Period: "Mart", Value: 400},
	}

	trend := BuildCombinedTrend(doc)

	require.Equal(t, []string{"Ocak", "Şubat", "Mart"}, trend.Periods)

	// Ocak: sadece erişim
	require.NotNil(t, trend.Reach[0])
	assert.EqualValues(t, 100, *trend.Reach[0])
	assert.Nil(t, trend.Impressions[0])

	// Şubat: ikisi de var
	require.NotNil(t, trend.Reach[1])
	assert.EqualValues(t, 150, *trend.Reach[1])
	require.NotNil(t, trend.Impressions[1])
	assert.EqualValues(t, 300, *trend.Impressions[1])

	// Mart: sadece gösterim
	assert.Nil(t, trend.Reach[2])
	require.NotNil(t, trend.Impressions[2])
	assert.EqualValues(t, 400, *trend.Impressions[2])
}

func TestBuildCombinedTrendEmpty(t *testing.T) {
	trend := BuildCombinedTrend(&Document{})
	assert.Empty(t, trend.Periods)
	assert.Empty(t, trend.Reach)
	assert.Empty(t, trend.Impressions)
}

func TestObjectiveLabel(t *testing.T) {
	assert.Equal(t, "Erişim", ObjectiveLabel("reach"))
	assert.Equal(t, "Dönüşüm", ObjectiveLabel("conversion"))
	assert.Equal(t, "Trafik", ObjectiveLabel(" Traffic "))
	assert.Equal(t, "Etkileşim", ObjectiveLabel("engagement"))
	assert.Equal(t, "Etkileşim", ObjectiveLabel("bilinmeyen-hedef"))
	assert.Equal(t, "Etkileşim", ObjectiveLabel(""))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"123", 123},
		{"12.5", 12.5},
		{"  42 ", 42},
		{"%15", 15},
		{"3,5", 3.5},
		{"1.250,5", 1250.5},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"-7.5", -7.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.in), 1e-9)
		})
	}
}

func TestParseCount(t *testing.T) {
	assert.EqualValues(t, 1250, ParseCount("1.250,0"))
	assert.EqualValues(t, 12, ParseCount("12.9"))
	assert.EqualValues(t, 0, ParseCount("yok"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t,
		[]string{"birinci", "ikinci", "üçüncü"},
		SplitLines("birinci\n\n  ikinci  \r\nüçüncü\n"))
	assert.Equal(t, []string{}, SplitLines(""))
	assert.Equal(t, []string{}, SplitLines("\n \n"))
}

func TestSerializeRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{"brand":{"name":"Lezzet Durağı","period":"Ocak 2026"}}`))
	require.NoError(t, err)

	out, err := Serialize(doc)
	require.NoError(t, err)

	doc2, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, doc, doc2)
}
