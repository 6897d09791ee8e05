package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Document: Müşteri performans raporunun kanonik JSON hali. Editör tarafında
// üretilir, görüntüleyici tarafında tüketilir; iki yüzey birbirinden bağımsız
// olduğu için alan bazında geriye dönük uyumlu kalmalıdır. Eksik alan hata
// değildir: her sayısal alan 0, her liste boş varsayılır.
type Document struct {
	Brand           Brand              `json:"brand"`
	Summary         SummaryMetrics     `json:"summary"`
	ProfileActions  ProfileActions     `json:"profile_actions"`
	ContentMix      []ContentMixEntry  `json:"content_mix"`
	GrowthTrends    GrowthTrends       `json:"growth_trends"`
	TopContent      []TopContent       `json:"top_content"`
	Campaigns       []Campaign         `json:"campaigns"`
	Strategies      []string           `json:"strategies"`
	Recommendations []string           `json:"recommendations"`
	Deliverables    DeliverablesBundle `json:"deliverables"`
	ServiceFee      ServiceFee         `json:"service_fee"`
	BankInfo        BankInfo           `json:"bank_info"`
}

type Brand struct {
	Name   string `json:"name"`
	Period string `json:"period"` // örn: "Ocak 2026"
}

type SummaryMetrics struct {
	Followers   int64 `json:"followers"`
	Reach       int64 `json:"reach"`
	Impressions int64 `json:"impressions"`

	// Bir önceki döneme göre değişim yüzdeleri (işaretli)
	FollowersChange   float64 `json:"followers_change"`
	ReachChange       float64 `json:"reach_change"`
	ImpressionsChange float64 `json:"impressions_change"`
	EngagementChange  float64 `json:"engagement_change"`

	// Gösterimlerin reklam kaynaklı yüzdesi. ImpressionsChange'ten ayrı bir
	// metrik; dışa aktarmada birbirinin yerine kullanılmaz.
	ImpressionsAdsPercent float64 `json:"impressions_ads_percent"`
}

type ProfileActions struct {
	ProfileVisits    int64 `json:"profile_visits"`
	ExternalLinkTaps int64 `json:"external_link_taps"`
	AddressTaps      int64 `json:"address_taps"`
}

type ContentMixEntry struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"` // 0-100; toplamın 100 olması zorunlu tutulmaz
}

type GrowthPoint struct {
	Period string `json:"period"`
	Value  int64  `json:"value"`
}

type GrowthTrends struct {
	Reach       []GrowthPoint `json:"reach"`
	Impressions []GrowthPoint `json:"impressions"`
}

type TopContent struct {
	Title string  `json:"title"`
	Type  string  `json:"type"` // reels / post / story
	Reach int64   `json:"reach"`
	Eng   int64   `json:"eng"`
	Rate  float64 `json:"rate"` // yüzde; 0 ise eng/reach'ten türetilir
}

type CampaignMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Campaign struct {
	Name      string         `json:"name"`
	Objective string         `json:"objective"` // lookup tablosundan etikete çevrilir
	Spend     float64        `json:"spend"`
	Metric1   CampaignMetric `json:"metric1"`
	Metric2   CampaignMetric `json:"metric2"`
}

type DeliverablesBundle struct {
	Reels   []string `json:"reels"`
	Designs []string `json:"designs"`
}

type ServiceFee struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type BankInfo struct {
	AccountName string `json:"account_name"`
	BankName    string `json:"bank_name"`
	IBAN        string `json:"iban"`
}

// Parse: Ham JSON metnini dokümana çevirir. Geçersiz JSON açık bir hata ile
// döner; yarım doküman üretilmez. Geçerli ama eksik alanlı JSON hata değildir.
func Parse(jsonText []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(jsonText, &doc); err != nil {
		return nil, fmt.Errorf("rapor JSON verisi geçersiz: %w", err)
	}
	doc.applyDefaults()
	return &doc, nil
}

// applyDefaults: nil listeleri boş listeye, boş para birimini TRY'ye çevirir.
// Renderer'lar nil kontrolü yapmak zorunda kalmasın diye.
func (d *Document) applyDefaults() {
	if d.ContentMix == nil {
		d.ContentMix = []ContentMixEntry{}
	}
	if d.GrowthTrends.Reach == nil {
		d.GrowthTrends.Reach = []GrowthPoint{}
	}
	if d.GrowthTrends.Impressions == nil {
		d.GrowthTrends.Impressions = []GrowthPoint{}
	}
	if d.TopContent == nil {
		d.TopContent = []TopContent{}
	}
	if d.Campaigns == nil {
		d.Campaigns = []Campaign{}
	}
	if d.Strategies == nil {
		d.Strategies = []string{}
	}
	if d.Recommendations == nil {
		d.Recommendations = []string{}
	}
	if d.Deliverables.Reels == nil {
		d.Deliverables.Reels = []string{}
	}
	if d.Deliverables.Designs == nil {
		d.Deliverables.Designs = []string{}
	}
	if d.ServiceFee.Currency == "" {
		d.ServiceFee.Currency = "TRY"
	}
}

// Serialize: Dokümanı insan tarafından diff'lenebilir kanonik JSON metnine
// çevirir (2 boşluk girinti, sabit alan sırası).
func Serialize(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EngagementRate: Profil etkileşimi başına erişim yaklaşımı.
// reach / (profil ziyareti + link dokunuşu + adres dokunuşu); payda 0 ise 0.
func EngagementRate(doc *Document) float64 {
	denom := doc.ProfileActions.ProfileVisits + doc.ProfileActions.ExternalLinkTaps + doc.ProfileActions.AddressTaps
	if denom <= 0 {
		return 0
	}
	return float64(doc.Summary.Reach) / float64(denom)
}

// EffectiveRate: Etkileşim oranı. Veri girilmişse onu kullanır, yoksa
// eng/reach*100 olarak türetir (1 ondalık basamağa yuvarlanır).
// reach 0 ise 0 döner, asla NaN/Inf üretmez.
func (tc TopContent) EffectiveRate() float64 {
	if tc.Rate != 0 {
		return tc.Rate
	}
	if tc.Reach <= 0 {
		return 0
	}
	return math.Round(float64(tc.Eng)/float64(tc.Reach)*1000) / 10
}

// CombinedTrend: Erişim ve gösterim serilerinin birleşik grafiği.
// Dönem etiketleri iki seride ayrışabilir; eksen, önce erişim sonra gösterim
// serisinde ilk görülme sırası korunarak birleştirilir. Bir seride karşılığı
// olmayan dönem nil ile temsil edilir (0 değil, atlanmaz).
type CombinedTrend struct {
	Periods     []string `json:"periods"`
	Reach       []*int64 `json:"reach"`
	Impressions []*int64 `json:"impressions"`
}

func BuildCombinedTrend(doc *Document) CombinedTrend {
	var periods []string
	seen := map[string]bool{}

	for _, p := range doc.GrowthTrends.Reach {
		if !seen[p.Period] {
			seen[p.Period] = true
			periods = append(periods, p.Period)
		}
	}
	for _, p := range doc.GrowthTrends.Impressions {
		if !seen[p.Period] {
			seen[p.Period] = true
			periods = append(periods, p.Period)
		}
	}

	reachByPeriod := map[string]int64{}
	for _, p := range doc.GrowthTrends.Reach {
		reachByPeriod[p.Period] = p.Value
	}
	imprByPeriod := map[string]int64{}
	for _, p := range doc.GrowthTrends.Impressions {
		imprByPeriod[p.Period] = p.Value
	}

	trend := CombinedTrend{
		Periods:     periods,
		Reach:       make([]*int64, len(periods)),
		Impressions: make([]*int64, len(periods)),
	}
	for i, period := range periods {
		if v, ok := reachByPeriod[period]; ok {
			val := v
			trend.Reach[i] = &val
		}
		if v, ok := imprByPeriod[period]; ok {
			val := v
			trend.Impressions[i] = &val
		}
	}
	return trend
}

// objectiveLabels: Kampanya hedefi anahtarlarının Türkçe karşılıkları
var objectiveLabels = map[string]string{
	"engagement": "Etkileşim",
	"reach":      "Erişim",
	"traffic":    "Trafik",
	"conversion": "Dönüşüm",
	"awareness":  "Bilinirlik",
	"followers":  "Takipçi Kazanımı",
	"messages":   "Mesaj",
}

// ObjectiveLabel: Bilinmeyen hedefler varsayılan etikete düşer.
func ObjectiveLabel(objective string) string {
	if label, ok := objectiveLabels[strings.ToLower(strings.TrimSpace(objective))]; ok {
		return label
	}
	return "Etkileşim"
}

// ParseNumber: Form girdisi için hoşgörülü sayı çözümleyici. Boş veya sayı
// olmayan girdi 0 döner, hata üretmez. Türkçe ondalık virgülü kabul edilir.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, " ", "")
	// "1.250,5" gibi Türkçe biçim: binlik noktaları at, virgülü noktaya çevir
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCount: ParseNumber'ın tam sayı hali (takipçi, erişim gibi alanlar için)
func ParseCount(s string) int64 {
	return int64(ParseNumber(s))
}

// SplitLines: Serbest metni satır listesine çevirir; boş satırlar atılır.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
