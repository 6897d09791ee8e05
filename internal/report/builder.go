package report

// FormFields: Rapor editöründen gelen ham form alanları. Sayısal alanlar
// serbest metin olarak gelir; çözümlenemeyen girdi hata değildir, 0 kabul
// edilir. Liste alanları satır satır yazılmış serbest metindir.
type FormFields struct {
	BrandName string `json:"brand_name"`
	Period    string `json:"period"`

	Followers   string `json:"followers"`
	Reach       string `json:"reach"`
	Impressions string `json:"impressions"`

	FollowersChange       string `json:"followers_change"`
	ReachChange           string `json:"reach_change"`
	ImpressionsChange     string `json:"impressions_change"`
	EngagementChange      string `json:"engagement_change"`
	ImpressionsAdsPercent string `json:"impressions_ads_percent"`

	ProfileVisits    string `json:"profile_visits"`
	ExternalLinkTaps string `json:"external_link_taps"`
	AddressTaps      string `json:"address_taps"`

	ContentMix []FormContentMixEntry `json:"content_mix"`

	ReachTrend       []FormGrowthPoint `json:"reach_trend"`
	ImpressionsTrend []FormGrowthPoint `json:"impressions_trend"`

	TopContent []FormTopContent `json:"top_content"`
	Campaigns  []FormCampaign   `json:"campaigns"`

	StrategiesText      string `json:"strategies_text"`      // satır başına bir madde
	RecommendationsText string `json:"recommendations_text"` // satır başına bir madde

	ReelsText   string `json:"reels_text"`
	DesignsText string `json:"designs_text"`

	ServiceFeeAmount   string `json:"service_fee_amount"`
	ServiceFeeCurrency string `json:"service_fee_currency"`

	BankAccountName string `json:"bank_account_name"`
	BankName        string `json:"bank_name"`
	IBAN            string `json:"iban"`
}

type FormContentMixEntry struct {
	Name    string `json:"name"`
	Percent string `json:"percent"`
}

type FormGrowthPoint struct {
	Period string `json:"period"`
	Value  string `json:"value"`
}

type FormTopContent struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Reach string `json:"reach"`
	Eng   string `json:"eng"`
	Rate  string `json:"rate"`
}

type FormCampaign struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Spend     string `json:"spend"`
	Metric1   CampaignMetric `json:"metric1"`
	Metric2   CampaignMetric `json:"metric2"`
}

// Build: Form alanlarından kanonik dokümanı üretir. Normal girdi altında
// başarısız olamaz; bozuk sayılar 0'a düşer, boş satırlar atılır.
func Build(fields FormFields) *Document {
	doc := &Document{
		Brand: Brand{
			Name:   fields.BrandName,
			Period: fields.Period,
		},
		Summary: SummaryMetrics{
			Followers:             ParseCount(fields.Followers),
			Reach:                 ParseCount(fields.Reach),
			Impressions:           ParseCount(fields.Impressions),
			FollowersChange:       ParseNumber(fields.FollowersChange),
			ReachChange:           ParseNumber(fields.ReachChange),
			ImpressionsChange:     ParseNumber(fields.ImpressionsChange),
			EngagementChange:      ParseNumber(fields.EngagementChange),
			ImpressionsAdsPercent: ParseNumber(fields.ImpressionsAdsPercent),
		},
		ProfileActions: ProfileActions{
			ProfileVisits:    ParseCount(fields.ProfileVisits),
			ExternalLinkTaps: ParseCount(fields.ExternalLinkTaps),
			AddressTaps:      ParseCount(fields.AddressTaps),
		},
		Strategies:      SplitLines(fields.StrategiesText),
		Recommendations: SplitLines(fields.RecommendationsText),
		Deliverables: DeliverablesBundle{
			Reels:   SplitLines(fields.ReelsText),
			Designs: SplitLines(fields.DesignsText),
		},
		ServiceFee: ServiceFee{
			Amount:   ParseNumber(fields.ServiceFeeAmount),
			Currency: fields.ServiceFeeCurrency,
		},
		BankInfo: BankInfo{
			AccountName: fields.BankAccountName,
			BankName:    fields.BankName,
			IBAN:        fields.IBAN,
		},
	}

	for _, entry := range fields.ContentMix {
		doc.ContentMix = append(doc.ContentMix, ContentMixEntry{
			Name:    entry.Name,
			Percent: ParseNumber(entry.Percent),
		})
	}
	for _, p := range fields.ReachTrend {
		doc.GrowthTrends.Reach = append(doc.GrowthTrends.Reach, GrowthPoint{
			Period: p.Period,
			Value:  ParseCount(p.Value),
		})
	}
	for _, p := range fields.ImpressionsTrend {
		doc.GrowthTrends.Impressions = append(doc.GrowthTrends.Impressions, GrowthPoint{
			Period: p.Period,
			Value:  ParseCount(p.Value),
		})
	}
	for _, tc := range fields.TopContent {
		doc.TopContent = append(doc.TopContent, TopContent{
			Title: tc.Title,
			Type:  tc.Type,
			Reach: ParseCount(tc.Reach),
			Eng:   ParseCount(tc.Eng),
			Rate:  ParseNumber(tc.Rate),
		})
	}
	for _, cp := range fields.Campaigns {
		doc.Campaigns = append(doc.Campaigns, Campaign{
			Name:      cp.Name,
			Objective: cp.Objective,
			Spend:     ParseNumber(cp.Spend),
			Metric1:   cp.Metric1,
			Metric2:   cp.Metric2,
		})
	}

	doc.applyDefaults()
	return doc
}
