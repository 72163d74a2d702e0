package recommendation

// The default weights below were hand-tuned on the storefront's live traffic
// and have no documented derivation. They are deliberately configuration, not
// constants, so product owners can adjust them without touching scoring code.

type PopularityWeights struct {
	Views          float64 `yaml:"views"`
	Clicks         float64 `yaml:"clicks"`
	ClickRate      float64 `yaml:"click_rate"`
	CartRate       float64 `yaml:"cart_rate"`
	PurchaseRate   float64 `yaml:"purchase_rate"`
	ConversionRate float64 `yaml:"conversion_rate"`
	Rating         float64 `yaml:"rating"`
	ReviewCount    float64 `yaml:"review_count"`

	// Log-compression caps for the raw magnitude terms.
	ViewsCap   float64 `yaml:"views_cap"`
	ClicksCap  float64 `yaml:"clicks_cap"`
	ReviewsCap float64 `yaml:"reviews_cap"`
}

type SimilarityWeights struct {
	Category    float64 `yaml:"category"`
	Brand       float64 `yaml:"brand"`
	Price       float64 `yaml:"price"`
	Rating      float64 `yaml:"rating"`
	Subcategory float64 `yaml:"subcategory"`
}

type EngineWeights struct {
	Popularity        float64 `yaml:"popularity"`
	CategoryBoost     float64 `yaml:"category_boost"`
	BrandBoost        float64 `yaml:"brand_boost"`
	PriceRangeBoost   float64 `yaml:"price_range_boost"`
	PriceRangePenalty float64 `yaml:"price_range_penalty"`
	Similarity        float64 `yaml:"similarity"`

	// SimilarBoosterThreshold is the pairwise similarity above which the
	// "similar to" booster fires for explanations.
	SimilarBoosterThreshold float64 `yaml:"similar_booster_threshold"`

	Recency            float64 `yaml:"recency"`
	RecencyHorizonDays float64 `yaml:"recency_horizon_days"`
	Discount           float64 `yaml:"discount"`

	OutOfStockPenalty   float64 `yaml:"out_of_stock_penalty"`
	LowStockPenalty     float64 `yaml:"low_stock_penalty"`
	LimitedStockPenalty float64 `yaml:"limited_stock_penalty"`

	// TrendingThreshold marks a candidate as trending by popularity alone.
	TrendingThreshold float64 `yaml:"trending_threshold"`

	// Discovery blend: up to TrendingShare of the limit is reserved for
	// candidates whose blended score reaches TrendingMinScore.
	TrendingShare    float64 `yaml:"trending_share"`
	TrendingMinScore float64 `yaml:"trending_min_score"`
}

type ComplementaryWeights struct {
	Popularity      float64 `yaml:"popularity"`
	AdjacencyBoost  float64 `yaml:"adjacency_boost"`
	PriceCompat     float64 `yaml:"price_compat"`
	PriceRatioCap   float64 `yaml:"price_ratio_cap"`
	PriceRatioIdeal float64 `yaml:"price_ratio_ideal"`
	RatingBonus     float64 `yaml:"rating_bonus"`
	RatingFloor     float64 `yaml:"rating_floor"`
}

type Weights struct {
	Popularity    PopularityWeights    `yaml:"popularity"`
	Similarity    SimilarityWeights    `yaml:"similarity"`
	Engine        EngineWeights        `yaml:"engine"`
	Complementary ComplementaryWeights `yaml:"complementary"`

	// Complements maps a category to the categories that pair with it.
	// Unknown categories get no restriction at all.
	Complements map[string][]string `yaml:"complements"`
}

const (
	defaultViewsWeight          = 0.15
	defaultClicksWeight         = 0.20
	defaultClickRateWeight      = 0.15
	defaultCartRateWeight       = 0.18
	defaultPurchaseRateWeight   = 0.22
	defaultConversionWeight     = 0.05
	defaultRatingWeight         = 0.15
	defaultReviewCountWeight    = 0.05
	defaultViewsCap             = 5000
	defaultClicksCap            = 2000
	defaultReviewsCap           = 2000
	defaultSimCategoryWeight    = 0.35
	defaultSimBrandWeight       = 0.25
	defaultSimPriceWeight       = 0.15
	defaultSimRatingWeight      = 0.15
	defaultSimSubcategoryWeight = 0.10
	defaultEnginePopularity     = 0.4
	defaultCategoryBoost        = 0.20
	defaultBrandBoost           = 0.15
	defaultPriceRangeBoost      = 0.10
	defaultPriceRangePenalty    = 0.10
	defaultSimilarityWeight     = 0.25
	defaultSimilarThreshold     = 0.55
	defaultRecencyWeight        = 0.05
	defaultRecencyHorizonDays   = 90
	defaultDiscountWeight       = 0.08
	defaultOutOfStockPenalty    = 0.4
	defaultLowStockPenalty      = 0.15
	defaultLimitedStockPenalty  = 0.05
	defaultTrendingThreshold    = 0.6
	defaultTrendingShare        = 0.25
	defaultTrendingMinScore     = 0.6
	defaultCompPopularity       = 0.6
	defaultAdjacencyBoost       = 0.2
	defaultPriceCompatWeight    = 0.1
	defaultPriceRatioCap        = 1.5
	defaultPriceRatioIdeal      = 0.5
	defaultRatingBonus          = 0.1
	defaultRatingFloor          = 4
)

func DefaultWeights() Weights {
	return Weights{
		Popularity: PopularityWeights{
			Views:          defaultViewsWeight,
			Clicks:         defaultClicksWeight,
			ClickRate:      defaultClickRateWeight,
			CartRate:       defaultCartRateWeight,
			PurchaseRate:   defaultPurchaseRateWeight,
			ConversionRate: defaultConversionWeight,
			Rating:         defaultRatingWeight,
			ReviewCount:    defaultReviewCountWeight,
			ViewsCap:       defaultViewsCap,
			ClicksCap:      defaultClicksCap,
			ReviewsCap:     defaultReviewsCap,
		},
		Similarity: SimilarityWeights{
			Category:    defaultSimCategoryWeight,
			Brand:       defaultSimBrandWeight,
			Price:       defaultSimPriceWeight,
			Rating:      defaultSimRatingWeight,
			Subcategory: defaultSimSubcategoryWeight,
		},
		Engine: EngineWeights{
			Popularity:              defaultEnginePopularity,
			CategoryBoost:           defaultCategoryBoost,
			BrandBoost:              defaultBrandBoost,
			PriceRangeBoost:         defaultPriceRangeBoost,
			PriceRangePenalty:       defaultPriceRangePenalty,
			Similarity:              defaultSimilarityWeight,
			SimilarBoosterThreshold: defaultSimilarThreshold,
			Recency:                 defaultRecencyWeight,
			RecencyHorizonDays:      defaultRecencyHorizonDays,
			Discount:                defaultDiscountWeight,
			OutOfStockPenalty:       defaultOutOfStockPenalty,
			LowStockPenalty:         defaultLowStockPenalty,
			LimitedStockPenalty:     defaultLimitedStockPenalty,
			TrendingThreshold:       defaultTrendingThreshold,
			TrendingShare:           defaultTrendingShare,
			TrendingMinScore:        defaultTrendingMinScore,
		},
		Complementary: ComplementaryWeights{
			Popularity:      defaultCompPopularity,
			AdjacencyBoost:  defaultAdjacencyBoost,
			PriceCompat:     defaultPriceCompatWeight,
			PriceRatioCap:   defaultPriceRatioCap,
			PriceRatioIdeal: defaultPriceRatioIdeal,
			RatingBonus:     defaultRatingBonus,
			RatingFloor:     defaultRatingFloor,
		},
		Complements: DefaultComplements(),
	}
}

// DefaultComplements is the stock category-adjacency table. Callers may swap
// in their own table through Weights.Complements.
func DefaultComplements() map[string][]string {
	return map[string][]string{
		"Electronics":            {"Accessories", "Wearables", "Cases"},
		"Wearables":              {"Accessories", "Electronics", "Chargers"},
		"Home Appliances":        {"Home & Office", "Kitchen", "Furniture"},
		"Kitchen":                {"Home & Office", "Appliances", "Cookware"},
		"Outdoors":               {"Accessories", "Home & Office", "Sports"},
		"Clothing":               {"Shoes", "Accessories", "Bags"},
		"Books":                  {"Stationery", "Electronics"},
		"Beauty & Personal Care": {"Health", "Accessories"},
	}
}
