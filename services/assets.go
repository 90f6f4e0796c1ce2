package services

import (
	"strings"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// ASSET CLASSIFIER
// Labels each asset liquid or illiquid from an ordered keyword rule table
// and sums liquid holdings. Illiquid rules always win over liquid rules.
// ============================================================================

type assetClass int

const (
	classUnknown assetClass = iota
	classLiquid
	classIlliquid
)

type classificationRule struct {
	keyword string
	class   assetClass
}

// Ordered rule table: illiquid keywords first so a "retirement savings plan"
// is never counted as cash just because it mentions savings.
var assetRules = []classificationRule{
	{"retirement", classIlliquid},
	{"property", classIlliquid},
	{"real estate", classIlliquid},
	{"equipment", classIlliquid},
	{"certificate", classIlliquid},
	{"annuity", classIlliquid},
	{"cash", classLiquid},
	{"checking", classLiquid},
	{"savings", classLiquid},
	{"money market", classLiquid},
	{"money-market", classLiquid},
	{"deposit", classLiquid},
}

// ClassifyAsset returns true when the asset counts as liquid. Both the
// category and the name are matched against the rule table.
func ClassifyAsset(asset models.Asset) bool {
	haystack := strings.ToLower(asset.Category + " " + asset.Name)

	for _, rule := range assetRules {
		if strings.Contains(haystack, rule.keyword) {
			return rule.class == classLiquid
		}
	}
	return false
}

// AssetSummary is the classifier output consumed by the ratio calculator.
type AssetSummary struct {
	TotalAssets       float64
	TotalLiquidAssets float64
	LiquidCount       int
}

// SummarizeAssets sums total and liquid holdings. Pure function.
func SummarizeAssets(assets []models.Asset) AssetSummary {
	var summary AssetSummary
	for _, asset := range assets {
		summary.TotalAssets += asset.Value
		if ClassifyAsset(asset) {
			summary.TotalLiquidAssets += asset.Value
			summary.LiquidCount++
		}
	}
	return summary
}

// Leisure lexicon used by the ledger partitioner to flag discretionary
// spend. Same rule-table shape as the asset classifier so both are
// testable in isolation.
var leisureKeywords = []string{
	"leisure",
	"entertainment",
	"hobby",
	"hobbies",
	"fun",
	"games",
	"gaming",
	"streaming",
	"restaurant",
	"dining",
	"travel",
	"vacation",
}

// IsLeisureCategory reports whether a category name belongs to the
// leisure/entertainment/hobby lexicon.
func IsLeisureCategory(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range leisureKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
