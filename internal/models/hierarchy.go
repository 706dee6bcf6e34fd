package models

// StrategyLevels is the (level1, level2) pair a level-3 strategy name maps to.
type StrategyLevels struct {
	Level1 string
	Level2 string
}

// Unclassified is the catch-all bucket for strategy names the hierarchy
// does not know.
const Unclassified = "unclassified"

// StrategyHierarchy maps a level-3 strategy name (the sheet name in the
// source reports) to its level-1/level-2 parents. Imports classify through
// this table so the three levels stay consistent across report dates.
var StrategyHierarchy = map[string]StrategyLevels{
	"enhanced-300":         {Level1: "equity", Level2: "index-enhancement"},
	"enhanced-500":         {Level1: "equity", Level2: "index-enhancement"},
	"enhanced-1000":        {Level1: "equity", Level2: "index-enhancement"},
	"other-index-enhanced": {Level1: "equity", Level2: "index-enhancement"},
	"quant-stock-selection": {Level1: "equity", Level2: "quant-stock-selection"},
	"discretionary-equity":  {Level1: "equity", Level2: "discretionary-equity"},
	"market-neutral":        {Level1: "equity", Level2: "market-neutral"},

	"quant-cta":         {Level1: "commodity", Level2: "quant-cta"},
	"discretionary-cta": {Level1: "commodity", Level2: "discretionary-cta"},

	"quant-commodity-arbitrage":         {Level1: "arbitrage", Level2: "commodity-arbitrage"},
	"discretionary-commodity-arbitrage": {Level1: "arbitrage", Level2: "commodity-arbitrage"},
	"option-arbitrage":                  {Level1: "arbitrage", Level2: "option-arbitrage"},
	"etf-arbitrage":                     {Level1: "arbitrage", Level2: "etf-arbitrage"},
	"index-futures-arbitrage":           {Level1: "arbitrage", Level2: "index-futures-arbitrage"},
	"multi-strategy-arbitrage":          {Level1: "arbitrage", Level2: "multi-strategy-arbitrage"},

	"pure-bond":        {Level1: "fixed-income", Level2: "pure-bond"},
	"bond-plus":        {Level1: "fixed-income", Level2: "enhanced-bond"},
	"bond-composite":   {Level1: "fixed-income", Level2: "bond-composite"},
	"convertible-bond": {Level1: "fixed-income", Level2: "convertible-bond"},

	"macro": {Level1: "macro", Level2: "macro"},

	"multi-strategy": {Level1: "multi-strategy", Level2: "multi-strategy"},
	"fof":            {Level1: "multi-strategy", Level2: "fof"},

	Unclassified: {Level1: Unclassified, Level2: Unclassified},
}

// ClassifyStrategy resolves a level-3 name to a full Strategy value.
// Unknown names land in the unclassified bucket but keep their level-3
// name so the source label is not lost.
func ClassifyStrategy(level3 string) Strategy {
	if level3 == "" {
		level3 = Unclassified
	}
	levels, ok := StrategyHierarchy[level3]
	if !ok {
		levels = StrategyHierarchy[Unclassified]
	}
	return Strategy{
		Level3Category: level3,
		Level2Category: levels.Level2,
		Level1Category: levels.Level1,
	}
}
