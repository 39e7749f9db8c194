// Package accountmapper implements the account mapper (Stage 2, C5): a
// deterministic, no-I/O, no-AI translation from a product category to a
// GL account code. It never calls out to the cache, the LLM, or the
// database — every result is a pure function of its inputs.
package accountmapper

import (
	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/receipt"
)

// Mapping is the Stage 2 result: the chosen account plus whatever
// RequiresReview it independently forces (the capitalization override
// and the unknown-category fallback both force it; Stage 1's own
// confidence-based review trigger is applied by the caller, not here).
type Mapping struct {
	AccountCode     string
	AccountName     string
	Confidence      float64
	RequiresReview  bool
}

// categoryToAccount is the authoritative category -> account table. No
// original source for this table survived distillation (see DESIGN.md,
// Open Question (a)); this is a closed, invented-but-stable chart of
// accounts for a small food-service business, modeled on a generic
// COGS/supplies/equipment breakdown. product_category identifiers are
// never renamed even if the account names beside them are revised.
var categoryToAccount = map[string]struct {
	code string
	name string
}{
	receipt.CategoryFoodHotdog:    {"5000", "COGS — Food"},
	receipt.CategoryFoodSandwich:  {"5000", "COGS — Food"},
	receipt.CategoryFoodPizza:     {"5000", "COGS — Food"},
	receipt.CategoryFoodFrozen:    {"5000", "COGS — Food"},
	receipt.CategoryFoodBakery:    {"5000", "COGS — Food"},
	receipt.CategoryFoodDairy:     {"5000", "COGS — Food"},
	receipt.CategoryFoodMeat:      {"5000", "COGS — Food"},
	receipt.CategoryFoodProduce:   {"5000", "COGS — Food"},
	receipt.CategoryFoodCondiment: {"5000", "COGS — Food"},
	receipt.CategoryFoodPantry:    {"5000", "COGS — Food"},
	receipt.CategoryFoodOther:     {"5000", "COGS — Food"},
	receipt.CategoryFoodOil:       {"5000", "COGS — Food"},

	receipt.CategoryBeverageSoda:    {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageWater:   {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageEnergy:  {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageSports:  {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageJuice:   {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageCoffee:  {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageTea:     {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageMilk:    {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageAlcohol: {"5100", "COGS — Beverage"},
	receipt.CategoryBeverageOther:   {"5100", "COGS — Beverage"},

	receipt.CategorySupplementProtein:         {"5200", "COGS — Supplements"},
	receipt.CategorySupplementVitamin:         {"5200", "COGS — Supplements"},
	receipt.CategorySupplementPreworkout:      {"5200", "COGS — Supplements"},
	receipt.CategorySupplementRecovery:        {"5200", "COGS — Supplements"},
	receipt.CategorySupplementSportsNutrition: {"5200", "COGS — Supplements"},
	receipt.CategorySupplementOther:           {"5200", "COGS — Supplements"},

	receipt.CategoryRetailSnack:     {"5300", "COGS — Retail"},
	receipt.CategoryRetailCandy:     {"5300", "COGS — Retail"},
	receipt.CategoryRetailHealth:    {"5300", "COGS — Retail"},
	receipt.CategoryRetailAccessory: {"5300", "COGS — Retail"},
	receipt.CategoryRetailApparel:   {"5300", "COGS — Retail"},
	receipt.CategoryRetailOther:     {"5300", "COGS — Retail"},

	receipt.CategoryFreight:            {"5400", "Freight & Shipping"},
	receipt.CategoryPackagingContainer: {"6100", "Packaging & Disposables"},
	receipt.CategoryPackagingBag:       {"6100", "Packaging & Disposables"},
	receipt.CategoryPackagingUtensil:   {"6100", "Packaging & Disposables"},
	receipt.CategorySupplyCleaning:     {"6200", "Operating Supplies"},
	receipt.CategorySupplyPaper:        {"6200", "Operating Supplies"},
	receipt.CategorySupplyKitchen:      {"6200", "Operating Supplies"},
	receipt.CategorySupplyOther:        {"6200", "Operating Supplies"},

	receipt.CategoryOfficeSupply:    {"6400", "Office Supplies"},
	receipt.CategoryRepairEquipment: {"6300", "Repairs & Maintenance"},
	receipt.CategoryRepairBuilding:  {"6300", "Repairs & Maintenance"},
	receipt.CategoryMaintenance:     {"6300", "Repairs & Maintenance"},
	receipt.CategoryDeposit:         {"1450", "Returnable Deposits"},
	receipt.CategoryLicense:         {"6500", "Licenses & Permits"},
}

const (
	accountEquipmentAsset = "1500"
	accountRepairs        = "6300"
	accountUnknown        = "9100"
)

// Map is the Stage 2 operation: deterministic, no I/O, no AI.
// capitalizationThreshold is the |line_total| at or above which an equipment
// purchase is capitalized instead of expensed as a repair, sourced from
// config.Cfg.CapitalizationThreshold by the caller rather than hardcoded
// here, since Stage 2 itself stays a pure function of its arguments.
func Map(productCategory string, lineTotal money.Amount, capitalizationThreshold money.Amount) Mapping {
	if productCategory == receipt.CategoryEquipment {
		if lineTotal.Abs().GreaterThanOrEqual(capitalizationThreshold) {
			return Mapping{
				AccountCode:    accountEquipmentAsset,
				AccountName:   "Fixed Asset — Equipment",
				Confidence:     1.0,
				RequiresReview: true,
			}
		}
		return Mapping{
			AccountCode:    accountRepairs,
			AccountName:    "Repairs & Maintenance",
			Confidence:     1.0,
			RequiresReview: false,
		}
	}

	if productCategory == receipt.CategoryUnknown {
		return Mapping{
			AccountCode:    accountUnknown,
			AccountName:    "Pending Receipt — No ITC",
			Confidence:     1.0,
			RequiresReview: true,
		}
	}

	if entry, ok := categoryToAccount[productCategory]; ok {
		return Mapping{
			AccountCode:    entry.code,
			AccountName:    entry.name,
			Confidence:     1.0,
			RequiresReview: false,
		}
	}

	// A category outside the closed vocabulary is itself a degraded
	// condition; route it through the same unknown path rather than
	// returning a zero-value account code.
	return Mapping{
		AccountCode:    accountUnknown,
		AccountName:    "Pending Receipt — No ITC",
		Confidence:     1.0,
		RequiresReview: true,
	}
}
