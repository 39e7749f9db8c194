package receipt

// ProductCategory is the stable, closed vocabulary Stage 1 (the item
// recognizer) assigns and Stage 2 (the account mapper) keys on. These
// identifiers must never be renamed by reimplementers.
const (
	CategoryFoodHotdog    = "food_hotdog"
	CategoryFoodSandwich  = "food_sandwich"
	CategoryFoodPizza     = "food_pizza"
	CategoryFoodFrozen    = "food_frozen"
	CategoryFoodBakery    = "food_bakery"
	CategoryFoodDairy     = "food_dairy"
	CategoryFoodMeat      = "food_meat"
	CategoryFoodProduce   = "food_produce"
	CategoryFoodCondiment = "food_condiment"
	CategoryFoodPantry    = "food_pantry"
	CategoryFoodOther     = "food_other"
	CategoryFoodOil       = "food_oil"

	CategoryBeverageSoda    = "beverage_soda"
	CategoryBeverageWater   = "beverage_water"
	CategoryBeverageEnergy  = "beverage_energy"
	CategoryBeverageSports  = "beverage_sports"
	CategoryBeverageJuice   = "beverage_juice"
	CategoryBeverageCoffee  = "beverage_coffee"
	CategoryBeverageTea     = "beverage_tea"
	CategoryBeverageMilk    = "beverage_milk"
	CategoryBeverageAlcohol = "beverage_alcohol"
	CategoryBeverageOther   = "beverage_other"

	CategorySupplementProtein         = "supplement_protein"
	CategorySupplementVitamin         = "supplement_vitamin"
	CategorySupplementPreworkout      = "supplement_preworkout"
	CategorySupplementRecovery        = "supplement_recovery"
	CategorySupplementSportsNutrition = "supplement_sports_nutrition"
	CategorySupplementOther           = "supplement_other"

	CategoryRetailSnack     = "retail_snack"
	CategoryRetailCandy     = "retail_candy"
	CategoryRetailHealth    = "retail_health"
	CategoryRetailAccessory = "retail_accessory"
	CategoryRetailApparel   = "retail_apparel"
	CategoryRetailOther     = "retail_other"

	CategoryFreight           = "freight"
	CategoryPackagingContainer = "packaging_container"
	CategoryPackagingBag       = "packaging_bag"
	CategoryPackagingUtensil   = "packaging_utensil"
	CategorySupplyCleaning     = "supply_cleaning"
	CategorySupplyPaper        = "supply_paper"
	CategorySupplyKitchen      = "supply_kitchen"
	CategorySupplyOther        = "supply_other"

	CategoryOfficeSupply     = "office_supply"
	CategoryRepairEquipment  = "repair_equipment"
	CategoryRepairBuilding   = "repair_building"
	CategoryMaintenance      = "maintenance"
	CategoryEquipment        = "equipment"
	CategoryDeposit          = "deposit"
	CategoryLicense          = "license"
	CategoryUnknown          = "unknown"
)

// Categories is the enumerated set of product categories with one-line
// descriptions, used to build the Stage 1 recognizer prompt.
var Categories = map[string]string{
	CategoryFoodHotdog:    "Hot dogs and hot dog related food items",
	CategoryFoodSandwich:  "Sandwiches, subs, wraps",
	CategoryFoodPizza:     "Pizza and pizza ingredients",
	CategoryFoodFrozen:    "Frozen food items",
	CategoryFoodBakery:    "Bakery goods: bread, pastries, buns",
	CategoryFoodDairy:     "Dairy products: milk, cheese, yogurt",
	CategoryFoodMeat:      "Raw or prepared meat and poultry",
	CategoryFoodProduce:   "Fresh fruit and vegetables",
	CategoryFoodCondiment: "Condiments, sauces, dressings",
	CategoryFoodPantry:    "Shelf-stable pantry staples",
	CategoryFoodOther:     "Food items not covered by a more specific category",
	CategoryFoodOil:       "Cooking oils and fryer oil",

	CategoryBeverageSoda:    "Carbonated soft drinks",
	CategoryBeverageWater:   "Bottled or sparkling water",
	CategoryBeverageEnergy:  "Energy drinks",
	CategoryBeverageSports:  "Sports/electrolyte drinks",
	CategoryBeverageJuice:   "Fruit and vegetable juices",
	CategoryBeverageCoffee:  "Coffee, ground or beans or ready-to-drink",
	CategoryBeverageTea:     "Tea, loose or bagged or ready-to-drink",
	CategoryBeverageMilk:    "Milk-based beverages sold separately from dairy",
	CategoryBeverageAlcohol: "Beer, wine, spirits",
	CategoryBeverageOther:   "Beverages not covered by a more specific category",

	CategorySupplementProtein:         "Protein powders and bars",
	CategorySupplementVitamin:         "Vitamins and minerals",
	CategorySupplementPreworkout:      "Pre-workout supplements",
	CategorySupplementRecovery:        "Recovery/post-workout supplements",
	CategorySupplementSportsNutrition: "General sports nutrition products",
	CategorySupplementOther:           "Supplements not covered by a more specific category",

	CategoryRetailSnack:     "Chips, crackers, snack food",
	CategoryRetailCandy:     "Candy and confectionery",
	CategoryRetailHealth:    "Health and personal care retail items",
	CategoryRetailAccessory: "Gym/retail accessories (shaker cups, straps, etc.)",
	CategoryRetailApparel:   "Branded apparel for resale",
	CategoryRetailOther:     "Retail items not covered by a more specific category",

	CategoryFreight:            "Freight and shipping charges",
	CategoryPackagingContainer: "Food containers and clamshells",
	CategoryPackagingBag:       "Bags: paper, plastic, takeout",
	CategoryPackagingUtensil:   "Disposable utensils and straws",
	CategorySupplyCleaning:     "Cleaning supplies",
	CategorySupplyPaper:        "Paper products: towels, napkins, toilet paper",
	CategorySupplyKitchen:      "General kitchen supplies",
	CategorySupplyOther:        "Supplies not covered by a more specific category",

	CategoryOfficeSupply:    "Office supplies",
	CategoryRepairEquipment: "Repairs to existing equipment",
	CategoryRepairBuilding:  "Repairs to the building or premises",
	CategoryMaintenance:     "General maintenance",
	CategoryEquipment:       "New equipment purchases (subject to capitalization rule)",
	CategoryDeposit:         "Returnable container/bottle deposits",
	CategoryLicense:         "Licenses and permits",
	CategoryUnknown:         "Could not be classified with any confidence",
}
