// Command seed writes sample catalog and fraud case data so the API can be
// exercised locally without hand-editing JSON. Existing files are left alone
// unless -force is given.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/kiranalabs/kirana-voice-backend/internal/catalog"
	"github.com/kiranalabs/kirana-voice-backend/internal/fraud"
	"github.com/kiranalabs/kirana-voice-backend/pkg/config"
	"github.com/kiranalabs/kirana-voice-backend/pkg/logger"
	"github.com/kiranalabs/kirana-voice-backend/pkg/storage/jsonfile"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing data files")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	if err := seedFile(cfg.Store.CatalogPath, sampleCatalog(), *force, logg); err != nil {
		os.Exit(1)
	}
	if err := seedFile(cfg.Store.FraudDBPath, sampleFraudCases(), *force, logg); err != nil {
		os.Exit(1)
	}
}

func seedFile(path string, value any, force bool, logg *logger.Logger) error {
	ctx := logg.WithField(context.Background(), "path", path)

	if jsonfile.Exists(path) && !force {
		logg.Warn(ctx, "file exists, skipping (use -force to overwrite)")
		return nil
	}

	if err := jsonfile.Write(path, value); err != nil {
		logg.Error(ctx, "failed to write seed file", err)
		return err
	}
	logg.Info(ctx, "seed file written")
	return nil
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func sampleCatalog() *catalog.Catalog {
	items := []catalog.Item{
		{ID: "bread_wholewheat", Name: "Whole Wheat Bread", Category: "bakery", UnitPrice: price("55.0"), Unit: "loaf", Tags: []string{"breakfast"}},
		{ID: "milk_1l", Name: "Milk 1L", Category: "dairy", UnitPrice: price("68.0"), Unit: "bottle", Tags: []string{"breakfast", "essentials"}},
		{ID: "butter_200g", Name: "Butter 200g", Category: "dairy", UnitPrice: price("120.0"), Unit: "pack"},
		{ID: "eggs_12", Name: "Eggs (dozen)", Category: "dairy", UnitPrice: price("84.0"), Unit: "tray", Tags: []string{"breakfast", "protein"}},
		{ID: "pasta_500g", Name: "Pasta 500g", Category: "pantry", UnitPrice: price("90.0"), Unit: "pack"},
		{ID: "pasta_sauce_400g", Name: "Pasta Sauce 400g", Category: "pantry", UnitPrice: price("145.0"), Unit: "jar"},
		{ID: "rice_5kg", Name: "Basmati Rice 5kg", Category: "pantry", UnitPrice: price("520.0"), Unit: "bag", Tags: []string{"essentials"}},
		{ID: "toor_dal_1kg", Name: "Toor Dal 1kg", Category: "pantry", UnitPrice: price("160.0"), Unit: "pack", Tags: []string{"essentials", "protein"}},
		{ID: "tea_250g", Name: "Assam Tea 250g", Category: "beverages", UnitPrice: price("140.0"), Unit: "pack"},
		{ID: "sugar_1kg", Name: "Sugar 1kg", Category: "pantry", UnitPrice: price("48.0"), Unit: "pack"},
		{ID: "onions_1kg", Name: "Onions 1kg", Category: "produce", UnitPrice: price("35.0"), Unit: "kg"},
		{ID: "tomatoes_1kg", Name: "Tomatoes 1kg", Category: "produce", UnitPrice: price("42.0"), Unit: "kg"},
	}

	recipeNames := []string{"pasta for two", "breakfast basics", "chai time"}
	recipes := catalog.NewRecipes(recipeNames, map[string][]catalog.RecipeLine{
		"pasta for two": {
			{ItemID: "pasta_500g", Quantity: 1},
			{ItemID: "pasta_sauce_400g", Quantity: 1},
			{ItemID: "butter_200g", Quantity: 1},
		},
		"breakfast basics": {
			{ItemID: "bread_wholewheat", Quantity: 1},
			{ItemID: "milk_1l", Quantity: 2},
			{ItemID: "eggs_12", Quantity: 1},
			{ItemID: "butter_200g", Quantity: 1},
		},
		"chai time": {
			{ItemID: "tea_250g", Quantity: 1},
			{ItemID: "milk_1l", Quantity: 1},
			{ItemID: "sugar_1kg", Quantity: 1},
		},
	})

	return &catalog.Catalog{
		Meta: catalog.Meta{
			StoreName: "Kirana Corner",
			Currency:  "INR",
			Locale:    "en-IN",
		},
		Items:   items,
		Recipes: recipes,
	}
}

func sampleFraudCases() []fraud.Case {
	return []fraud.Case{
		{
			CaseID:            "CASE-1001",
			Username:          "raj.kumar",
			CustomerName:      "Raj Kumar",
			SecurityQuestion:  "What is the name of your first pet?",
			SecurityAnswer:    "tommy",
			MaskedCard:        "**** 4821",
			TransactionAmount: "12499.00",
			MerchantName:      "Elektra Online",
			Location:          "Gurugram",
			Timestamp:         "2026-08-20T18:42:10",
			Status:            fraud.StatusPendingReview,
		},
		{
			CaseID:            "CASE-1002",
			Username:          "sneha_rao",
			CustomerName:      "Sneha Rao",
			SecurityQuestion:  "Which city were you born in?",
			SecurityAnswer:    "visakhapatnam",
			MaskedCard:        "**** 9034",
			TransactionAmount: "3150.50",
			MerchantName:      "AirGo Travels",
			Location:          "Mumbai",
			Timestamp:         "2026-08-22T09:15:47",
			Status:            fraud.StatusPendingReview,
		},
	}
}
