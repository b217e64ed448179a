package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunaroak/tally-ho/internal/cli"
	"github.com/lunaroak/tally-ho/internal/common"
	"github.com/lunaroak/tally-ho/internal/model"
	"github.com/lunaroak/tally-ho/internal/series"
	"github.com/lunaroak/tally-ho/internal/service"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local product catalog and metric observations",
		Long: `Manage the local catalog database the cost and analysis commands read.

The catalog holds product master data (dimensions, weight, cost), shipping
group mappings, bundle compositions, and the weekly metric observations the
analyzer consumes.`,
	}

	cmd.AddCommand(catalogImportCmd())
	cmd.AddCommand(catalogRecordCmd())
	return cmd
}

func catalogImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog data from JSON files",
		Long: `Import product master data, shipping group mappings, and bundle
compositions from JSON files. Existing rows with the same key are replaced.

Examples:
  tally catalog import --products products.json
  tally catalog import --products products.json --shipping-groups groups.json --compositions bundles.json`,
		RunE: runCatalogImport,
	}

	cmd.Flags().String("products", "", "JSON file of product master records")
	cmd.Flags().String("shipping-groups", "", "JSON file of shipping group mappings")
	cmd.Flags().String("compositions", "", "JSON file of bundle composition summaries")

	_ = viper.BindPFlag("catalog.products", cmd.Flags().Lookup("products"))
	_ = viper.BindPFlag("catalog.shipping_groups", cmd.Flags().Lookup("shipping-groups"))
	_ = viper.BindPFlag("catalog.compositions", cmd.Flags().Lookup("compositions"))

	return cmd
}

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	productsFile := viper.GetString("catalog.products")
	groupsFile := viper.GetString("catalog.shipping_groups")
	compositionsFile := viper.GetString("catalog.compositions")
	if productsFile == "" && groupsFile == "" && compositionsFile == "" {
		return common.NewUserError("nothing to import; pass --products, --shipping-groups, or --compositions", nil)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	if productsFile != "" {
		if err := importProducts(ctx, store, productsFile); err != nil {
			return err
		}
	}
	if groupsFile != "" {
		if err := importShippingGroups(ctx, store, groupsFile); err != nil {
			return err
		}
	}
	if compositionsFile != "" {
		if err := importCompositions(ctx, store, compositionsFile); err != nil {
			return err
		}
	}

	cmd.Println(cli.SuccessStyle.Render("✓ Catalog import complete"))
	return nil
}

func importProducts(ctx context.Context, catalog service.CatalogWriter, path string) error {
	var products []model.ProductMaster
	if err := readJSONFile(path, &products); err != nil {
		return err
	}
	if err := catalog.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	slog.Info("Imported products", "count", len(products), "file", path)
	return nil
}

func importShippingGroups(ctx context.Context, catalog service.CatalogWriter, path string) error {
	var mappings []model.ShippingGroupMapping
	if err := readJSONFile(path, &mappings); err != nil {
		return err
	}
	if err := catalog.SaveShippingGroups(ctx, mappings); err != nil {
		return fmt.Errorf("failed to save shipping groups: %w", err)
	}
	slog.Info("Imported shipping groups", "count", len(mappings), "file", path)
	return nil
}

func importCompositions(ctx context.Context, catalog service.CatalogWriter, path string) error {
	var compositions []model.CompositionSummary
	if err := readJSONFile(path, &compositions); err != nil {
		return err
	}
	if err := catalog.SaveCompositions(ctx, compositions); err != nil {
		return fmt.Errorf("failed to save compositions: %w", err)
	}
	slog.Info("Imported compositions", "count", len(compositions), "file", path)
	return nil
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied import file
	if err != nil {
		return common.NewUserError(fmt.Sprintf("failed to read %s", path), err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return common.NewUserError(fmt.Sprintf("failed to parse %s", path), err)
	}
	return nil
}

func catalogRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one metric observation",
		Long: `Record a single metric observation for later analysis.

The period start is the Monday of the week (or the day) the value covers.
Recording the same metric and period again replaces the stored value.

Examples:
  tally catalog record --metric sales --period-start 2026-08-17 --value 14250.50
  tally catalog record --metric orders --period-start 2026-08-17 --value 342`,
		RunE: runCatalogRecord,
	}

	cmd.Flags().String("metric", "", "Metric name (required)")
	cmd.Flags().String("period-start", "", "Start of the observed period, format 2006-01-02 (required)")
	cmd.Flags().Float64("value", 0, "Observed value (required)")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("period-start")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runCatalogRecord(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	metric, _ := cmd.Flags().GetString("metric")
	rawStart, _ := cmd.Flags().GetString("period-start")
	value, _ := cmd.Flags().GetFloat64("value")

	periodStart, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("invalid period start %q (expected 2006-01-02)", rawStart), err)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	point := series.Point{PeriodStart: periodStart.UTC(), Value: value}
	if err := store.RecordObservation(ctx, metric, point); err != nil {
		return fmt.Errorf("failed to record observation: %w", err)
	}

	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s = %v for period starting %s", metric, value, rawStart)))
	return nil
}
