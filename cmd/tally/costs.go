package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunaroak/tally-ho/internal/aggregate"
	"github.com/lunaroak/tally-ho/internal/cli"
	"github.com/lunaroak/tally-ho/internal/common"
	"github.com/lunaroak/tally-ho/internal/config"
	"github.com/lunaroak/tally-ho/internal/costs"
	"github.com/lunaroak/tally-ho/internal/model"
	"github.com/lunaroak/tally-ho/internal/service"
)

// orderFile is the on-disk order document the costs command prices.
type orderFile struct {
	OrderID        string          `json:"order_id"`
	Items          []orderFileItem `json:"items"`
	ActualShipping float64         `json:"actual_shipping"`
}

type orderFileItem struct {
	ActualTax *float64 `json:"actual_tax,omitempty"`
	SKU       string   `json:"sku"`
	LineTotal float64  `json:"line_total"`
	Quantity  int      `json:"quantity"`
	BundleQty int      `json:"bundle_qty"`
	IsPrime   bool     `json:"is_prime"`
}

func costsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs <order-file>",
		Short: "Price an order file into per-unit cost breakdowns",
		Long: `Compute per-unit cost breakdowns for every line of a marketplace order.

Each line gets material cost, a shipping estimate, the marketplace fee for
its price band, and sales VAT. When the order file carries an actual
shipping total, the per-pack estimates are replaced by an even split of it.

Examples:
  tally costs order.json
  tally costs order.json --sku WIDGET-6PK
  tally costs order.json --compare last-week.json
  tally costs order.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: runCosts,
	}

	cmd.Flags().String("sku", "", "Show the rollup for a single SKU")
	cmd.Flags().String("compare", "", "Previous-window order file to compare against")
	cmd.Flags().StringP("output", "o", "summary", "Output format (summary, json)")

	_ = viper.BindPFlag("costs.sku", cmd.Flags().Lookup("sku"))
	_ = viper.BindPFlag("costs.compare", cmd.Flags().Lookup("compare"))
	_ = viper.BindPFlag("costs.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runCosts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	order, err := readOrderFile(args[0])
	if err != nil {
		return err
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

	v := viper.GetViper()
	calc := costs.NewCalculator(config.FeeSchedule(v), config.ShippingTiers(v), config.VATRate(v))

	priced, err := priceOrder(ctx, store, calc, order)
	if err != nil {
		return err
	}

	if compareFile := viper.GetString("costs.compare"); compareFile != "" {
		previous, readErr := readOrderFile(compareFile)
		if readErr != nil {
			return readErr
		}
		previousPriced, priceErr := priceOrder(ctx, store, calc, previous)
		if priceErr != nil {
			return priceErr
		}
		return renderComparison(cmd, aggregate.CompareWindows(priced, previousPriced))
	}

	if sku := viper.GetString("costs.sku"); sku != "" {
		return renderSKURollup(cmd, aggregate.SKURollup(priced, sku), sku)
	}

	switch strings.ToLower(viper.GetString("costs.output")) {
	case "json":
		return renderOrderJSON(cmd, order.OrderID, priced)
	default:
		renderOrderSummary(cmd, order.OrderID, priced)
		return nil
	}
}

func readOrderFile(path string) (*orderFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied order file
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to read order file %s", path), err)
	}

	var order orderFile
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to parse order file %s", path), err)
	}
	if len(order.Items) == 0 {
		return nil, common.NewUserError(fmt.Sprintf("order file %s has no items", path), nil)
	}
	return &order, nil
}

// priceOrder looks up catalog data for every order line and runs the cost
// calculator, then substitutes actual shipping when the order carries it.
func priceOrder(ctx context.Context, catalog service.CatalogReader, calc *costs.Calculator, order *orderFile) ([]aggregate.PricedItem, error) {
	bar := cli.NewProgressBar(len(order.Items), "Pricing order lines")
	priced := make([]aggregate.PricedItem, 0, len(order.Items))

	for _, line := range order.Items {
		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}
		unitPrice := line.LineTotal / float64(quantity)

		product, err := catalog.GetProduct(ctx, line.SKU)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %s: %w", line.SKU, err)
		}
		mapping, err := catalog.GetShippingGroup(ctx, line.SKU)
		if err != nil {
			return nil, fmt.Errorf("failed to look up shipping group for %s: %w", line.SKU, err)
		}
		composition, err := catalog.GetComposition(ctx, line.SKU)
		if err != nil {
			return nil, fmt.Errorf("failed to look up composition for %s: %w", line.SKU, err)
		}

		item := model.OrderItem{
			TaxPerUnit: line.ActualTax,
			SKU:        line.SKU,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
			BundleQty:  line.BundleQty,
			IsPrime:    line.IsPrime,
		}
		breakdown := calc.Calculate(line.SKU, unitPrice, product, mapping, composition, costs.Options{
			ActualTax: line.ActualTax,
			Quantity:  quantity,
			IsPrime:   line.IsPrime,
		})

		priced = append(priced, aggregate.PricedItem{Item: item, Breakdown: breakdown})
		_ = bar.Add(1)
	}

	if order.ActualShipping > 0 {
		priced = aggregate.ApplyActualShipping(priced, order.ActualShipping)
	}
	return priced, nil
}

func renderOrderSummary(cmd *cobra.Command, orderID string, priced []aggregate.PricedItem) {
	cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Order %s", orderID)))
	cmd.Println()

	for _, p := range priced {
		shipping := fmt.Sprintf("%s (%s)", cli.FormatMoney(p.Breakdown.ShippingCost), strings.ToLower(string(p.Breakdown.ShippingType)))
		cmd.Printf("  %s  x%d @ %s\n", cli.BoldStyle.Render(p.Item.SKU), p.Item.Quantity, cli.FormatMoney(p.Item.UnitPrice))
		cmd.Printf("    material %s  shipping %s  fee %s  vat %s  total %s\n",
			cli.FormatMoney(p.Breakdown.MaterialTotalCost),
			shipping,
			cli.FormatMoney(p.Breakdown.AmazonFee),
			cli.FormatMoney(p.Breakdown.SalesVAT),
			cli.FormatMoney(p.Breakdown.TotalCost()),
		)
	}

	summary := aggregate.OrderRollup(priced)
	cmd.Println()
	cmd.Println(cli.SubtitleStyle.Render("Order totals"))
	cmd.Printf("  Revenue: %s\n", cli.FormatMoney(summary.Revenue))
	cmd.Printf("  Cost:    %s\n", cli.FormatMoney(summary.Cost))
	cmd.Printf("  Profit:  %s\n", cli.Money(summary.Profit))
	cmd.Printf("  Items:   %d\n", summary.Items)
}

func renderSKURollup(cmd *cobra.Command, summary model.SKUSummary, sku string) error {
	if summary.Packs == 0 {
		return common.NewUserError(fmt.Sprintf("SKU %s does not appear on this order", sku), common.ErrNotFound)
	}

	cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("SKU %s", summary.SKU)))
	cmd.Printf("  Revenue: %s\n", cli.FormatMoney(summary.Revenue))
	cmd.Printf("  Cost:    %s\n", cli.FormatMoney(summary.Cost))
	cmd.Printf("  Profit:  %s\n", cli.Money(summary.Profit))
	cmd.Printf("  Packs:   %d\n", summary.Packs)
	cmd.Printf("  Units:   %d\n", summary.Units)
	return nil
}

func renderComparison(cmd *cobra.Command, comparison aggregate.WindowComparison) error {
	if strings.ToLower(viper.GetString("costs.output")) == "json" {
		data, err := json.MarshalIndent(comparison, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode comparison: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(cli.TitleStyle.Render("Window comparison"))
	cmd.Printf("  Revenue: %s -> %s (%+.1f%%)\n",
		cli.FormatMoney(comparison.Previous.Revenue), cli.FormatMoney(comparison.Current.Revenue), comparison.RevenueChange)
	cmd.Printf("  Profit:  %s -> %s (%+.1f%%)\n",
		cli.Money(comparison.Previous.Profit), cli.Money(comparison.Current.Profit), comparison.ProfitChange)
	cmd.Printf("  Units:   %d -> %d (%+.1f%%)\n",
		comparison.Previous.Units, comparison.Current.Units, comparison.UnitsChange)
	return nil
}

func renderOrderJSON(cmd *cobra.Command, orderID string, priced []aggregate.PricedItem) error {
	report := struct {
		OrderID string                 `json:"order_id"`
		Summary model.OrderSummary     `json:"summary"`
		Items   []aggregate.PricedItem `json:"items"`
	}{
		OrderID: orderID,
		Summary: aggregate.OrderRollup(priced),
		Items:   priced,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode order report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
