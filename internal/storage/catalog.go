package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lunaroak/tally-ho/internal/model"
)

// SaveProducts upserts product master rows, replacing any existing row per
// SKU.
func (s *SQLiteStorage) SaveProducts(ctx context.Context, products []model.ProductMaster) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSliceLen(len(products), "products"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (sku, depth, height, width, weight, cost, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(sku) DO UPDATE SET
			depth = excluded.depth,
			height = excluded.height,
			width = excluded.width,
			weight = excluded.weight,
			cost = excluded.cost,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range products {
		if err := validateString(p.SKU, "product sku"); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, p.SKU, p.Depth, p.Height, p.Width, p.Weight, p.Cost); err != nil {
			return fmt.Errorf("failed to save product %s: %w", p.SKU, err)
		}
	}

	return tx.Commit()
}

// GetProduct returns the product master row for a SKU, or nil when the
// inventory system has no record. The nil result is not an error: the cost
// engine degrades to estimated values for unknown SKUs.
func (s *SQLiteStorage) GetProduct(ctx context.Context, sku string) (*model.ProductMaster, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sku, "sku"); err != nil {
		return nil, err
	}

	var p model.ProductMaster
	err := s.db.QueryRowContext(ctx, `
		SELECT sku, depth, height, width, weight, cost
		FROM products WHERE sku = ?
	`, sku).Scan(&p.SKU, &p.Depth, &p.Height, &p.Width, &p.Weight, &p.Cost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", sku, err)
	}
	return &p, nil
}

// SaveShippingGroups upserts shipping group mappings.
func (s *SQLiteStorage) SaveShippingGroups(ctx context.Context, mappings []model.ShippingGroupMapping) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSliceLen(len(mappings), "mappings"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shipping_groups (seller_sku, merchant_shipping_group, item_name, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(seller_sku) DO UPDATE SET
			merchant_shipping_group = excluded.merchant_shipping_group,
			item_name = excluded.item_name,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range mappings {
		if err := validateString(m.SellerSKU, "seller sku"); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, m.SellerSKU, m.MerchantShippingGroup, m.ItemName); err != nil {
			return fmt.Errorf("failed to save shipping group for %s: %w", m.SellerSKU, err)
		}
	}

	return tx.Commit()
}

// GetShippingGroup returns the shipping group mapping for a seller SKU, or
// nil when no mapping exists.
func (s *SQLiteStorage) GetShippingGroup(ctx context.Context, sellerSKU string) (*model.ShippingGroupMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sellerSKU, "sellerSKU"); err != nil {
		return nil, err
	}

	var m model.ShippingGroupMapping
	var itemName sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT seller_sku, merchant_shipping_group, item_name
		FROM shipping_groups WHERE seller_sku = ?
	`, sellerSKU).Scan(&m.SellerSKU, &m.MerchantShippingGroup, &itemName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping group for %s: %w", sellerSKU, err)
	}
	m.ItemName = itemName.String
	return &m, nil
}

// SaveCompositions upserts bundle composition summaries.
func (s *SQLiteStorage) SaveCompositions(ctx context.Context, compositions []model.CompositionSummary) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSliceLen(len(compositions), "compositions"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO compositions (parent_sku, total_qty, total_value, child_vat_total, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(parent_sku) DO UPDATE SET
			total_qty = excluded.total_qty,
			total_value = excluded.total_value,
			child_vat_total = excluded.child_vat_total,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range compositions {
		if err := validateString(c.ParentSKU, "parent sku"); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, c.ParentSKU, c.TotalQty, c.TotalValue, c.ChildVATTotal); err != nil {
			return fmt.Errorf("failed to save composition %s: %w", c.ParentSKU, err)
		}
	}

	return tx.Commit()
}

// GetComposition returns the composition summary for a parent SKU, or nil
// when the SKU is not a bundle.
func (s *SQLiteStorage) GetComposition(ctx context.Context, parentSKU string) (*model.CompositionSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(parentSKU, "parentSKU"); err != nil {
		return nil, err
	}

	var c model.CompositionSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT parent_sku, total_qty, total_value, child_vat_total
		FROM compositions WHERE parent_sku = ?
	`, parentSKU).Scan(&c.ParentSKU, &c.TotalQty, &c.TotalValue, &c.ChildVATTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get composition %s: %w", parentSKU, err)
	}
	return &c, nil
}
