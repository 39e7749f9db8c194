// Package cache implements the categorization cache (C6): a single
// gorm-backed table keyed on (vendor_canonical, sku), shared across both
// entities, that lets Stage 1 skip the LLM once a SKU has been seen.
package cache

import (
	"errors"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"curlysbooks/src/pkg/receipt"
)

// Cache wraps a *gorm.DB scoped to the product_mappings table. Reads are
// strongly consistent with the last write on the same key because every
// write goes through this one instance's upsert/correct paths, backed by
// the table's (vendor_canonical, sku) primary key.
type Cache struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

// Get returns the cache entry for (vendor, sku), or ok=false on a miss.
// A blank sku never hits — callers should not call Get for an item with
// no SKU, since such items are never cacheable.
func (c *Cache) Get(vendor, sku string) (entry receipt.ProductMapping, ok bool, e *xerr.Error) {
	if sku == "" {
		return entry, false, nil
	}

	err := c.db.Where("vendor_canonical = ? AND sku = ?", vendor, sku).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, xerr.NewError(err, "get categorization cache entry", map[string]any{"vendor": vendor, "sku": sku})
	}

	return entry, true, nil
}

// TouchSeen increments times_seen and updates last_seen for an existing
// (vendor, sku) entry, the write-back a cache hit still owes even though
// it skipped the LLM call entirely.
func (c *Cache) TouchSeen(vendor, sku string) *xerr.Error {
	now := time.Now()
	err := c.db.Model(&receipt.ProductMapping{}).
		Where("vendor_canonical = ? AND sku = ?", vendor, sku).
		Updates(map[string]any{
			"times_seen": gorm.Expr("times_seen + 1"),
			"last_seen":  now,
		}).Error
	if err != nil {
		return xerr.NewError(err, "touch categorization cache entry", map[string]any{"vendor": vendor, "sku": sku})
	}
	return nil
}

// Put upserts entry. On conflict (an existing row for the same key) it
// increments times_seen and updates last_seen, leaving every other field
// as it was — a machine write never silently overwrites a prior human
// correction or an earlier AI classification's substance, only its
// recency bookkeeping.
func (c *Cache) Put(entry receipt.ProductMapping) *xerr.Error {
	now := time.Now()
	entry.FirstSeen = now
	entry.LastSeen = now
	if entry.TimesSeen == 0 {
		entry.TimesSeen = 1
	}

	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "vendor_canonical"}, {Name: "sku"}},
		DoUpdates: clause.Assignments(map[string]any{
			"times_seen": gorm.Expr("product_mappings.times_seen + 1"),
			"last_seen":  now,
		}),
	}).Create(&entry).Error
	if err != nil {
		return xerr.NewError(err, "put categorization cache entry", map[string]any{"vendor": entry.VendorCanonical, "sku": entry.SKU})
	}

	tl.Log(tl.Verbose, palette.Cyan, "cache put vendor=%s sku=%s category=%s", entry.VendorCanonical, entry.SKU, entry.ProductCategory)
	return nil
}

// Correct unconditionally overwrites the entry for (vendor, sku) with a
// human-reviewed categorization, sets user_confidence to 1.0, and
// records a ReviewActivity row in the same transaction — the feedback
// edge back into the cache described in the review projection contract.
func (c *Cache) Correct(vendor, sku string, entry receipt.ProductMapping, actor, reviewableID string) *xerr.Error {
	entry.VendorCanonical = vendor
	entry.SKU = sku
	entry.UserConfidence = 1.0
	now := time.Now()
	entry.LastSeen = now
	if entry.FirstSeen.IsZero() {
		entry.FirstSeen = now
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if saveErr := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_canonical"}, {Name: "sku"}},
			UpdateAll: true,
		}).Create(&entry).Error; saveErr != nil {
			return saveErr
		}

		activity := receipt.ReviewActivity{
			ID:           receipt.NewID(),
			ReviewableID: reviewableID,
			Action:       receipt.ActionCorrect,
			Actor:        actor,
			Payload: map[string]any{
				"vendor_canonical": vendor,
				"sku":              sku,
				"product_category": entry.ProductCategory,
				"account_code":     entry.AccountCode,
			},
			At: now,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return xerr.NewError(err, "correct categorization cache entry", map[string]any{"vendor": vendor, "sku": sku})
	}

	tl.Log(tl.Notice, palette.Yellow, "cache corrected vendor=%s sku=%s by=%s", vendor, sku, actor)
	return nil
}
