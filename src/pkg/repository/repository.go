// Package repository implements the receipt repository (C7): the single
// gorm-backed boundary between the pipeline and persisted state,
// partitioned by entity, with the transactional guarantees §4.7 requires.
package repository

import (
	"time"

	"github.com/tuumbleweed/xerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"curlysbooks/src/pkg/cache"
	"curlysbooks/src/pkg/receipt"
)

// Filters narrows get_lines_for_review; zero values are "no filter".
type Filters struct {
	Vendor        string
	DateFrom      time.Time
	DateTo        time.Time
	MaxConfidence *float64
}

// Repository wraps a *gorm.DB with the receipt/line operations every
// pipeline run and every review action goes through. It does not decide
// which entity namespace to use: GetLinesForReview filters by the
// entity it is given, SaveReceipt stores the entity carried on the
// receipt row, and the line updates address rows by id alone.
type Repository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func New(db *gorm.DB, c *cache.Cache) *Repository {
	return &Repository{db: db, cache: c}
}

// SaveReceipt inserts or updates the receipt header row, including its
// validation_warnings JSON array.
func (r *Repository) SaveReceipt(rec receipt.Receipt) *xerr.Error {
	rec.UpdatedAt = time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return xerr.NewError(err, "save receipt", map[string]any{"receipt_id": rec.ID, "entity": rec.Entity})
	}
	return nil
}

// SaveLines inserts all lines for a receipt transactionally. It is
// idempotent per (receipt_id, line_index): re-running the same receipt
// through the pipeline produces the same persisted rows rather than
// duplicating them, by upserting on that composite key.
func (r *Repository) SaveLines(entity receipt.Entity, receiptID string, lines []receipt.ReceiptLine) *xerr.Error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range lines {
			lines[i].ReceiptID = receiptID
			lines[i].UpdatedAt = time.Now()
			if lines[i].CreatedAt.IsZero() {
				lines[i].CreatedAt = lines[i].UpdatedAt
			}
			if lines[i].ID == "" {
				lines[i].ID = receipt.NewID()
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "receipt_id"}, {Name: "line_index"}},
				UpdateAll: true,
			}).Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return xerr.NewError(err, "save receipt lines", map[string]any{"receipt_id": receiptID, "entity": entity, "line_count": len(lines)})
	}
	return nil
}

// GetLinesForReview returns lines with requires_review=true, scoped to
// entity and optionally narrowed by vendor, purchase date range, and a
// maximum confidence.
func (r *Repository) GetLinesForReview(entity receipt.Entity, filters Filters) ([]receipt.ReceiptLine, *xerr.Error) {
	query := r.db.
		Joins("JOIN receipts ON receipts.id = receipt_lines.receipt_id").
		Where("receipts.entity = ? AND receipt_lines.requires_review = ?", entity, true)

	if filters.Vendor != "" {
		query = query.Where("receipts.vendor_guess = ?", filters.Vendor)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("receipts.purchase_date >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("receipts.purchase_date <= ?", filters.DateTo)
	}
	if filters.MaxConfidence != nil {
		query = query.Where("receipt_lines.confidence <= ?", *filters.MaxConfidence)
	}

	var lines []receipt.ReceiptLine
	if err := query.Find(&lines).Error; err != nil {
		return nil, xerr.NewError(err, "get lines for review", map[string]any{"entity": entity})
	}
	return lines, nil
}

// LineCategorizationUpdate is the set of fields a reviewer may correct.
type LineCategorizationUpdate struct {
	ProductCategory string
	AccountCode     string
	Brand           string
	RequiresReview  bool
	Actor           string
	ReviewableID    string
}

// UpdateLineCategorization applies a reviewer's correction to a stored
// line and, in the same transaction, writes the correction back into the
// categorization cache via correctCacheInTx, the transactional
// counterpart of cache.Correct — the feedback edge of §4.8.
func (r *Repository) UpdateLineCategorization(entity receipt.Entity, lineID string, update LineCategorizationUpdate) *xerr.Error {
	var line receipt.ReceiptLine
	if err := r.db.First(&line, "id = ?", lineID).Error; err != nil {
		return xerr.NewError(err, "load line for categorization update", map[string]any{"line_id": lineID})
	}
	var parentReceipt receipt.Receipt
	if err := r.db.First(&parentReceipt, "id = ?", line.ReceiptID).Error; err != nil {
		return xerr.NewError(err, "load parent receipt for categorization update", map[string]any{"line_id": lineID, "receipt_id": line.ReceiptID})
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"product_category": update.ProductCategory,
			"account_code":     update.AccountCode,
			"brand":            update.Brand,
			"requires_review":  update.RequiresReview,
			"confidence":       1.0,
			"updated_at":       time.Now(),
		}
		if err := tx.Model(&receipt.ReceiptLine{}).Where("id = ?", lineID).Updates(updates).Error; err != nil {
			return err
		}

		if line.SKU == nil || *line.SKU == "" {
			return nil
		}

		return r.correctCacheInTx(tx, parentReceipt.VendorKey, *line.SKU, update)
	})
	if err != nil {
		return xerr.NewError(err, "update line categorization", map[string]any{"line_id": lineID})
	}
	return nil
}

// correctCacheInTx mirrors cache.Cache.Correct but runs against the
// caller's transaction so the line update and the cache correction
// commit or roll back together, as §4.7 requires.
func (r *Repository) correctCacheInTx(tx *gorm.DB, vendorCanonical, sku string, update LineCategorizationUpdate) error {
	now := time.Now()
	entry := receipt.ProductMapping{
		VendorCanonical: vendorCanonical,
		SKU:             sku,
		ProductCategory: update.ProductCategory,
		AccountCode:     update.AccountCode,
		Brand:           update.Brand,
		UserConfidence:  1.0,
		LastSeen:        now,
		FirstSeen:       now,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_canonical"}, {Name: "sku"}},
		UpdateAll: true,
	}).Create(&entry).Error; err != nil {
		return err
	}

	activity := receipt.ReviewActivity{
		ID:           receipt.NewID(),
		ReviewableID: update.ReviewableID,
		Action:       receipt.ActionCorrect,
		Actor:        update.Actor,
		Payload: map[string]any{
			"vendor_canonical": vendorCanonical,
			"sku":              sku,
			"product_category": update.ProductCategory,
		},
		At: now,
	}
	return tx.Create(&activity).Error
}

// RecordLineReviewAction applies a status-only reviewer action (approve,
// reject, snooze, needs_info) to a line and appends the ReviewActivity
// row §3 names as the append-only log of review decisions. approve is
// the only action that clears requires_review; the others leave the
// line queued since the reviewer hasn't resolved its categorization.
func (r *Repository) RecordLineReviewAction(lineID string, action receipt.ReviewAction, actor, reviewableID string) *xerr.Error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if action == receipt.ActionApprove {
			if err := tx.Model(&receipt.ReceiptLine{}).Where("id = ?", lineID).Updates(map[string]any{
				"requires_review": false,
				"updated_at":      time.Now(),
			}).Error; err != nil {
				return err
			}
		}

		activity := receipt.ReviewActivity{
			ID:           receipt.NewID(),
			ReviewableID: reviewableID,
			Action:       action,
			Actor:        actor,
			Payload:      map[string]any{"line_id": lineID},
			At:           time.Now(),
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return xerr.NewError(err, "record line review action", map[string]any{"line_id": lineID, "action": action})
	}
	return nil
}
