// Package review implements the review projection (C8): a read-only
// shape unifying heterogeneous rows needing a human decision, currently
// backed by receipt lines only. Mutations never touch the projection
// directly; they go through Dispatch to the owning source table.
package review

import (
	"fmt"
	"time"

	"github.com/tuumbleweed/xerr"
	"gorm.io/gorm"

	"curlysbooks/src/pkg/receipt"
	"curlysbooks/src/pkg/repository"
)

// ReviewableType is the closed set of source kinds the projection can
// unify. Only receipt_line_item is implemented; the others are named so
// a future source can be added without changing this type's shape.
type ReviewableType string

const (
	TypeReceiptLineItem ReviewableType = "receipt_line_item"
	TypeReimbursement   ReviewableType = "reimbursement"
	TypeBankMatch       ReviewableType = "bank_match"
)

// ReviewStatus mirrors the lifecycle a Reviewable can be in.
type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusApproved  ReviewStatus = "approved"
	StatusRejected  ReviewStatus = "rejected"
	StatusSnoozed   ReviewStatus = "snoozed"
	StatusNeedsInfo ReviewStatus = "needs_info"
	StatusPosted    ReviewStatus = "posted"
)

// SourceRef identifies exactly which source-table row a Reviewable
// projects, so Dispatch knows where to write a correction back.
type SourceRef struct {
	Table  string `json:"table"`
	Schema string `json:"schema"`
	PK     string `json:"pk"`
}

// Reviewable is the single shape every review-queue source must
// project into, per §4.8.
type Reviewable struct {
	ID             string         `json:"id"`
	Type           ReviewableType `json:"type"`
	Entity         receipt.Entity `json:"entity"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	SourceRef      SourceRef      `json:"source_ref"`
	Summary        string         `json:"summary"`
	Details        map[string]any `json:"details"`
	Confidence     *float64       `json:"confidence"`
	RequiresReview bool           `json:"requires_review"`
	Status         ReviewStatus   `json:"status"`
	Assignee       string         `json:"assignee,omitempty"`
	Vendor         string         `json:"vendor,omitempty"`
	Date           time.Time      `json:"date"`
	Amount         float64        `json:"amount"`
	AgeHours       float64        `json:"age_hours"`
}

// Projection builds Reviewables from receipt lines and dispatches
// reviewer actions back to their source tables.
type Projection struct {
	db   *gorm.DB
	repo *repository.Repository
}

func New(db *gorm.DB, repo *repository.Repository) *Projection {
	return &Projection{db: db, repo: repo}
}

// ListPending returns the receipt-line-item reviewables for entity that
// currently require review, materialized directly from the source
// tables (not a separately-maintained projection table) — the bounded
// refresh delay the contract requires is then simply "however long this
// query takes", which for an indexed requires_review column is well
// under the 5s ceiling even at review-queue scale.
func (p *Projection) ListPending(entity receipt.Entity, filters repository.Filters) ([]Reviewable, *xerr.Error) {
	lines, e := p.repo.GetLinesForReview(entity, filters)
	if e != nil {
		return nil, e
	}

	var receipts []receipt.Receipt
	if err := p.db.Where("entity = ?", entity).Find(&receipts).Error; err != nil {
		return nil, xerr.NewError(err, "load receipts for review projection", map[string]any{"entity": entity})
	}
	receiptByID := make(map[string]receipt.Receipt, len(receipts))
	for _, r := range receipts {
		receiptByID[r.ID] = r
	}

	now := time.Now()
	reviewables := make([]Reviewable, 0, len(lines))
	for _, line := range lines {
		parent := receiptByID[line.ReceiptID]
		reviewables = append(reviewables, fromLine(line, parent, now))
	}
	return reviewables, nil
}

func fromLine(line receipt.ReceiptLine, parent receipt.Receipt, now time.Time) Reviewable {
	confidence := line.Confidence
	return Reviewable{
		ID:     fmt.Sprintf("receipt_lines:public:%s", line.ID),
		Type:   TypeReceiptLineItem,
		Entity: parent.Entity,
		CreatedAt: line.CreatedAt,
		UpdatedAt: line.UpdatedAt,
		SourceRef: SourceRef{
			Table:  "receipt_lines",
			Schema: "public",
			PK:     line.ID,
		},
		Summary: fmt.Sprintf("%q → %s", line.RawText, line.ProductCategory),
		Details: map[string]any{
			"validation_warnings": parent.ValidationWarnings,
			"normalized_description": line.NormalizedDescription,
			"account_code":           line.AccountCode,
			"brand":                  line.Brand,
		},
		Confidence:     &confidence,
		RequiresReview: line.RequiresReview,
		Status:         StatusPending,
		Vendor:         parent.VendorGuess,
		Date:           parent.PurchaseDate,
		Amount:         line.LineTotal.InexactFloat64(),
		AgeHours:       now.Sub(line.CreatedAt).Hours(),
	}
}

// CorrectionFields is what a reviewer supplies for a "correct" action on
// a receipt_line_item Reviewable.
type CorrectionFields struct {
	ProductCategory string
	AccountCode     string
	Brand           string
	Actor           string
}

// Dispatch routes a reviewer action by the Reviewable's Type. Only
// receipt_line_item is wired; other types return ErrUnsupportedType so
// callers can surface "not yet implemented" distinctly from a real
// failure.
func (p *Projection) Dispatch(rv Reviewable, action receipt.ReviewAction, fields CorrectionFields) *xerr.Error {
	if rv.Type != TypeReceiptLineItem {
		return xerr.NewError(ErrUnsupportedType, "dispatch review action", map[string]any{"type": rv.Type})
	}

	switch action {
	case receipt.ActionApprove, receipt.ActionReject, receipt.ActionSnooze, receipt.ActionNeedsInfo:
		// These are status-only transitions on the line; no categorization
		// fields change and no cache write-through applies, but the
		// decision itself is still logged.
		return p.repo.RecordLineReviewAction(rv.SourceRef.PK, action, fields.Actor, rv.ID)
	case receipt.ActionCorrect:
		return p.repo.UpdateLineCategorization(rv.Entity, rv.SourceRef.PK, repository.LineCategorizationUpdate{
			ProductCategory: fields.ProductCategory,
			AccountCode:     fields.AccountCode,
			Brand:           fields.Brand,
			RequiresReview:  false,
			Actor:           fields.Actor,
			ReviewableID:    rv.ID,
		})
	default:
		return xerr.NewError(ErrUnsupportedAction, "dispatch review action", map[string]any{"action": action})
	}
}
