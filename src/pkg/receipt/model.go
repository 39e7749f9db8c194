// Package receipt holds the data model shared by every stage of the
// ingestion pipeline: entities, receipts, line items, the categorization
// cache entry shape, and review activity log entries.
package receipt

import (
	"time"

	"curlysbooks/src/pkg/money"
)

// Entity selects one of two otherwise-identical persistence namespaces.
// The categorization cache is the one piece of state shared across both.
type Entity string

const (
	EntityCorp     Entity = "corp"
	EntitySoleprop Entity = "soleprop"
)

func (e Entity) Valid() bool {
	return e == EntityCorp || e == EntitySoleprop
}

// Source names where a receipt originated.
type Source string

const (
	SourcePWA    Source = "pwa"
	SourceEmail  Source = "email"
	SourceDrive  Source = "drive"
	SourceManual Source = "manual"
)

// Status is the receipt lifecycle: pending -> processing -> {review_required, approved} -> posted, or terminal rejected/failed.
type Status string

const (
	StatusPending        Status = "pending"
	StatusProcessing     Status = "processing"
	StatusReviewRequired Status = "review_required"
	StatusApproved       Status = "approved"
	StatusPosted         Status = "posted"
	StatusRejected       Status = "rejected"
	StatusFailed         Status = "failed"
)

// LineType enumerates the kinds of rows a vendor parser may emit.
type LineType string

const (
	LineTypeItem     LineType = "item"
	LineTypeDiscount LineType = "discount"
	LineTypeDeposit  LineType = "deposit"
	LineTypeFee      LineType = "fee"
	LineTypeSubtotal LineType = "subtotal"
	LineTypeTax      LineType = "tax"
	LineTypeTotal    LineType = "total"
)

// TaxFlag is the per-line tax treatment.
type TaxFlag string

const (
	TaxFlagTaxable   TaxFlag = "Y"
	TaxFlagZeroRated TaxFlag = "Z"
	TaxFlagExempt    TaxFlag = "N"
)

// WarningType is the closed taxonomy of degraded-severity conditions.
type WarningType string

const (
	WarningSubtotalMismatch      WarningType = "subtotal_mismatch"
	WarningTotalMismatch         WarningType = "total_mismatch"
	WarningPriceParseFailed      WarningType = "price_parse_failed"
	WarningDateParseFailed       WarningType = "date_parse_failed"
	WarningVendorUnknown         WarningType = "vendor_unknown"
	WarningRecognizerTimeout     WarningType = "recognizer_timeout"
	WarningRecognizerInvalid     WarningType = "recognizer_output_invalid"
	WarningOCRLowConfidence      WarningType = "ocr_low_confidence"
	WarningBoundingBoxUnavailable WarningType = "bounding_boxes_unavailable"
)

// ValidationWarning is a structured, non-fatal parse problem attached to
// a receipt (§7 of the spec this pipeline implements).
type ValidationWarning struct {
	Type    WarningType    `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// BoundingBox is page-normalized to [0,1], regardless of what coordinate
// convention the originating OCR provider used natively.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Receipt is one scanned document.
type Receipt struct {
	ID              string `gorm:"primaryKey" json:"id"`
	Entity          Entity `gorm:"index" json:"entity"`
	ContentHash     string `gorm:"index" json:"content_hash"`
	PerceptualHash  string `json:"perceptual_hash,omitempty"`
	OriginalPath    string `json:"original_path"`
	Source          Source `json:"source"`
	UploadedAt      time.Time `json:"uploaded_at"`

	OCRMethod     string  `json:"ocr_method"`
	OCRConfidence float64 `json:"ocr_confidence"`
	PageCount     int     `json:"page_count"`

	VendorKey     string          `gorm:"index" json:"vendor_key,omitempty"`
	VendorGuess   string          `json:"vendor_guess"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Currency      string          `json:"currency"`
	Subtotal      money.Amount    `gorm:"type:numeric(12,2)" json:"subtotal"`
	TaxTotal      money.Amount    `gorm:"type:numeric(12,2)" json:"tax_total"`
	Total         money.Amount    `gorm:"type:numeric(12,2)" json:"total"`
	IsBill        bool            `json:"is_bill"`
	PaymentTerms  string          `json:"payment_terms,omitempty"`

	ValidationWarnings JSONWarnings `gorm:"type:jsonb" json:"validation_warnings"`

	Status    Status    `gorm:"index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lines []ReceiptLine `gorm:"foreignKey:ReceiptID" json:"lines,omitempty"`
}

func (Receipt) TableName() string { return "receipts" }

// ReceiptLine is one item on a receipt.
type ReceiptLine struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	ReceiptID string   `gorm:"index" json:"receipt_id"`
	LineIndex int      `json:"line_index"`
	LineType  LineType `json:"line_type"`

	SKU          *string `json:"sku,omitempty"`
	UPC          *string `json:"upc,omitempty"`
	RawText      string  `json:"raw_text"`
	CleanedText  string  `json:"cleaned_description,omitempty"`

	Quantity  *money.Amount `gorm:"type:numeric(12,3)" json:"quantity,omitempty"`
	UnitPrice *money.Amount `gorm:"type:numeric(12,2)" json:"unit_price,omitempty"`
	LineTotal money.Amount  `gorm:"type:numeric(12,2)" json:"line_total"`

	TaxFlag   TaxFlag       `json:"tax_flag"`
	TaxAmount *money.Amount `gorm:"type:numeric(12,2)" json:"tax_amount,omitempty"`

	NormalizedDescription string       `json:"normalized_description,omitempty"`
	ProductCategory       string       `json:"product_category,omitempty"`
	AccountCode           string       `json:"account_code,omitempty"`
	Brand                 string       `json:"brand,omitempty"`
	Confidence             float64      `json:"confidence"`
	RequiresReview         bool         `json:"requires_review"`
	AICostUSD              *money.Amount `gorm:"type:numeric(12,6)" json:"ai_cost_usd,omitempty"`
	BoundingBox            *BoundingBox  `gorm:"type:jsonb" json:"bounding_box,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReceiptLine) TableName() string { return "receipt_lines" }

// ProductMapping is one categorization cache entry, shared across
// entities. A line with an empty SKU is "not cacheable" — pure AI path,
// no write-through (see recognizer package).
type ProductMapping struct {
	VendorCanonical      string    `gorm:"primaryKey" json:"vendor_canonical"`
	SKU                  string    `gorm:"primaryKey" json:"sku"`
	NormalizedDescription string   `json:"normalized_description"`
	ProductCategory      string    `json:"product_category"`
	AccountCode          string    `json:"account_code"`
	Brand                string    `json:"brand,omitempty"`
	UserConfidence       float64   `json:"user_confidence"`
	TimesSeen            int       `json:"times_seen"`
	FirstSeen            time.Time `json:"first_seen"`
	LastSeen             time.Time `json:"last_seen"`
}

func (ProductMapping) TableName() string { return "product_mappings" }

// ReviewAction enumerates the actions a reviewer can take on a
// Reviewable (see review package).
type ReviewAction string

const (
	ActionApprove   ReviewAction = "approve"
	ActionReject    ReviewAction = "reject"
	ActionCorrect   ReviewAction = "correct"
	ActionSnooze    ReviewAction = "snooze"
	ActionNeedsInfo ReviewAction = "needs_info"
)

// ReviewActivity is an append-only log of review actions.
type ReviewActivity struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	ReviewableID string         `gorm:"index" json:"reviewable_id"`
	Action       ReviewAction   `json:"action"`
	Actor        string         `json:"actor"`
	Reason       string         `json:"reason,omitempty"`
	Payload      map[string]any `gorm:"type:jsonb" json:"payload,omitempty"`
	At           time.Time      `json:"at"`
}

func (ReviewActivity) TableName() string { return "review_activity" }
