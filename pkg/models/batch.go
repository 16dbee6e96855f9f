package models

import (
	"time"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
)

// ImportRow is one data line of a CSV payload: canonical column key to raw
// string value, plus the 1-based line number for error reporting. It only
// lives between parsing and validation.
type ImportRow struct {
	Number int
	Fields map[string]string
}

// ValidatedAssetRequest is the typed, defect-free projection of an import
// row or of one template-expansion item. It exists only when validation
// found zero defects for its source row.
type ValidatedAssetRequest struct {
	Row              int    // source row number or 1-based item index
	Serial           string `json:"serial"`
	CodePrefix       string `json:"code_prefix"`
	Category         string `json:"category"`
	Name             string `json:"name,omitempty"`
	Status           metadata.Status
	Location         string `json:"location,omitempty"`
	Owner            string `json:"owner,omitempty"`
	Department       string `json:"department,omitempty"`
	Brand            string `json:"brand,omitempty"`
	Model            string `json:"model,omitempty"`
	PurchaseDate     *time.Time
	WarrantyExpiry   *time.Time
	InstallationDate *time.Time
	IsDummy          bool `json:"is_dummy"`
}

// RowError carries every defect found for one row. A row with at least one
// RowError never reaches asset creation.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

func (e *RowError) Add(message string) {
	e.Messages = append(e.Messages, message)
}

func (e *RowError) HasErrors() bool {
	return len(e.Messages) > 0
}

type AssetSummary struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Serial string `json:"serial"`
}

// BatchResult aggregates one batch run. Counts are derived from the slices
// in Finalize so they cannot drift from the accumulated content; the
// invariant created_count + failed_count = total_requested always holds.
type BatchResult struct {
	BatchID        string         `json:"batch_id"`
	TotalRequested int            `json:"total_requested"`
	CreatedCount   int            `json:"created_count"`
	FailedCount    int            `json:"failed_count"`
	CreatedAssets  []AssetSummary `json:"created"`
	Errors         []RowError     `json:"errors,omitempty"`
}

func NewBatchResult(batchID string, totalRequested int) *BatchResult {
	return &BatchResult{
		BatchID:        batchID,
		TotalRequested: totalRequested,
		CreatedAssets:  []AssetSummary{},
		Errors:         []RowError{},
	}
}

func (r *BatchResult) AddCreated(asset *Asset) {
	r.CreatedAssets = append(r.CreatedAssets, AssetSummary{
		ID:     asset.ID,
		Code:   asset.Code,
		Serial: asset.Serial,
	})
}

func (r *BatchResult) AddRowError(rowError RowError) {
	r.Errors = append(r.Errors, rowError)
}

func (r *BatchResult) AddFailure(row int, message string) {
	r.Errors = append(r.Errors, RowError{Row: row, Messages: []string{message}})
}

func (r *BatchResult) Finalize() *BatchResult {
	r.CreatedCount = len(r.CreatedAssets)
	r.FailedCount = len(r.Errors)
	return r
}

// TemplateRequest is the interactive bulk form input: expand into Quantity
// synthetic items sharing the descriptive fields.
type TemplateRequest struct {
	CodePrefix   string `json:"code_prefix" binding:"required"`
	SerialPrefix string `json:"serial_prefix" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1,max=100"`
	IsDummy      bool   `json:"is_dummy"`
	Category     string `json:"category" binding:"required"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	Owner        string `json:"owner"`
	Department   string `json:"department"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
}

// AssetRequest is the single-asset creation payload.
type AssetRequest struct {
	Serial     string `json:"serial" binding:"required"`
	CodePrefix string `json:"code_prefix" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	Owner      string `json:"owner"`
	Department string `json:"department"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	IsDummy    bool   `json:"is_dummy"`
}
