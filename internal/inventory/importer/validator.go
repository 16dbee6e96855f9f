package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
)

// Date layouts tried in order: ISO first, then day-first, then permissive
// fallbacks. Day-first wins over US month-first for ambiguous values like
// 03/04/2024; that matches how the legacy exports were written.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
}

var requiredColumns = []string{ColumnSerialNumber, ColumnCodePrefix, ColumnCategory}

// ValidateRow checks one raw row and returns either a fully typed request
// or every defect found. It never returns both.
func ValidateRow(row models.ImportRow) (*models.ValidatedAssetRequest, *models.RowError) {
	rowError := &models.RowError{Row: row.Number}

	for _, column := range requiredColumns {
		if strings.TrimSpace(row.Fields[column]) == "" {
			rowError.Add(fmt.Sprintf("missing required field: %s", column))
		}
	}

	status := metadata.DefaultStatus
	if raw := strings.TrimSpace(row.Fields[ColumnStatus]); raw != "" {
		parsed, err := metadata.NewStatus(raw)
		if err != nil {
			rowError.Add(fmt.Sprintf("invalid status: %s", raw))
		} else {
			status = parsed
		}
	}

	purchaseDate := parseDateField(row.Fields[ColumnPurchaseDate], ColumnPurchaseDate, rowError)
	warrantyExpiry := parseDateField(row.Fields[ColumnWarrantyExpiry], ColumnWarrantyExpiry, rowError)
	installationDate := parseDateField(row.Fields[ColumnInstallationDate], ColumnInstallationDate, rowError)

	if rowError.HasErrors() {
		return nil, rowError
	}

	return &models.ValidatedAssetRequest{
		Row:              row.Number,
		Serial:           strings.TrimSpace(row.Fields[ColumnSerialNumber]),
		CodePrefix:       strings.TrimSpace(row.Fields[ColumnCodePrefix]),
		Category:         strings.TrimSpace(row.Fields[ColumnCategory]),
		Name:             strings.TrimSpace(row.Fields[ColumnName]),
		Status:           status,
		Location:         strings.TrimSpace(row.Fields[ColumnLocation]),
		Owner:            strings.TrimSpace(row.Fields[ColumnOwner]),
		Department:       strings.TrimSpace(row.Fields[ColumnDepartment]),
		Brand:            strings.TrimSpace(row.Fields[ColumnBrand]),
		Model:            strings.TrimSpace(row.Fields[ColumnModel]),
		PurchaseDate:     purchaseDate,
		WarrantyExpiry:   warrantyExpiry,
		InstallationDate: installationDate,
		IsDummy:          parseDummyFlag(row.Fields[ColumnIsDummy]),
	}, nil
}

func parseDateField(raw string, column string, rowError *models.RowError) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}

	rowError.Add(fmt.Sprintf("unparseable date in %s: %s", column, trimmed))
	return nil
}

func parseDummyFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
