package importer

import (
	"fmt"
	"strings"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"golang.org/x/text/encoding/charmap"
)

// Canonical column keys used across parsing and validation.
const (
	ColumnSerialNumber     = "serial_number"
	ColumnCodePrefix       = "code_prefix"
	ColumnCategory         = "category"
	ColumnName             = "name"
	ColumnStatus           = "status"
	ColumnLocation         = "location"
	ColumnOwner            = "owner"
	ColumnDepartment       = "department"
	ColumnBrand            = "brand"
	ColumnModel            = "model"
	ColumnPurchaseDate     = "purchase_date"
	ColumnWarrantyExpiry   = "warranty_expiry"
	ColumnInstallationDate = "installation_date"
	ColumnIsDummy          = "is_dummy"
)

type columnSpec struct {
	key      string
	required bool
	aliases  []string
}

// Header labels are matched case-insensitively with spaces, underscores and
// dashes ignored, so "Serial Number", "serial_number" and "SERIALNUMBER"
// all land on the same key. Unrecognized columns are skipped.
var recognizedColumns = []columnSpec{
	{key: ColumnSerialNumber, required: true, aliases: []string{"serial number", "serialnumber", "serial", "serial no", "sn"}},
	{key: ColumnCodePrefix, required: true, aliases: []string{"code prefix", "codeprefix", "prefix"}},
	{key: ColumnCategory, required: true, aliases: []string{"category", "asset type", "type"}},
	{key: ColumnName, aliases: []string{"name", "alias", "asset name"}},
	{key: ColumnStatus, aliases: []string{"status", "state"}},
	{key: ColumnLocation, aliases: []string{"location", "installation location", "site"}},
	{key: ColumnOwner, aliases: []string{"owner", "assigned to"}},
	{key: ColumnDepartment, aliases: []string{"department", "dept"}},
	{key: ColumnBrand, aliases: []string{"brand", "manufacturer", "make"}},
	{key: ColumnModel, aliases: []string{"model", "model number"}},
	{key: ColumnPurchaseDate, aliases: []string{"purchase date", "purchased", "date of purchase"}},
	{key: ColumnWarrantyExpiry, aliases: []string{"warranty expiry", "warranty", "warranty end"}},
	{key: ColumnInstallationDate, aliases: []string{"installation date", "installed"}},
	{key: ColumnIsDummy, aliases: []string{"is dummy", "dummy", "test asset"}},
}

// DecodePayload converts a raw upload to UTF-8. Legacy exports from the old
// desktop tooling arrive as windows-1250 or windows-1251.
func DecodePayload(data []byte, charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return string(data), nil
	case "windows-1250", "cp1250":
		decoded, err := charmap.Windows1250.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode windows-1250 payload: %w", err)
		}
		return string(decoded), nil
	case "windows-1251", "cp1251":
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode windows-1251 payload: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unsupported charset: %s", charset)
	}
}

// Parse splits a CSV payload into raw rows keyed by canonical column name.
// Any returned error is a hard failure: nothing was processed.
func Parse(payload string) ([]models.ImportRow, error) {
	lines := meaningfulLines(payload)
	if len(lines) < 2 {
		return nil, fmt.Errorf("payload must contain a header line and at least one data line")
	}

	delimiter := detectDelimiter(lines[0])
	columns, err := mapHeader(splitFields(lines[0], delimiter))
	if err != nil {
		return nil, err
	}

	rows := make([]models.ImportRow, 0, len(lines)-1)
	for i, line := range lines[1:] {
		fields := splitFields(line, delimiter)

		row := models.ImportRow{
			Number: i + 1,
			Fields: make(map[string]string),
		}
		for position, key := range columns {
			if key == "" || position >= len(fields) {
				continue
			}
			row.Fields[key] = fields[position]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func meaningfulLines(payload string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(payload, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func detectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func splitFields(line string, delimiter rune) []string {
	parts := strings.Split(line, string(delimiter))
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = stripQuotes(strings.TrimSpace(part))
	}
	return fields
}

func stripQuotes(field string) string {
	if len(field) >= 2 {
		first, last := field[0], field[len(field)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(field[1 : len(field)-1])
		}
	}
	return field
}

// mapHeader resolves each header cell to a canonical key, empty string for
// unrecognized columns. Missing required columns are a hard failure.
func mapHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	present := make(map[string]bool)

	for i, cell := range header {
		key := matchColumn(cell)
		columns[i] = key
		if key != "" {
			present[key] = true
		}
	}

	for _, spec := range recognizedColumns {
		if spec.required && !present[spec.key] {
			return nil, fmt.Errorf("missing required column: %s", spec.key)
		}
	}

	return columns, nil
}

func matchColumn(label string) string {
	normalized := normalizeLabel(label)
	for _, spec := range recognizedColumns {
		for _, alias := range spec.aliases {
			if normalized == normalizeLabel(alias) {
				return spec.key
			}
		}
	}
	return ""
}

func normalizeLabel(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, drop := range []string{" ", "_", "-"} {
		normalized = strings.ReplaceAll(normalized, drop, "")
	}
	return normalized
}
