package importer

import (
	"testing"
	"time"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
)

func row(fields map[string]string) models.ImportRow {
	return models.ImportRow{Number: 1, Fields: fields}
}

func completeRow() map[string]string {
	return map[string]string{
		ColumnSerialNumber: "SN-001",
		ColumnCodePrefix:   "LAP",
		ColumnCategory:     "Laptop",
	}
}

func TestValidateRowComplete(t *testing.T) {
	fields := completeRow()
	fields[ColumnName] = "Dell Latitude"
	fields[ColumnIsDummy] = "TRUE"

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, rowError)
	assert.Equal(t, "SN-001", request.Serial)
	assert.Equal(t, "LAP", request.CodePrefix)
	assert.Equal(t, "Laptop", request.Category)
	assert.Equal(t, "Dell Latitude", request.Name)
	assert.Equal(t, metadata.DefaultStatus, request.Status)
	assert.True(t, request.IsDummy)
}

func TestValidateRowReportsEveryMissingField(t *testing.T) {
	request, rowError := ValidateRow(row(map[string]string{
		ColumnCodePrefix: "LAP",
	}))

	assert.Nil(t, request)
	assert.GreaterOrEqual(t, len(rowError.Messages), 2)
	assert.Contains(t, rowError.Messages, "missing required field: serial_number")
	assert.Contains(t, rowError.Messages, "missing required field: category")
}

func TestValidateRowWhitespaceOnlyIsMissing(t *testing.T) {
	fields := completeRow()
	fields[ColumnSerialNumber] = "   "

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, request)
	assert.Contains(t, rowError.Messages, "missing required field: serial_number")
}

func TestValidateRowStatus(t *testing.T) {
	fields := completeRow()
	fields[ColumnStatus] = "under_repair"

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, rowError)
	assert.Equal(t, metadata.StatusUnderRepair, request.Status)

	fields[ColumnStatus] = "lost_in_space"
	request, rowError = ValidateRow(row(fields))
	assert.Nil(t, request)
	assert.Contains(t, rowError.Messages[0], "invalid status")
}

func TestValidateRowDateFormats(t *testing.T) {
	expected := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2024-01-15", "15-01-2024", "15/01/2024", "01/15/2024"} {
		fields := completeRow()
		fields[ColumnPurchaseDate] = value

		request, rowError := ValidateRow(row(fields))
		assert.Nil(t, rowError, "value %s should parse", value)
		assert.True(t, expected.Equal(*request.PurchaseDate), "value %s parsed to %v", value, request.PurchaseDate)
	}
}

func TestValidateRowAmbiguousDateIsDayFirst(t *testing.T) {
	fields := completeRow()
	fields[ColumnInstallationDate] = "03/04/2024"

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, rowError)
	assert.Equal(t, time.April, request.InstallationDate.Month())
	assert.Equal(t, 3, request.InstallationDate.Day())
}

func TestValidateRowRejectsImpossibleDate(t *testing.T) {
	fields := completeRow()
	fields[ColumnWarrantyExpiry] = "31-02-2024"

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, request)
	assert.Contains(t, rowError.Messages[0], ColumnWarrantyExpiry)
}

func TestValidateRowEmptyDateIsAbsent(t *testing.T) {
	fields := completeRow()
	fields[ColumnPurchaseDate] = ""

	request, rowError := ValidateRow(row(fields))
	assert.Nil(t, rowError)
	assert.Nil(t, request.PurchaseDate)
}

func TestValidateRowDummyFlag(t *testing.T) {
	for value, expected := range map[string]bool{
		"true": true, "TRUE": true, "1": true,
		"false": false, "0": false, "yes": false, "": false,
	} {
		fields := completeRow()
		fields[ColumnIsDummy] = value

		request, rowError := ValidateRow(row(fields))
		assert.Nil(t, rowError)
		assert.Equal(t, expected, request.IsDummy, "value %q", value)
	}
}

func TestValidateRowAccumulatesMixedDefects(t *testing.T) {
	request, rowError := ValidateRow(row(map[string]string{
		ColumnCodePrefix:   "LAP",
		ColumnStatus:       "bogus",
		ColumnPurchaseDate: "not-a-date",
	}))

	assert.Nil(t, request)
	assert.GreaterOrEqual(t, len(rowError.Messages), 4)
}
