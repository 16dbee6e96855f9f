package importer

import (
	"sort"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/metrics"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/google/uuid"
)

type batchRunner interface {
	CreateBatch(source string, performedBy string, requests []models.ValidatedAssetRequest) (*models.BatchResult, error)
}

// ImportService runs the CSV pipeline: parse, validate every row, then
// either stop (preview) or feed the defect-free rows into batch creation.
type ImportService struct {
	batches batchRunner
}

func NewImportService(batches batchRunner) *ImportService {
	return &ImportService{batches: batches}
}

// Preview validates the payload without writing anything. The counts show
// what Commit would do: created_count is the number of rows that would be
// created, with an empty created list.
func (s *ImportService) Preview(payload string) (*models.BatchResult, error) {
	rows, err := Parse(payload)
	if err != nil {
		return nil, err
	}

	valid, rowErrors := validateAll(rows)

	result := models.NewBatchResult("", len(rows))
	result.Errors = rowErrors
	result.CreatedCount = len(valid)
	result.FailedCount = len(rowErrors)

	metrics.ObserveBatch("preview", 0, 0)

	return result, nil
}

// Commit validates the payload and creates an asset per defect-free row.
// Validation defects and creation failures end up in one error list,
// ordered by row number.
func (s *ImportService) Commit(payload string, performedBy string) (*models.BatchResult, error) {
	rows, err := Parse(payload)
	if err != nil {
		return nil, err
	}

	valid, rowErrors := validateAll(rows)

	var result *models.BatchResult
	if len(valid) > 0 {
		result, err = s.batches.CreateBatch("import", performedBy, valid)
		if err != nil {
			return nil, err
		}
	} else {
		result = models.NewBatchResult(uuid.NewString(), len(rows))
	}

	result.TotalRequested = len(rows)
	for _, rowError := range rowErrors {
		result.AddRowError(rowError)
	}
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	return result.Finalize(), nil
}

func validateAll(rows []models.ImportRow) ([]models.ValidatedAssetRequest, []models.RowError) {
	var valid []models.ValidatedAssetRequest
	var rowErrors []models.RowError

	for _, row := range rows {
		request, rowError := ValidateRow(row)
		if rowError != nil {
			rowErrors = append(rowErrors, *rowError)
			continue
		}
		valid = append(valid, *request)
	}

	return valid, rowErrors
}
