package importer

import (
	"testing"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
)

// fakeBatchRunner creates every request it receives, except serials listed
// in failSerials, which fail the way a duplicate would.
type fakeBatchRunner struct {
	calls       int
	received    []models.ValidatedAssetRequest
	failSerials map[string]bool
}

func (f *fakeBatchRunner) CreateBatch(source string, performedBy string, requests []models.ValidatedAssetRequest) (*models.BatchResult, error) {
	f.calls++
	f.received = requests

	result := models.NewBatchResult("batch-1", len(requests))
	for i, req := range requests {
		if f.failSerials[req.Serial] {
			result.AddFailure(req.Row, "serial number "+req.Serial+" is already registered")
			continue
		}
		result.AddCreated(&models.Asset{ID: i + 1, Code: "LAP-000" + req.Serial[len(req.Serial)-1:], Serial: req.Serial})
	}
	return result.Finalize(), nil
}

func TestCommitMixedValidity(t *testing.T) {
	runner := &fakeBatchRunner{}
	service := NewImportService(runner)

	payload := "Serial Number,Code Prefix,Category\nSN-001,LAP,Laptop\nSN-002,LAP,\n"

	result, err := service.Commit(payload, "mpeeters")
	assert.NoError(t, err)

	assert.Equal(t, 2, result.TotalRequested)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Messages[0], "category")

	// Only the defect-free row reached batch creation.
	assert.Len(t, runner.received, 1)
	assert.Equal(t, "SN-001", runner.received[0].Serial)
}

func TestCommitMergesErrorsInRowOrder(t *testing.T) {
	runner := &fakeBatchRunner{failSerials: map[string]bool{"SN-003": true}}
	service := NewImportService(runner)

	payload := "Serial Number,Code Prefix,Category\n" +
		"SN-001,LAP,\n" + // row 1: validation defect
		"SN-002,LAP,Laptop\n" + // row 2: created
		"SN-003,LAP,Laptop\n" // row 3: creation failure

	result, err := service.Commit(payload, "mpeeters")
	assert.NoError(t, err)

	assert.Equal(t, 3, result.TotalRequested)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Equal(t, result.TotalRequested, result.CreatedCount+result.FailedCount)
}

func TestCommitAllRowsInvalidSkipsBatch(t *testing.T) {
	runner := &fakeBatchRunner{}
	service := NewImportService(runner)

	payload := "Serial Number,Code Prefix,Category\nSN-001,,\n,,\n"

	result, err := service.Commit(payload, "mpeeters")
	assert.NoError(t, err)

	assert.Equal(t, 0, runner.calls)
	assert.Equal(t, 2, result.TotalRequested)
	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.NotEmpty(t, result.BatchID)
}

func TestCommitHardErrorOnBadPayload(t *testing.T) {
	runner := &fakeBatchRunner{}
	service := NewImportService(runner)

	_, err := service.Commit("Serial Number,Code Prefix\nSN-001,LAP\n", "mpeeters")
	assert.Error(t, err)
	assert.Equal(t, 0, runner.calls)
}

func TestPreviewWritesNothing(t *testing.T) {
	runner := &fakeBatchRunner{}
	service := NewImportService(runner)

	payload := "Serial Number,Code Prefix,Category\nSN-001,LAP,Laptop\nSN-002,LAP,\n"

	result, err := service.Preview(payload)
	assert.NoError(t, err)

	assert.Equal(t, 0, runner.calls)
	assert.Equal(t, 2, result.TotalRequested)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Empty(t, result.CreatedAssets)
	assert.Len(t, result.Errors, 1)
}
