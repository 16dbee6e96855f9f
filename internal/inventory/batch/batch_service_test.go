package batch

import (
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/allocator"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/auditlog"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
)

// fakeAssetStore backs both the allocator and the batch service with one
// in-memory asset table.
type fakeAssetStore struct {
	mu      sync.Mutex
	nextID  int
	serials map[string]bool
	codes   map[string]bool
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{
		serials: make(map[string]bool),
		codes:   make(map[string]bool),
	}
}

func (s *fakeAssetStore) MaxCodeSuffix(prefix string, lo, hi int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	highest := 0
	for code := range s.codes {
		parsed, err := metadata.ParseAssetCode(code)
		if err != nil || parsed.Prefix() != prefix {
			continue
		}
		if n := parsed.Number(); n >= lo && n <= hi && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (s *fakeAssetStore) ExistsBySerial(serial string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serials[strings.ToLower(serial)], nil
}

func (s *fakeAssetStore) InsertAsset(req models.ValidatedAssetRequest, categoryID int, code string) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codes[code] {
		return nil, &custom_error.CodeConflictError{Code: code}
	}
	if s.serials[strings.ToLower(req.Serial)] {
		return nil, custom_error.WrapDBError("Duplicate serial number for asset", "23505")
	}

	s.nextID++
	s.codes[code] = true
	s.serials[strings.ToLower(req.Serial)] = true

	return &models.Asset{
		ID:     s.nextID,
		Code:   code,
		Serial: req.Serial,
		Status: string(req.Status),
		Category: models.Category{
			ID:   categoryID,
			Name: req.Category,
		},
		IsDummy:   req.IsDummy,
		CreatedAt: time.Now(),
	}, nil
}

type fakeCategoryStore struct {
	categories map[string]int
}

func (s *fakeCategoryStore) GetCategoryByName(name string) (*models.Category, error) {
	id, ok := s.categories[strings.ToLower(name)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Category{ID: id, Name: name}, nil
}

type fakeAuditLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *fakeAuditLog) Log(action string, performedBy string, data interface{}, item auditlog.Auditable) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, action+":"+performedBy)
}

func (l *fakeAuditLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func newTestService(store *fakeAssetStore) (*BatchService, *fakeAuditLog) {
	categories := &fakeCategoryStore{categories: map[string]int{"laptop": 1, "printer": 2}}
	audit := &fakeAuditLog{}
	service := NewBatchService(store, categories, allocator.New(store), audit)
	return service, audit
}

func request(row int, serial string) models.ValidatedAssetRequest {
	return models.ValidatedAssetRequest{
		Row:        row,
		Serial:     serial,
		CodePrefix: "LAP",
		Category:   "Laptop",
		Status:     metadata.DefaultStatus,
	}
}

func TestCreateBatchAllItemsSucceed(t *testing.T) {
	store := newFakeAssetStore()
	service, audit := newTestService(store)

	requests := []models.ValidatedAssetRequest{
		request(1, "SN-001"),
		request(2, "SN-002"),
		request(3, "SN-003"),
	}

	result, err := service.CreateBatch("import", "mpeeters", requests)
	assert.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 3, result.TotalRequested)
	assert.Equal(t, 3, result.CreatedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Equal(t, "LAP-0001", result.CreatedAssets[0].Code)
	assert.Equal(t, "LAP-0002", result.CreatedAssets[1].Code)
	assert.Equal(t, "LAP-0003", result.CreatedAssets[2].Code)

	assert.Eventually(t, func() bool {
		return audit.count() == 3
	}, time.Second, 10*time.Millisecond)
}

func TestCreateBatchIsolatesFailedItem(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	requests := []models.ValidatedAssetRequest{
		request(1, "SN-001"),
		request(2, "SN-002"),
		request(3, "SN-001"), // duplicate of row 1
		request(4, "SN-004"),
		request(5, "SN-005"),
	}

	result, err := service.CreateBatch("import", "mpeeters", requests)
	assert.NoError(t, err)

	assert.Equal(t, 5, result.TotalRequested)
	assert.Equal(t, 4, result.CreatedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Messages[0], "SN-001")

	// The failed item burns no code: survivors stay contiguous.
	codes := make([]string, 0, len(result.CreatedAssets))
	for _, created := range result.CreatedAssets {
		codes = append(codes, created.Code)
	}
	assert.Equal(t, []string{"LAP-0001", "LAP-0002", "LAP-0003", "LAP-0004"}, codes)
}

func TestCreateBatchUnknownCategory(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	req := request(1, "SN-001")
	req.Category = "Hovercraft"

	result, err := service.CreateBatch("import", "mpeeters", []models.ValidatedAssetRequest{req})
	assert.NoError(t, err)

	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Contains(t, result.Errors[0].Messages[0], "Hovercraft")
}

func TestCreateBatchInvalidPrefix(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	req := request(1, "SN-001")
	req.CodePrefix = "LA P"

	result, err := service.CreateBatch("import", "mpeeters", []models.ValidatedAssetRequest{req})
	assert.NoError(t, err)

	assert.Equal(t, 1, result.FailedCount)
	assert.Contains(t, result.Errors[0].Messages[0], "invalid code prefix")
}

func TestCreateBatchEmptyInput(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	_, err := service.CreateBatch("import", "mpeeters", nil)
	assert.Error(t, err)
}

func TestCreateBatchCountsAlwaysAddUp(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	requests := []models.ValidatedAssetRequest{
		request(1, "SN-001"),
		request(2, "SN-001"),
		request(3, "SN-001"),
	}

	result, err := service.CreateBatch("import", "mpeeters", requests)
	assert.NoError(t, err)
	assert.Equal(t, result.TotalRequested, result.CreatedCount+result.FailedCount)
}

func TestExpandTemplate(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	requests, err := service.ExpandTemplate(models.TemplateRequest{
		CodePrefix:   "LAP",
		SerialPrefix: "SRV",
		Quantity:     3,
		Category:     "Laptop",
	})
	assert.NoError(t, err)

	assert.Len(t, requests, 3)
	assert.Equal(t, "SRV0001", requests[0].Serial)
	assert.Equal(t, "SRV0003", requests[2].Serial)
	assert.Equal(t, metadata.DefaultStatus, requests[0].Status)
	assert.Equal(t, 1, requests[0].Row)
}

func TestExpandTemplateRejectsUnknownStatus(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	_, err := service.ExpandTemplate(models.TemplateRequest{
		CodePrefix:   "LAP",
		SerialPrefix: "SRV",
		Quantity:     2,
		Category:     "Laptop",
		Status:       "lost_in_space",
	})
	assert.Error(t, err)
}

func TestCreateFromTemplate(t *testing.T) {
	store := newFakeAssetStore()
	service, _ := newTestService(store)

	result, err := service.CreateFromTemplate("mpeeters", models.TemplateRequest{
		CodePrefix:   "PRN",
		SerialPrefix: "PRT",
		Quantity:     3,
		Category:     "Printer",
		IsDummy:      true,
	})
	assert.NoError(t, err)

	assert.Equal(t, 3, result.CreatedCount)
	assert.Equal(t, "PRN-9000", result.CreatedAssets[0].Code)
	assert.Equal(t, "PRN-9002", result.CreatedAssets[2].Code)
}
