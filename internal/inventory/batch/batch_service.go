package batch

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/allocator"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/metrics"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/auditlog"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/google/uuid"
)

type AssetStore interface {
	ExistsBySerial(serial string) (bool, error)
	InsertAsset(req models.ValidatedAssetRequest, categoryID int, code string) (*models.Asset, error)
}

type CategoryStore interface {
	GetCategoryByName(name string) (*models.Category, error)
}

type codeAllocator interface {
	Allocate(prefix string, dummy bool, claim allocator.ClaimFunc) (string, error)
}

type auditLogger interface {
	Log(action string, performedBy string, data interface{}, item auditlog.Auditable)
}

// BatchService turns a list of validated asset requests into persisted
// assets, one at a time. One bad item never aborts the rest of the batch.
type BatchService struct {
	assets     AssetStore
	categories CategoryStore
	allocator  codeAllocator
	auditLog   auditLogger
}

func NewBatchService(assets AssetStore, categories CategoryStore, alloc codeAllocator, auditLog auditLogger) *BatchService {
	return &BatchService{
		assets:     assets,
		categories: categories,
		allocator:  alloc,
		auditLog:   auditLog,
	}
}

// CreateBatch processes requests sequentially in input order. Every item is
// isolated: its failure lands in the result as a row error and processing
// moves on. The returned error covers only batch-level problems.
func (s *BatchService) CreateBatch(source string, performedBy string, requests []models.ValidatedAssetRequest) (*models.BatchResult, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("no valid rows to import")
	}

	result := models.NewBatchResult(uuid.NewString(), len(requests))

	for _, req := range requests {
		created, err := s.createOne(req)
		if err != nil {
			result.AddFailure(req.Row, s.failureMessage(req, err))
			continue
		}

		result.AddCreated(created)

		go s.auditLog.Log(
			"create",
			performedBy,
			map[string]interface{}{
				"code":     created.Code,
				"serial":   created.Serial,
				"batch_id": result.BatchID,
				"msg":      "Asset created in batch",
			},
			created,
		)
	}

	result.Finalize()
	metrics.ObserveBatch(source, result.CreatedCount, result.FailedCount)

	return result, nil
}

func (s *BatchService) createOne(req models.ValidatedAssetRequest) (*models.Asset, error) {
	exists, err := s.assets.ExistsBySerial(req.Serial)
	if err != nil {
		return nil, fmt.Errorf("failed to check serial number: %w", err)
	}
	if exists {
		return nil, &custom_error.DuplicateSerialError{Serial: req.Serial}
	}

	category, err := s.categories.GetCategoryByName(req.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &custom_error.UnknownCategoryError{Name: req.Category}
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	var created *models.Asset
	_, err = s.allocator.Allocate(req.CodePrefix, req.IsDummy, func(code string) error {
		asset, insertErr := s.assets.InsertAsset(req, category.ID, code)
		if insertErr != nil {
			return insertErr
		}
		created = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *BatchService) failureMessage(req models.ValidatedAssetRequest, err error) string {
	switch err.(type) {
	case *custom_error.DuplicateSerialError:
		return fmt.Sprintf("serial number %s is already registered", req.Serial)
	case *custom_error.UnknownCategoryError:
		return fmt.Sprintf("unknown category: %s", req.Category)
	case *custom_error.InvalidPrefixError:
		return fmt.Sprintf("invalid code prefix: %s", req.CodePrefix)
	case *custom_error.RangeExhaustedError:
		return fmt.Sprintf("no code left for prefix %s", req.CodePrefix)
	case *custom_error.UniqueViolationError:
		// Serial raced past the pre-check and hit the unique constraint.
		return fmt.Sprintf("serial number %s is already registered", req.Serial)
	default:
		log.Printf("failed to create asset with serial %s: %v", req.Serial, err)
		return fmt.Sprintf("failed to create asset: %v", err)
	}
}

// ExpandTemplate turns an interactive bulk form into per-item requests with
// generated serials <serial_prefix><NNNN>, numbered from 1.
func (s *BatchService) ExpandTemplate(req models.TemplateRequest) ([]models.ValidatedAssetRequest, error) {
	status := metadata.DefaultStatus
	if req.Status != "" {
		parsed, err := metadata.NewStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	requests := make([]models.ValidatedAssetRequest, 0, req.Quantity)
	for i := 1; i <= req.Quantity; i++ {
		requests = append(requests, models.ValidatedAssetRequest{
			Row:        i,
			Serial:     fmt.Sprintf("%s%04d", req.SerialPrefix, i),
			CodePrefix: req.CodePrefix,
			Category:   req.Category,
			Name:       req.Name,
			Status:     status,
			Location:   req.Location,
			Owner:      req.Owner,
			Department: req.Department,
			Brand:      req.Brand,
			Model:      req.Model,
			IsDummy:    req.IsDummy,
		})
	}

	return requests, nil
}

func (s *BatchService) CreateFromTemplate(performedBy string, req models.TemplateRequest) (*models.BatchResult, error) {
	requests, err := s.ExpandTemplate(req)
	if err != nil {
		return nil, err
	}

	return s.CreateBatch("template", performedBy, requests)
}
