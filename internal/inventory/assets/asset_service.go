package assets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/allocator"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/repository"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/auditlog"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
)

type AssetService struct {
	assetsRepo *AssetsRepository
	repo       *repository.Repository
	allocator  *allocator.Allocator
	auditLog   *auditlog.Auditlog
}

func NewAssetService(assetsRepo *AssetsRepository, repo *repository.Repository, alloc *allocator.Allocator, auditLog *auditlog.Auditlog) *AssetService {
	return &AssetService{
		assetsRepo: assetsRepo,
		repo:       repo,
		allocator:  alloc,
		auditLog:   auditLog,
	}
}

// CreateAsset registers one asset: serial check, category resolution, code
// allocation and insert in a single claim.
func (s *AssetService) CreateAsset(performedBy string, req models.AssetRequest) (*models.Asset, error) {
	status := metadata.DefaultStatus
	if req.Status != "" {
		parsed, err := metadata.NewStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	exists, err := s.assetsRepo.ExistsBySerial(req.Serial)
	if err != nil {
		return nil, fmt.Errorf("failed to check serial number: %w", err)
	}
	if exists {
		return nil, &custom_error.DuplicateSerialError{Serial: req.Serial}
	}

	category, err := s.repo.GetCategoryByName(req.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &custom_error.UnknownCategoryError{Name: req.Category}
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	validated := models.ValidatedAssetRequest{
		Serial:     req.Serial,
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
	}

	var created *models.Asset
	_, err = s.allocator.Allocate(req.CodePrefix, req.IsDummy, func(code string) error {
		asset, insertErr := s.assetsRepo.InsertAsset(validated, category.ID, code)
		if insertErr != nil {
			return insertErr
		}
		created = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log(
		"create",
		performedBy,
		map[string]interface{}{
			"code":   created.Code,
			"serial": created.Serial,
			"msg":    "Asset created successfully",
		},
		created,
	)

	return created, nil
}
