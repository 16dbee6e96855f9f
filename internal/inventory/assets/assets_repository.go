package assets

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/repository"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.id": id})
}

func (r *AssetsRepository) FindAssetByCode(code string) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.code": code})
}

func (r *AssetsRepository) GetAssetList() (*[]models.Asset, error) {
	query := r.getAssetQuery().Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	err := query.Executor().ScanStructs(&flatAssets)

	if err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %s", err.Error())
	}

	var assets []models.Asset
	for _, flatAsset := range flatAssets {
		asset := flatAsset.TransformToAsset()
		assets = append(assets, asset)
	}

	return &assets, nil
}

func (r *AssetsRepository) GetAssetsBy(conditions repository.QueryBuilder) (*[]models.Asset, error) {
	aliases := map[string]string{
		"status":        "a.status",
		"is_dummy":      "a.is_dummy",
		"department":    "a.department",
		"location":      "a.location",
		"category_name": "c.name",
	}

	query := r.getAssetQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	err := query.Executor().ScanStructs(&flatAssets)

	if err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %s", err.Error())
	}

	var assets []models.Asset
	for _, flatAsset := range flatAssets {
		asset := flatAsset.TransformToAsset()
		assets = append(assets, asset)
	}

	return &assets, nil
}

// MaxCodeSuffix returns the highest numeric code suffix persisted for a
// prefix within [lo, hi], zero when no code of that prefix exists yet.
func (r *AssetsRepository) MaxCodeSuffix(prefix string, lo, hi int) (int, error) {
	var highest int

	// Prefix is normalized upstream to uppercase letters and digits, so it
	// is safe to splice into the pattern.
	suffixExpr := fmt.Sprintf(`CAST(SUBSTRING(code FROM '^%s-(\d+)$') AS INTEGER)`, prefix)

	query := r.repository.GoquDBWrapper.Select(
		goqu.L("COALESCE(MAX(" + suffixExpr + "), 0)"),
	).
		From("assets").
		Where(goqu.L("code ~ ?", fmt.Sprintf(`^%s-\d+$`, prefix))).
		Where(goqu.L(suffixExpr+" BETWEEN ? AND ?", lo, hi))

	_, err := query.Executor().ScanVal(&highest)
	if err != nil {
		return 0, fmt.Errorf("failed to read highest code suffix: %w", err)
	}

	return highest, nil
}

func (r *AssetsRepository) ExistsBySerial(serial string) (bool, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.L("LOWER(serial) = LOWER(?)", serial))

	_, err := query.Executor().ScanVal(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check serial number: %w", err)
	}

	return count > 0, nil
}

// InsertAsset persists one asset under the already allocated code. A unique
// violation on the code column becomes a CodeConflictError so the allocator
// can retry; a violation on the serial column is a plain row failure.
func (r *AssetsRepository) InsertAsset(req models.ValidatedAssetRequest, categoryID int, code string) (*models.Asset, error) {
	var assetID int

	record := goqu.Record{
		"code":        code,
		"serial":      req.Serial,
		"name":        req.Name,
		"category_id": categoryID,
		"status":      string(req.Status),
		"location":    req.Location,
		"owner":       req.Owner,
		"department":  req.Department,
		"brand":       req.Brand,
		"model":       req.Model,
		"is_dummy":    req.IsDummy,
	}

	if req.PurchaseDate != nil {
		record["purchase_date"] = *req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		record["warranty_expiry"] = *req.WarrantyExpiry
	}
	if req.InstallationDate != nil {
		record["installation_date"] = *req.InstallationDate
	}

	query := r.repository.GoquDBWrapper.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "code") {
				return nil, &custom_error.CodeConflictError{Code: code}
			}
			return nil, custom_error.WrapDBError("Duplicate serial number for asset", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert asset record: %w", err)
	}

	asset, err := r.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (r *AssetsRepository) fetchFlatAssetByCondition(condition goqu.Expression) (*models.Asset, error) {
	query := r.getAssetQuery().Where(condition)

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)

	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %s", err.Error())
	}
	if !found {
		return nil, sql.ErrNoRows
	}
	asset := flatAsset.TransformToAsset()

	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	query := r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		"a.code",
		"a.serial",
		"a.name",
		"a.status",
		"a.location",
		"a.owner",
		"a.department",
		"a.brand",
		"a.model",
		goqu.I("a.purchase_date").As("purchase_date"),
		goqu.I("a.warranty_expiry").As("warranty_expiry"),
		goqu.I("a.installation_date").As("installation_date"),
		goqu.I("a.is_dummy").As("is_dummy"),
		goqu.I("a.created_at").As("created_at"),
		goqu.I("c.id").As("category_id"),
		goqu.I("c.name").As("category_name"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("categories").As("c"),
			goqu.On(goqu.Ex{"a.category_id": goqu.I("c.id")}),
		)
	return query
}

func (r *AssetsRepository) CountAssetsInCategory(categoryID int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.Ex{"category_id": categoryID})

	_, err := query.Executor().ScanVal(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assets in category: %w", err)
	}

	return count, nil
}
