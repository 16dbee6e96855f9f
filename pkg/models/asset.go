package models

import "time"

type Asset struct {
	ID               int        `json:"id" db:"asset_id"`
	Code             string     `json:"code" db:"code"`
	Serial           string     `json:"serial" db:"serial"`
	Name             string     `json:"name,omitempty" db:"name"`
	Category         Category   `json:"category"`
	Status           string     `json:"status" db:"status"`
	Location         string     `json:"location,omitempty" db:"location"`
	Owner            string     `json:"owner,omitempty" db:"owner"`
	Department       string     `json:"department,omitempty" db:"department"`
	Brand            string     `json:"brand,omitempty" db:"brand"`
	Model            string     `json:"model,omitempty" db:"model"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty"`
	WarrantyExpiry   *time.Time `json:"warranty_expiry,omitempty"`
	InstallationDate *time.Time `json:"installation_date,omitempty"`
	IsDummy          bool       `json:"is_dummy" db:"is_dummy"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

type FlatAssetRecord struct {
	ID               int        `db:"asset_id"`
	Code             string     `db:"code"`
	Serial           string     `db:"serial"`
	Name             string     `db:"name"`
	Status           string     `db:"status"`
	Location         string     `db:"location"`
	Owner            string     `db:"owner"`
	Department       string     `db:"department"`
	Brand            string     `db:"brand"`
	Model            string     `db:"model"`
	PurchaseDate     *time.Time `db:"purchase_date"`
	WarrantyExpiry   *time.Time `db:"warranty_expiry"`
	InstallationDate *time.Time `db:"installation_date"`
	IsDummy          bool       `db:"is_dummy"`
	CreatedAt        time.Time  `db:"created_at"`
	CategoryID       int        `db:"category_id"`
	CategoryName     string     `db:"category_name"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	return Asset{
		ID:               fa.ID,
		Code:             fa.Code,
		Serial:           fa.Serial,
		Name:             fa.Name,
		Status:           fa.Status,
		Location:         fa.Location,
		Owner:            fa.Owner,
		Department:       fa.Department,
		Brand:            fa.Brand,
		Model:            fa.Model,
		PurchaseDate:     fa.PurchaseDate,
		WarrantyExpiry:   fa.WarrantyExpiry,
		InstallationDate: fa.InstallationDate,
		IsDummy:          fa.IsDummy,
		CreatedAt:        fa.CreatedAt,
		Category: Category{
			ID:   fa.CategoryID,
			Name: fa.CategoryName,
		},
	}
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
