package container

import (
	"database/sql"

	auditLogRepo "github.com/Djoppie/Djoppie-Inventory-sub000/internal/auditlog"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/allocator"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/assets"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/batch"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/inventory/importer"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/repository"
	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/users"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/auditlog"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"
)

type Container struct {
	Repository    *repository.Repository
	AuditLog      *auditlog.Auditlog
	LoginHandler  *security.LoginHandler
	AssetHandler  *assets.AssetHandler
	BatchHandler  *batch.BatchHandler
	ImportHandler *importer.ImportHandler
	UserHandler   *users.UsersHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	auditLogRepository := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditLogRepository)

	assetsRepo := assets.NewRepository(repo)
	codeAllocator := allocator.New(assetsRepo)

	assetService := assets.NewAssetService(assetsRepo, repo, codeAllocator, auditLog)
	assetHandler := assets.NewAssetHandler(repo, assetsRepo, assetService, auditLogRepository)

	batchService := batch.NewBatchService(assetsRepo, repo, codeAllocator, auditLog)
	batchHandler := batch.NewBatchHandler(batchService)

	importService := importer.NewImportService(batchService)
	importHandler := importer.NewImportHandler(importService)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)
	loginHandler := security.NewLoginHandler(repo)

	return &Container{
		Repository:    repo,
		AuditLog:      auditLog,
		LoginHandler:  loginHandler,
		AssetHandler:  assetHandler,
		BatchHandler:  batchHandler,
		ImportHandler: importHandler,
		UserHandler:   userHandler,
	}
}
