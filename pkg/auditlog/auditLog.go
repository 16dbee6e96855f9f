package auditlog

import (
	"log"

	auditlogRepo "github.com/Djoppie/Djoppie-Inventory-sub000/internal/auditlog"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
)

type Auditlog struct {
	r *auditlogRepo.AuditLogRepository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(action string, performedBy string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	auditLog.PerformedBy = performedBy

	err := a.r.PersistLog(auditLog, data)

	if err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
		return
	}
}

func NewAuditLog(repository *auditlogRepo.AuditLogRepository) *Auditlog {
	a := Auditlog{r: repository}

	return &a
}
