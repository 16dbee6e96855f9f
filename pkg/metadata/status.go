package metadata

import "fmt"

type Status string

const (
	StatusNew            Status = "new"
	StatusInStock        Status = "in_stock"
	StatusInUse          Status = "in_use"
	StatusUnderRepair    Status = "under_repair"
	StatusDefective      Status = "defective"
	StatusDecommissioned Status = "decommissioned"
)

// DefaultStatus is applied when a request or import row carries no status.
const DefaultStatus = StatusInStock

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusNew, StatusInStock, StatusInUse, StatusUnderRepair, StatusDefective, StatusDecommissioned:
		return true
	default:
		return false
	}
}
