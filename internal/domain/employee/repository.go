package employee

import "context"

// Repository - interface for the employee directory tables
type Repository interface {
	GetByStaffID(ctx context.Context, staffID int64) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListByManager(ctx context.Context, managerID int64) ([]Employee, error)
	UpdateReportingManager(ctx context.Context, staffID, managerID int64) error
	GetCredentialHash(ctx context.Context, staffID int64) (string, error)
}
