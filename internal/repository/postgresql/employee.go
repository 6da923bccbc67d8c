package postgresql

import (
	"context"
	"errors"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	staff_id, staff_fname, staff_lname, dept, position, country, email, reporting_manager, role_id`

func (r *employeeRepositoryImpl) GetByStaffID(ctx context.Context, staffID int64) (employee.Employee, error) {
	q := r.db.Querier(ctx)

	var emp employee.Employee
	err := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE staff_id = $1`, staffID).Scan(
		&emp.StaffID, &emp.FirstName, &emp.LastName, &emp.Dept, &emp.Position,
		&emp.Country, &emp.Email, &emp.ReportingManager, &emp.RoleCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return r.listEmployees(ctx, ``)
}

func (r *employeeRepositoryImpl) ListByManager(ctx context.Context, managerID int64) ([]employee.Employee, error) {
	return r.listEmployees(ctx, `WHERE reporting_manager = $1 AND staff_id <> $1`, managerID)
}

func (r *employeeRepositoryImpl) UpdateReportingManager(ctx context.Context, staffID, managerID int64) error {
	q := r.db.Querier(ctx)

	tag, err := q.Exec(ctx, `UPDATE employees SET reporting_manager = $2 WHERE staff_id = $1`, staffID, managerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) GetCredentialHash(ctx context.Context, staffID int64) (string, error) {
	q := r.db.Querier(ctx)

	var hash string
	err := q.QueryRow(ctx, `SELECT password_hash FROM credentials WHERE staff_id = $1`, staffID).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", employee.ErrCredentialNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *employeeRepositoryImpl) listEmployees(ctx context.Context, where string, args ...interface{}) ([]employee.Employee, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees `+where+` ORDER BY staff_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.StaffID, &emp.FirstName, &emp.LastName, &emp.Dept, &emp.Position,
			&emp.Country, &emp.Email, &emp.ReportingManager, &emp.RoleCode,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
