package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Constraint names declared in migrations/001_init.sql
const (
	StudentsPK             = "students_pkey"
	StudentsEmailUnique    = "students_email_key"
	EmployersPK            = "employers_pkey"
	EmployersEmailUnique   = "employers_contact_email_key"
	ApplicationsUsnJobUniq = "applications_usn_job_id_key"
	IdentitiesEmailUnique  = "identities_email_key"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports a reference to a missing parent row
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
