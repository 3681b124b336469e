package repository

import (
	"resume-evaluator/internal/database/postgres"
)

const jobRoleNameConstraint = "job_roles_name_key"

func isNoRows(err error) bool {
	return postgres.IsNoRows(err)
}

func isDuplicateJobRoleName(err error) bool {
	return postgres.IsUniqueViolation(err, jobRoleNameConstraint)
}
