package payrollerrors

import (
	"net/http"

	"github.com/adamstrass/payroll-dashboard/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrProofNotFound = apperror.New(
		apperror.CodeNotFound,
		"Proof of payment not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeInput = apperror.New(
		apperror.CodeInvalidInput,
		"Name, department and a non-negative salary are required",
		http.StatusBadRequest,
	)
	ErrInvalidProofType = apperror.New(
		apperror.CodeInvalidInput,
		"Only PDF files are accepted as proof of payment",
		http.StatusBadRequest,
	)
)
