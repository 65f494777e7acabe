package attachmenterrors

import (
	"net/http"

	"github.com/adamstrass/payroll-dashboard/internal/shared/apperror"
)

var (
	ErrProofBlobNotFound = apperror.New(
		apperror.CodeNotFound,
		"Proof file content not found, the attachment may be out of sync",
		http.StatusNotFound,
	)
	ErrProofBlobConflict = apperror.New(
		apperror.CodeConflict,
		"A proof file with this id already exists",
		http.StatusConflict,
	)
	ErrBlobStoreFailure = apperror.New(
		apperror.CodeStorageFailure,
		"Proof file storage is unavailable",
		http.StatusBadGateway,
	)
)
