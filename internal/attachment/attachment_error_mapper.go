package attachment

import (
	"errors"

	attachmenterrors "github.com/adamstrass/payroll-dashboard/internal/attachment/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attachmenterrors.ErrProofBlobNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return attachmenterrors.ErrProofBlobConflict
		}
	}

	return attachmenterrors.ErrBlobStoreFailure
}
