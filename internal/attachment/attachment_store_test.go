package attachment_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/attachment"
	attachmenterrors "github.com/adamstrass/payroll-dashboard/internal/attachment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) (attachment.Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return attachment.NewStore(db), mock
}

func TestAttachmentStore_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := setupStore(t)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "file_name", "file_size", "content", "created_at"}).
			AddRow("proof-1", "january.pdf", int64(8), []byte("%PDF-1.4"), now)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "proof_blobs" WHERE id = $1`)).
			WithArgs("proof-1", 1).
			WillReturnRows(rows)

		att, err := store.Get(context.Background(), "proof-1")

		assert.NoError(t, err)
		assert.Equal(t, "january.pdf", att.FileName)
		assert.Equal(t, []byte("%PDF-1.4"), att.Content)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "proof_blobs" WHERE id = $1`)).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, attachmenterrors.ErrProofBlobNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttachmentStore_Delete(t *testing.T) {
	t.Run("existing blob", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "proof_blobs" WHERE id = $1`)).
			WithArgs("proof-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, store.Delete(context.Background(), "proof-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent id is not an error", func(t *testing.T) {
		store, mock := setupStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "proof_blobs" WHERE id = $1`)).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, store.Delete(context.Background(), "missing"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
