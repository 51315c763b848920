package delivery

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monpro-diagnostic/internal/common/logger"
)

func TestVaultSink_Deliver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	card := testCard()
	mock.ExpectExec("INSERT INTO battlecards").
		WithArgs(card.LeadID, "europe", "scaler", card.Email, 72,
			sqlmock.AnyArg(), card.GeneratedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sink := NewVaultSink(db, logger.NewTestLogger(t))
	require.NoError(t, sink.Deliver(context.Background(), card))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultSink_InsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO battlecards").
		WillReturnError(errors.New("connection refused"))

	sink := NewVaultSink(db, logger.NewTestLogger(t))
	err = sink.Deliver(context.Background(), testCard())
	assert.ErrorIs(t, err, ErrVaultInsertFailed)
}

func TestVaultSink_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS battlecards").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sink := NewVaultSink(db, logger.NewTestLogger(t))
	require.NoError(t, sink.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
