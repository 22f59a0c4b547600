package postgres

import (
	"context"
	"testing"
	"time"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction() *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Transaction{
		ID:              uuid.New(),
		ServiceID:       uuid.New(),
		ServiceName:     "PDF Summarizer",
		PayerWallet:     "SP3CALLER000000000000000000000000000000000",
		ProviderWallet:  "SP1PROVIDER000000000000000000000000000000",
		AmountPaid:      decimal.RequireFromString("2.5"),
		PlatformFee:     decimal.RequireFromString("0.25"),
		ProviderEarning: decimal.RequireFromString("2.25"),
		TxHash:          "0xabc123",
		PayoutTxHash:    nil,
		Status:          domain.TransactionStatusEscrowed,
		ResponseCode:    0,
		CreatedAt:       now,
		SettledAt:       nil,
	}
}

func transactionColumnNames() []string {
	return []string{"id", "service_id", "service_name", "payer_wallet", "provider_wallet",
		"amount_paid", "platform_fee", "provider_earning", "tx_hash", "payout_tx_hash",
		"status", "response_code", "created_at", "settled_at"}
}

func transactionRow(txn *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(transactionColumnNames()).AddRow(
		txn.ID, txn.ServiceID, txn.ServiceName, txn.PayerWallet, txn.ProviderWallet,
		txn.AmountPaid, txn.PlatformFee, txn.ProviderEarning, txn.TxHash, txn.PayoutTxHash,
		txn.Status, txn.ResponseCode, txn.CreatedAt, txn.SettledAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			txn.ID, txn.ServiceID, txn.ServiceName, txn.PayerWallet, txn.ProviderWallet,
			txn.AmountPaid, txn.PlatformFee, txn.ProviderEarning, txn.TxHash, txn.PayoutTxHash,
			txn.Status, txn.ResponseCode, txn.CreatedAt, txn.SettledAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByTxHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE tx_hash").
		WithArgs(txn.TxHash).
		WillReturnRows(transactionRow(txn))

	result, err := repo.GetByTxHash(context.Background(), txn.TxHash)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.True(t, txn.AmountPaid.Equal(result.AmountPaid))
	assert.Equal(t, domain.TransactionStatusEscrowed, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByTxHash_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE tx_hash").
		WithArgs("0xmissing").
		WillReturnRows(pgxmock.NewRows(transactionColumnNames()))

	result, err := repo.GetByTxHash(context.Background(), "0xmissing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateByTxHash(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	payout := "0xpayout1"

	mock.ExpectExec("UPDATE transactions").
		WithArgs(domain.TransactionStatusSettled, &payout, 200, pgxmock.AnyArg(), "0xabc123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateByTxHash(context.Background(), "0xabc123", ports.TransactionUpdate{
		Status:       domain.TransactionStatusSettled,
		PayoutTxHash: &payout,
		ResponseCode: 200,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateByTxHash_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectExec("UPDATE transactions").
		WithArgs(domain.TransactionStatusRefunded, (*string)(nil), 502, pgxmock.AnyArg(), "0xmissing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateByTxHash(context.Background(), "0xmissing", ports.TransactionUpdate{
		Status:       domain.TransactionStatusRefunded,
		ResponseCode: 502,
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
