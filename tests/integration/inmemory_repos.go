package integration

import (
	"context"
	"fmt"
	"sync"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"
	"axiom-gateway/pkg/x402"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Service Registry ---

type inMemoryServiceRepo struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*domain.ServiceListing
}

func newInMemoryServiceRepo() *inMemoryServiceRepo {
	return &inMemoryServiceRepo{services: make(map[uuid.UUID]*domain.ServiceListing)}
}

func (r *inMemoryServiceRepo) add(s *domain.ServiceListing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *inMemoryServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *inMemoryServiceRepo) IncrementCounters(ctx context.Context, id uuid.UUID, calls, successes int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return fmt.Errorf("service not found")
	}
	s.TotalCalls += calls
	s.SuccessCalls += successes
	return nil
}

func (r *inMemoryServiceRepo) counters(id uuid.UUID) (total, success int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.services[id]
	return s.TotalCalls, s.SuccessCalls
}

// --- In-Memory Proof Registry ---

type inMemoryProofRepo struct {
	mu     sync.RWMutex
	proofs map[string]*domain.PaymentProof
}

func newInMemoryProofRepo() *inMemoryProofRepo {
	return &inMemoryProofRepo{proofs: make(map[string]*domain.PaymentProof)}
}

func (r *inMemoryProofRepo) Exists(ctx context.Context, txHash string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.proofs[txHash]
	return ok, nil
}

func (r *inMemoryProofRepo) Put(ctx context.Context, tx pgx.Tx, proof *domain.PaymentProof) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.proofs[proof.TxHash]; ok {
		return ports.ErrProofExists
	}
	r.proofs[proof.TxHash] = proof
	return nil
}

func (r *inMemoryProofRepo) Delete(ctx context.Context, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.proofs, txHash)
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction // keyed by tx hash
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.TxHash] = t
	return nil
}

func (r *inMemoryTransactionRepo) GetByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[txHash]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *inMemoryTransactionRepo) UpdateByTxHash(ctx context.Context, txHash string, update ports.TransactionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[txHash]
	if !ok {
		return fmt.Errorf("transaction not found")
	}
	t.Status = update.Status
	t.PayoutTxHash = update.PayoutTxHash
	t.ResponseCode = update.ResponseCode
	return nil
}

// --- In-Memory Call Log ---

type inMemoryCallLogRepo struct {
	mu      sync.RWMutex
	entries []domain.CallLogEntry
}

func newInMemoryCallLogRepo() *inMemoryCallLogRepo {
	return &inMemoryCallLogRepo{}
}

func (r *inMemoryCallLogRepo) Append(ctx context.Context, entry *domain.CallLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryCallLogRepo) all() []domain.CallLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.CallLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// --- Fake Chain Client ---

// recordedTransfer captures one escrow broadcast issued by the engine.
type recordedTransfer struct {
	Recipient string
	Amount    decimal.Decimal
	Memo      string
}

// fakeChainClient is a deterministic stand-in for the Stacks client. Verify
// verdicts, facilitator receipts, and broadcast failures are all scriptable.
type fakeChainClient struct {
	mu sync.Mutex

	verifyValid bool
	verifyPayer string
	verifyMsg   string

	settleTxHash string
	settlePayer  string
	settleErr    error

	transferErr error
	transfers   []recordedTransfer
	transferSeq int
}

func newFakeChainClient() *fakeChainClient {
	return &fakeChainClient{verifyValid: true, verifyPayer: "SP_ONCHAIN_PAYER"}
}

func (c *fakeChainClient) VerifyTransfer(ctx context.Context, txHash string, expectedAmount decimal.Decimal, recipient string) (*ports.VerificationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &ports.VerificationResult{
		Valid:   c.verifyValid,
		Payer:   c.verifyPayer,
		Message: c.verifyMsg,
	}, nil
}

func (c *fakeChainClient) SettleViaFacilitator(ctx context.Context, signedTx string, reqs x402.PaymentRequirements) (*ports.SettlementResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settleErr != nil {
		return nil, c.settleErr
	}
	return &ports.SettlementResult{TxHash: c.settleTxHash, Payer: c.settlePayer}, nil
}

func (c *fakeChainClient) TransferFromEscrow(ctx context.Context, recipient string, amount decimal.Decimal, memo string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transferErr != nil {
		return "", c.transferErr
	}
	c.transferSeq++
	c.transfers = append(c.transfers, recordedTransfer{Recipient: recipient, Amount: amount, Memo: memo})
	return fmt.Sprintf("0xescrow%04d", c.transferSeq), nil
}

func (c *fakeChainClient) recordedTransfers() []recordedTransfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]recordedTransfer, len(c.transfers))
	copy(out, c.transfers)
	return out
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
