package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentProofRedemption races many requests redeeming the same
// transaction hash. The Redis NX mark plus the proof-store uniqueness check
// must let exactly one through; everyone else gets a replay rejection.
func TestConcurrentProofRedemption(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer upstreamSrv.Close()

	svc := app.addService(upstreamSrv.URL)

	concurrency := 20
	const sharedProof = "0xproof_contested"

	var wg sync.WaitGroup
	var successCount atomic.Int64
	var replayCount atomic.Int64
	var otherCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body := fmt.Sprintf(`{"paymentProof":%q}`, sharedProof)
			resp, err := http.Post(executeURL(app, svc), "application/json", strings.NewReader(body))
			if err != nil {
				otherCount.Add(1)
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusForbidden:
				replayCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}()
	}

	wg.Wait()

	t.Logf("Contested redemption: %d succeeded, %d rejected as replay, %d other",
		successCount.Load(), replayCount.Load(), otherCount.Load())

	assert.Equal(t, int64(1), successCount.Load(), "exactly one redemption must win")
	assert.Equal(t, int64(concurrency-1), replayCount.Load(), "all losers must see a replay rejection")
	assert.Equal(t, int64(0), otherCount.Load())

	// One transaction record, one live proof, one provider payout.
	txn, err := app.txns.GetByTxHash(context.Background(), sharedProof)
	require.NoError(t, err)
	require.NotNil(t, txn)

	exists, err := app.proofs.Exists(context.Background(), sharedProof)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Len(t, app.chain.recordedTransfers(), 1)
}

// TestConcurrentDistinctProofs verifies independent payments do not contend.
func TestConcurrentDistinctProofs(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	upstreamSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer upstreamSrv.Close()

	svc := app.addService(upstreamSrv.URL)

	concurrency := 10
	var wg sync.WaitGroup
	var successCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"paymentProof":"0xproof_distinct_%d"}`, idx)
			resp, err := http.Post(executeURL(app, svc), "application/json", strings.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int64(concurrency), successCount.Load(), "independent proofs must all redeem")

	total, success := app.services.counters(svc.ID)
	assert.Equal(t, int64(concurrency), total)
	assert.Equal(t, int64(concurrency), success)
}
