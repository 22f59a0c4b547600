package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"axiom-gateway/internal/adapter/http/middleware"
	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"
	"axiom-gateway/internal/core/ports/mocks"
	"axiom-gateway/pkg/apperror"
	"axiom-gateway/pkg/x402"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testEscrow = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	testCaller = "SP3CALLER000000000000000000000000000000000"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func testListing() *domain.ServiceListing {
	return &domain.ServiceListing{
		ID:             uuid.New(),
		Name:           "PDF Summarizer",
		UpstreamURL:    "https://api.provider.example/summarize",
		Method:         "POST",
		PricePerReq:    decimal.RequireFromString("2.5"),
		ProviderWallet: "SP1PROVIDER000000000000000000000000000000",
		InputType:      domain.InputTypeJSON,
		Status:         domain.ServiceStatusActive,
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockSettlementService) {
	ctrl := gomock.NewController(t)
	settlement := mocks.NewMockSettlementService(ctrl)
	r := SetupRouter(RouterDeps{
		SettlementSvc:  settlement,
		HealthCheckers: []ports.HealthChecker{stubChecker{name: "postgresql"}, stubChecker{name: "redis"}},
		Logger:         zerolog.Nop(),
	})
	return r, settlement
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestInvoice_OK(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()

	settlement.EXPECT().Invoice(gomock.Any(), listing.ID).Return(&ports.Invoice{
		Service:   listing,
		Recipient: testEscrow,
		Memo:      listing.Memo(),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/gateway/"+listing.ID.String()+"/invoice", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, listing.ID.String(), body["serviceId"])
	assert.Equal(t, "2.5", body["price"])
	assert.Equal(t, "STX", body["currency"])
	assert.Equal(t, testEscrow, body["recipient"])
	assert.Equal(t, listing.Memo(), body["memo"])
}

func TestInvoice_UnknownService(t *testing.T) {
	r, settlement := newTestRouter(t)
	settlement.EXPECT().Invoice(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrServiceNotFound())

	req := httptest.NewRequest(http.MethodGet, "/gateway/"+uuid.NewString()+"/invoice", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "API service not found", body["error"])
}

func TestInvoice_MalformedID(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gateway/not-a-uuid/invoice", nil)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecute_NoPaymentReturns402WithHeader(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()
	challenge := x402.NewPaymentRequired(listing.PricePerReq, testEscrow,
		"/gateway/"+listing.ID.String()+"/execute", "Pay-per-request: "+listing.Name+" (Escrow)")

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
			assert.Equal(t, domain.PaymentNone, req.Payment.Kind)
			assert.Equal(t, "anonymous", req.CallerWallet)
			return &ports.ExecuteResult{
				Outcome:         ports.OutcomeChallenge,
				Service:         listing,
				PaymentRequired: &challenge,
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(2), body["x402Version"])
	assert.Equal(t, "2.5", body["price"])
	assert.Equal(t, "stacks:2147483648", body["network"])
	assert.Equal(t, "/gateway/"+listing.ID.String()+"/invoice", body["invoiceEndpoint"])

	var decoded x402.PaymentRequired
	require.NoError(t, x402.DecodeHeader(w.Header().Get(middleware.HeaderPaymentRequired), &decoded))
	assert.Equal(t, challenge, decoded)
}

func TestExecute_BroadcastProofSuccess(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()
	payout := "0xpayout1"
	result := x402.NewPaymentResult("0xabc123", testCaller)

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
			assert.Equal(t, domain.PaymentBroadcast, req.Payment.Kind)
			assert.Equal(t, "0xabc123", req.Payment.TxHash)
			assert.Equal(t, testCaller, req.CallerWallet)
			assert.Equal(t, "hello", req.Payload.Fields["text"])
			return &ports.ExecuteResult{
				Outcome:         ports.OutcomeSuccess,
				Service:         listing,
				TxHash:          "0xabc123",
				LatencyMs:       42,
				UpstreamStatus:  http.StatusOK,
				Data:            map[string]any{"summary": "ok"},
				PayoutTxHash:    &payout,
				AmountPaid:      decimal.RequireFromString("2.5"),
				PlatformFee:     decimal.RequireFromString("0.25"),
				ProviderEarning: decimal.RequireFromString("2.25"),
				FeePercent:      10.0,
				PaymentResult:   &result,
			}, nil
		})

	reqBody, _ := json.Marshal(map[string]any{
		"paymentProof": "0xabc123",
		"payload":      map[string]any{"text": "hello"},
	})
	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderWalletAddress, testCaller)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "0xabc123", body["tx_hash"])
	assert.Equal(t, "0xpayout1", body["payout_tx_hash"])
	assert.Equal(t, "2.5 STX", body["cost"])
	assert.Equal(t, "0.25 STX (10%)", body["commission"])
	assert.Equal(t, "2.25 STX", body["developer_earning"])
	assert.Equal(t, "42ms", body["latency"])

	var receipt x402.PaymentResult
	require.NoError(t, x402.DecodeHeader(w.Header().Get(middleware.HeaderPaymentResponse), &receipt))
	assert.True(t, receipt.Success)
	assert.Equal(t, "0xabc123", receipt.Transaction)
}

func TestExecute_SuccessCollapsesUpstreamStatusTo200(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()
	result := x402.NewPaymentResult("0xabc123", testCaller)

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(&ports.ExecuteResult{
		Outcome:         ports.OutcomeSuccess,
		Service:         listing,
		TxHash:          "0xabc123",
		UpstreamStatus:  http.StatusCreated,
		Data:            map[string]any{"id": "new"},
		AmountPaid:      decimal.RequireFromString("2.5"),
		PlatformFee:     decimal.RequireFromString("0.25"),
		ProviderEarning: decimal.RequireFromString("2.25"),
		FeePercent:      10.0,
		PaymentResult:   &result,
	}, nil)

	reqBody, _ := json.Marshal(map[string]any{"paymentProof": "0xabc123"})
	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)

	// A 201 from the upstream still renders as 200: the body is the gateway's
	// receipt envelope, not the upstream resource.
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "success", body["status"])
}

func TestExecute_RefundedReturns502(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(&ports.ExecuteResult{
		Outcome:   ports.OutcomeRefunded,
		Service:   listing,
		TxHash:    "0xabc123",
		LatencyMs: 15,
		Refund: &ports.RefundReceipt{
			TxHash:    "0xabc123",
			Amount:    decimal.RequireFromString("2.5"),
			Recipient: testCaller,
			Reason:    "Upstream service unavailable",
		},
	}, nil)

	reqBody, _ := json.Marshal(map[string]any{"paymentProof": "0xabc123"})
	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "refunded", body["status"])

	refund := body["refund"].(map[string]any)
	assert.Equal(t, "0xabc123", refund["txHash"])
	assert.Equal(t, "pending", refund["refundTxHash"], "failed refund broadcast reports pending")
	assert.Equal(t, "Upstream service unavailable", refund["reason"])
}

func TestExecute_PreSignedHeader(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()
	challenge := x402.NewPaymentRequired(listing.PricePerReq, testEscrow, "/x", "d")

	encoded, err := x402.EncodeHeader(x402.PaymentPayload{
		X402Version: x402.Version,
		Payload:     map[string]any{"transaction": "00deadbeef"},
	})
	require.NoError(t, err)

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
			assert.Equal(t, domain.PaymentPreSigned, req.Payment.Kind)
			assert.Equal(t, "00deadbeef", req.Payment.SignedTransaction)
			return &ports.ExecuteResult{Outcome: ports.OutcomeChallenge, Service: listing, PaymentRequired: &challenge}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", nil)
	req.Header.Set(middleware.HeaderPaymentSignature, encoded)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestExecute_MalformedPaymentHeader(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/gateway/"+uuid.NewString()+"/execute", nil)
	req.Header.Set(middleware.HeaderPaymentSignature, "!!!not-base64!!!")
	w := doRequest(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Invalid payment-signature header", body["error"])
}

func TestExecute_MultipartFileUpload(t *testing.T) {
	r, settlement := newTestRouter(t)
	listing := testListing()
	listing.InputType = domain.InputTypePDF
	challenge := x402.NewPaymentRequired(listing.PricePerReq, testEscrow, "/x", "d")

	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.ExecuteRequest) (*ports.ExecuteResult, error) {
			assert.Equal(t, "0xabc123", req.Payment.TxHash)
			require.NotNil(t, req.Payload.File)
			assert.Equal(t, "doc.pdf", req.Payload.File.Filename)
			assert.Equal(t, []byte("%PDF-1.4 fake"), req.Payload.File.Data)
			assert.Equal(t, "report", req.Payload.Fields["kind"])
			assert.Equal(t, map[string]string{"X-Lang": "en"}, req.Payload.ExtraHeaders)
			return &ports.ExecuteResult{Outcome: ports.OutcomeChallenge, Service: listing, PaymentRequired: &challenge}, nil
		})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "doc.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("paymentProof", "0xabc123"))
	require.NoError(t, mw.WriteField("kind", "report"))
	require.NoError(t, mw.WriteField("headers", `{"X-Lang":"en"}`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/gateway/"+listing.ID.String()+"/execute", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(r, req)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestExecute_ReplayRejected(t *testing.T) {
	r, settlement := newTestRouter(t)
	settlement.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrProofAlreadyUsed())

	reqBody, _ := json.Marshal(map[string]any{"paymentProof": "0xused"})
	req := httptest.NewRequest(http.MethodPost, "/gateway/"+uuid.NewString()+"/execute", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(r, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "Payment proof already used", body["error"])
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "healthy", body["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := SetupRouter(RouterDeps{
		SettlementSvc: mocks.NewMockSettlementService(ctrl),
		HealthCheckers: []ports.HealthChecker{
			stubChecker{name: "postgresql"},
			stubChecker{name: "redis", err: errors.New("connection refused")},
		},
		Logger: zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "degraded", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/gateway/"+uuid.NewString()+"/execute", nil)
	w := doRequest(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.HeaderPaymentRequired)
}
