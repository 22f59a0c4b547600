package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"axiom-gateway/internal/adapter/http/dto"
	"axiom-gateway/internal/adapter/http/middleware"
	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"
	"axiom-gateway/pkg/apperror"
	"axiom-gateway/pkg/response"
	"axiom-gateway/pkg/x402"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GatewayHandler exposes the pay-per-request execution endpoints.
type GatewayHandler struct {
	settlement ports.SettlementService
	log        zerolog.Logger
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(settlement ports.SettlementService, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{settlement: settlement, log: log}
}

// Invoice handles GET /gateway/:serviceId/invoice.
func (h *GatewayHandler) Invoice(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		response.Error(c, apperror.Validation("serviceId must be a valid UUID"))
		return
	}

	inv, err := h.settlement.Invoice(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInvoiceResponse(inv))
}

// Execute handles POST /gateway/:serviceId/execute.
func (h *GatewayHandler) Execute(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		response.Error(c, apperror.Validation("serviceId must be a valid UUID"))
		return
	}

	caller := c.GetHeader(middleware.HeaderWalletAddress)
	if caller == "" {
		caller = "anonymous"
	}

	proofHash, payload, err := h.bindBody(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	payment, err := resolveArtifact(c.GetHeader(middleware.HeaderPaymentSignature), proofHash)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.settlement.Execute(c.Request.Context(), ports.ExecuteRequest{
		ServiceID:    serviceID,
		CallerWallet: caller,
		Payment:      payment,
		Payload:      payload,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch res.Outcome {
	case ports.OutcomeChallenge:
		h.renderChallenge(c, res)
	case ports.OutcomeRefunded:
		c.JSON(http.StatusBadGateway, dto.NewRefundResponse(res))
	default:
		h.renderSuccess(c, res)
	}
}

// resolveArtifact decides the payment path once: the pre-signed header wins
// over a body proof, absence of both means challenge.
func resolveArtifact(signatureHeader, proofHash string) (domain.PaymentArtifact, error) {
	if signatureHeader != "" {
		var payload x402.PaymentPayload
		if err := x402.DecodeHeader(signatureHeader, &payload); err != nil {
			return domain.PaymentArtifact{}, apperror.ErrInvalidPaymentHeader()
		}
		signedTx, err := payload.SignedTransaction()
		if err != nil {
			return domain.PaymentArtifact{}, apperror.ErrInvalidPaymentHeader()
		}
		return domain.PreSignedPayment(signedTx), nil
	}
	if proofHash != "" {
		return domain.BroadcastPayment(proofHash), nil
	}
	return domain.NoPayment(), nil
}

// bindBody extracts the broadcast proof and the upstream payload from either
// a JSON or a multipart body. An empty or absent body is fine; the engine
// will challenge.
func (h *GatewayHandler) bindBody(c *gin.Context) (string, domain.UpstreamPayload, error) {
	if isMultipart(c) {
		return h.bindMultipart(c)
	}
	return h.bindJSON(c)
}

func isMultipart(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "multipart/form-data"
}

func (h *GatewayHandler) bindJSON(c *gin.Context) (string, domain.UpstreamPayload, error) {
	var body dto.ExecuteBody
	if c.Request.Body != nil {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", domain.UpstreamPayload{}, apperror.Validation("cannot read request body")
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return "", domain.UpstreamPayload{}, apperror.Validation("request body must be valid JSON")
			}
		}
	}
	return body.PaymentProof, domain.UpstreamPayload{
		Fields:       body.Payload,
		ExtraHeaders: body.Headers,
	}, nil
}

// bindMultipart reads a file upload plus scalar form fields. Reserved fields
// (paymentProof, headers, file) route the protocol; everything else is
// upstream payload.
func (h *GatewayHandler) bindMultipart(c *gin.Context) (string, domain.UpstreamPayload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", domain.UpstreamPayload{}, apperror.Validation("invalid multipart form")
	}

	payload := domain.UpstreamPayload{Fields: map[string]any{}}
	proofHash := ""

	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "paymentProof":
			proofHash = values[0]
		case "headers":
			var headers map[string]string
			if err := json.Unmarshal([]byte(values[0]), &headers); err != nil {
				return "", domain.UpstreamPayload{}, apperror.Validation("headers field must be a JSON object of strings")
			}
			payload.ExtraHeaders = headers
		default:
			payload.Fields[key] = values[0]
		}
	}

	if files := form.File["file"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return "", domain.UpstreamPayload{}, apperror.Validation("cannot open uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", domain.UpstreamPayload{}, apperror.Validation("cannot read uploaded file")
		}
		payload.File = &domain.RawFile{
			Data:        data,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}

	return proofHash, payload, nil
}

func (h *GatewayHandler) renderChallenge(c *gin.Context, res *ports.ExecuteResult) {
	encoded, err := x402.EncodeHeader(res.PaymentRequired)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode payment-required header")
		response.Error(c, apperror.InternalError(err))
		return
	}
	c.Header(middleware.HeaderPaymentRequired, encoded)
	c.JSON(http.StatusPaymentRequired, dto.NewChallengeResponse(res))
}

// renderSuccess replies 200 for every delivered call. The upstream's own
// status (anything in [200,400)) only decides success vs refund; the reply
// wraps the upstream body in a receipt envelope, so echoing a 201 or 302
// around it would mislead clients.
func (h *GatewayHandler) renderSuccess(c *gin.Context, res *ports.ExecuteResult) {
	if res.PaymentResult != nil {
		encoded, err := x402.EncodeHeader(res.PaymentResult)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to encode payment-response header")
		} else {
			c.Header(middleware.HeaderPaymentResponse, encoded)
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}
