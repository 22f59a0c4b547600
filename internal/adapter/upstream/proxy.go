// Package upstream forwards caller payloads to the registered provider
// endpoints. It implements ports.UpstreamProxy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"axiom-gateway/internal/core/domain"
	"axiom-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// Proxy delivers one request to an upstream endpoint per call. It never
// retries: a failed delivery triggers a refund upstream of here, and a blind
// retry could double-charge the provider's own backend.
type Proxy struct {
	http *http.Client
	log  zerolog.Logger
}

// NewProxy creates an upstream proxy with a per-delivery timeout.
func NewProxy(timeout time.Duration, log zerolog.Logger) *Proxy {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Proxy{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Forward sends the payload to the upstream endpoint and classifies the
// result. Transport failures report a synthetic 502 so callers can treat
// every failure through the status code.
func (p *Proxy) Forward(ctx context.Context, req ports.UpstreamRequest) ports.UpstreamResult {
	start := time.Now()

	httpReq, err := p.buildRequest(ctx, req)
	if err != nil {
		return transportFailure(start, fmt.Sprintf("build upstream request: %v", err))
	}

	if req.AuthHeader != nil && *req.AuthHeader != "" {
		httpReq.Header.Set("Authorization", *req.AuthHeader)
	}
	for k, v := range req.Payload.ExtraHeaders {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.http.Do(httpReq)
	if err != nil {
		p.log.Warn().Err(err).Str("url", req.URL).Msg("upstream transport failure")
		return transportFailure(start, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(start, fmt.Sprintf("read upstream body: %v", err))
	}

	res := ports.UpstreamResult{
		StatusCode: resp.StatusCode,
		Body:       decodeBody(raw),
		LatencyMs:  time.Since(start).Milliseconds(),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		res.Failed = true
		res.ErrMessage = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
	}
	return res
}

// The file check runs before the method check: a listing that expects file
// input gets multipart whenever a file is present, regardless of method.
func (p *Proxy) buildRequest(ctx context.Context, req ports.UpstreamRequest) (*http.Request, error) {
	if req.Payload.HasFile() && expectsFile(req.InputType) {
		return p.buildMultipart(ctx, req)
	}
	if req.Method == http.MethodGet {
		return p.buildGet(ctx, req)
	}
	return p.buildJSON(ctx, req)
}

// buildGet flattens the scalar payload fields into query parameters.
func (p *Proxy) buildGet(ctx context.Context, req ports.UpstreamRequest) (*http.Request, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	q := u.Query()
	for k, v := range req.Payload.Fields {
		q.Set(k, fmt.Sprintf("%v", v))
	}
	u.RawQuery = q.Encode()
	return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
}

func (p *Proxy) buildJSON(ctx context.Context, req ports.UpstreamRequest) (*http.Request, error) {
	fields := req.Payload.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// buildMultipart writes the uploaded file plus the scalar fields as form
// parts, the shape document- and form-processing upstreams expect.
func (p *Proxy) buildMultipart(ctx context.Context, req ports.UpstreamRequest) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", req.Payload.File.Filename)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(req.Payload.File.Data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	for k, v := range req.Payload.Fields {
		if err := mw.WriteField(k, fmt.Sprintf("%v", v)); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	return httpReq, nil
}

func expectsFile(t domain.InputType) bool {
	return t == domain.InputTypePDF || t == domain.InputTypeForm
}

// decodeBody prefers structured JSON; anything else passes through as text.
func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

func transportFailure(start time.Time, msg string) ports.UpstreamResult {
	return ports.UpstreamResult{
		StatusCode: http.StatusBadGateway,
		Failed:     true,
		Transport:  true,
		ErrMessage: msg,
		LatencyMs:  time.Since(start).Milliseconds(),
	}
}
