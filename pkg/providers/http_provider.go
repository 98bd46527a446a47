package providers

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"
)

// HTTPProvider is the base implementation for HTTP-based provider adapters.
// It provides connection pooling, retry with exponential backoff and jitter,
// timeout handling, and request accounting.
//
// Concrete adapters (OpenAI, Hugging Face, Groq, Gemini) embed this struct
// and implement the Provider interface methods on top of DoJSONRequest.
//
// Retry policy:
//   - retried: HTTP 429 (honoring Retry-After as a floor), 500, 502, 503,
//     504, request timeouts, and connection errors
//   - never retried: 401, 403, 404, TLS certificate errors, other 4xx
type HTTPProvider struct {
	config ProviderConfig

	client *http.Client

	stats   ProviderStats
	statsMu sync.Mutex
}

// NewHTTPProvider creates a new base HTTP provider with connection pooling.
func NewHTTPProvider(config ProviderConfig) *HTTPProvider {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPProvider{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// GetName returns the provider's configured name.
func (p *HTTPProvider) GetName() string {
	return p.config.Name
}

// GetType returns the provider's adapter type.
func (p *HTTPProvider) GetType() string {
	return p.config.Type
}

// GetConfig returns the provider's configuration.
func (p *HTTPProvider) GetConfig() ProviderConfig {
	return p.config
}

// GetStats returns request counters for this provider instance.
func (p *HTTPProvider) GetStats() ProviderStats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *HTTPProvider) recordRequest(success bool) {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.TotalRequests++
	if success {
		p.stats.LastSuccess = time.Now()
	} else {
		p.stats.FailedRequests++
	}
}

func (p *HTTPProvider) recordRetry() {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	p.stats.Retries++
}

// DoRequest performs an HTTP request with retry logic and timeout handling.
// Transient failures are retried with exponential backoff plus jitter; the
// delay before retry n is InitialBackoff*2^(n-1) plus up to one
// InitialBackoff of jitter, so successive delays are strictly increasing.
func (p *HTTPProvider) DoRequest(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := p.backoffDelay(attempt, lastErr)
			p.recordRetry()
			slog.Debug("retrying request",
				"provider", p.config.Name,
				"attempt", attempt,
				"max_retries", p.config.MaxRetries,
				"backoff", delay,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}
		if req.Header.Get("Content-Type") == "" && body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		slog.Debug("sending request to provider",
			"provider", p.config.Name,
			"method", method,
			"url", url,
		)

		resp, err := p.client.Do(req)
		if err != nil {
			p.recordRequest(false)

			// The caller gave up; do not keep retrying on its behalf.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			// TLS failures indicate a broken endpoint or interception,
			// not a transient condition.
			if isTLSError(err) {
				return nil, &ProviderError{
					Provider: p.config.Name,
					Message:  "TLS handshake failed",
					Cause:    err,
				}
			}

			if isTimeout(err) {
				lastErr = &TimeoutError{
					Provider: p.config.Name,
					Timeout:  p.config.Timeout,
				}
			} else {
				lastErr = &ProviderError{
					Provider: p.config.Name,
					Message:  "connection error",
					Cause:    err,
				}
			}

			slog.Warn("request failed, will retry",
				"provider", p.config.Name,
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			p.recordRequest(true)
			return resp, nil
		}

		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		p.recordRequest(false)

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &AuthError{
				Provider:   p.config.Name,
				StatusCode: resp.StatusCode,
				Message:    string(errorBody),
			}

		case http.StatusNotFound:
			return nil, &NotFoundError{
				Provider: p.config.Name,
				URL:      url,
				Message:  string(errorBody),
			}

		case http.StatusTooManyRequests:
			lastErr = &RateLimitError{
				Provider:   p.config.Name,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Message:    string(errorBody),
			}
			slog.Warn("rate limited, will retry",
				"provider", p.config.Name,
				"attempt", attempt+1,
			)

		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = &ProviderError{
				Provider:   p.config.Name,
				StatusCode: resp.StatusCode,
				Message:    string(errorBody),
			}
			slog.Warn("request returned error status, will retry",
				"provider", p.config.Name,
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)

		default:
			// Remaining 4xx: the request itself is wrong, retrying cannot help.
			return nil, &ProviderError{
				Provider:   p.config.Name,
				StatusCode: resp.StatusCode,
				Message:    string(errorBody),
			}
		}
	}

	return nil, lastErr
}

// DoJSONRequest performs a JSON request and decodes the response into respBody.
func (p *HTTPProvider) DoJSONRequest(ctx context.Context, method, url string, reqBody interface{}, respBody interface{}, headers map[string]string) error {
	var bodyBytes []byte
	var err error
	if reqBody != nil {
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := p.DoRequest(ctx, method, url, bodyBytes, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ParseError{
			Provider: p.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if respBody != nil && len(responseBytes) > 0 {
		if err := json.Unmarshal(responseBytes, respBody); err != nil {
			return &ParseError{
				Provider:    p.config.Name,
				RawResponse: string(responseBytes),
				Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
			}
		}
	}

	return nil
}

// Close releases idle connections.
func (p *HTTPProvider) Close() error {
	p.client.CloseIdleConnections()
	slog.Debug("provider closed", "provider", p.config.Name)
	return nil
}

// backoffDelay computes the delay before retry attempt n (1-based).
// A rate-limit Retry-After hint acts as a floor on the computed delay.
func (p *HTTPProvider) backoffDelay(attempt int, lastErr error) time.Duration {
	base := p.config.InitialBackoff
	if base <= 0 {
		base = time.Second
	}

	delay := base << (attempt - 1)
	delay += time.Duration(rand.Int63n(int64(base) + 1))

	var rateErr *RateLimitError
	if errors.As(lastErr, &rateErr) && rateErr.RetryAfter > delay {
		delay = rateErr.RetryAfter
	}
	return delay
}

// isTimeout reports whether err represents a request timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isTLSError reports whether err stems from TLS negotiation or certificate
// verification.
func isTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	return errors.As(err, &recordErr) ||
		errors.As(err, &certErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidCert)
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
