package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RawResponse is the decoded gateway reply for a single attempt. StatusCode
// is the gateway's own result code, not an HTTP status.
type RawResponse struct {
	StatusCode    int      `json:"status_code"`
	Message       string   `json:"message"`
	AuthCode      string   `json:"auth_code"`
	AddressCheck  string   `json:"address_numeric_check_result"`
	PostcodeCheck string   `json:"postcode_check_result"`
	CV2Check      string   `json:"cv2_check_result"`
	CardIssuer    string   `json:"card_issuer"`
	CardType      string   `json:"card_type"`
	ErrorMessages []string `json:"error_messages"`
}

// Snapshot returns the response as a flat field map for audit logging.
func (r *RawResponse) Snapshot() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	return map[string]string{
		"Auth Code":                    r.AuthCode,
		"Address Numeric Check Result": r.AddressCheck,
		"Postcode Check Result":        r.PostcodeCheck,
		"CV2 Result":                   r.CV2Check,
		"Card Issuer":                  r.CardIssuer,
		"Card Type":                    r.CardType,
	}
}

// Client posts signed transaction requests to a gateway entry point and
// decodes the reply. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client whose underlying HTTP client enforces the given
// per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Post submits req to the endpoint and returns the decoded response. Any
// error return means no usable response was obtained: transport failure,
// a non-2xx HTTP status, or an undecodable body.
func (c *Client) Post(ctx context.Context, endpoint Endpoint, req TransactionRequest) (*RawResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode transaction request: %w", err)
	}

	creds := req.Credentials()
	signature, err := Sign(creds.HashMethod, creds.SharedKey, body)
	if err != nil {
		return nil, fmt.Errorf("sign transaction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.BaseURL+"/transaction", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Merchant-ID", creds.MerchantID)
	httpReq.Header.Set("X-Merchant-Password", creds.Password)
	httpReq.Header.Set("X-Signature", signature)
	httpReq.Header.Set("X-Hash-Method", string(creds.HashMethod))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned HTTP %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	var raw RawResponse
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &raw, nil
}
