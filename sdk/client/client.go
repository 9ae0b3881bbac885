package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config represents the configuration for the ciclo API client
type Config struct {
	// BaseURL is the base URL of the ciclo API
	BaseURL string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
	// Token is the bearer token sent to the admin endpoints
	Token string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the ciclo API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

type sourceRequest struct {
	Source string `json:"source"`
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

// Token is one lexical token
type Token struct {
	Type     string `json:"type"`
	Literal  string `json:"literal"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Position int    `json:"position"`
}

// TokenizeResponse lists the tokens of a source and the invalid ones among them
type TokenizeResponse struct {
	Ok      bool    `json:"ok"`
	Tokens  []Token `json:"tokens"`
	Total   int     `json:"total"`
	Illegal []Token `json:"illegal"`
}

// SyntaxError is one grammar violation reported by the parser
type SyntaxError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// ParseResponse holds the parse outcome. Syntax errors are data, not an error.
type ParseResponse struct {
	Ok     bool          `json:"ok"`
	Valid  bool          `json:"valid"`
	Items  int           `json:"items"`
	Code   string        `json:"code,omitempty"`
	Tree   string        `json:"tree,omitempty"`
	Errors []SyntaxError `json:"errors,omitempty"`
}

// Cycle describes one loop construct
type Cycle struct {
	Keyword    string `json:"keyword"`
	Line       int    `json:"line"`
	Position   int    `json:"position"`
	WellFormed bool   `json:"well_formed"`
}

// Diagnostic is an error or warning about a cycle
type Diagnostic struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

// ValidateResponse holds the cycle analysis report
type ValidateResponse struct {
	Ok          bool         `json:"ok"`
	Report      string       `json:"report"`
	Cycles      []Cycle      `json:"cycles"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	HasErrors   bool         `json:"has_errors"`
}

// Subexpression is a repeated expression hoisted by the optimizer
type Subexpression struct {
	Name        string `json:"name"`
	Expression  string `json:"expression"`
	Occurrences int    `json:"occurrences"`
}

// OptimizeResponse holds the optimized source and its statistics
type OptimizeResponse struct {
	Ok                       bool            `json:"ok"`
	OptimizedCode            string          `json:"optimized_code"`
	Log                      []string        `json:"log"`
	Success                  bool            `json:"success"`
	ErrorMessage             string          `json:"error_message,omitempty"`
	CommentsRemoved          int             `json:"comments_removed"`
	SpacesOptimized          int             `json:"spaces_optimized"`
	SubexpressionsEliminated int             `json:"subexpressions_eliminated"`
	Subexpressions           []Subexpression `json:"subexpressions"`
	OriginalSize             int             `json:"original_size"`
	OptimizedSize            int             `json:"optimized_size"`
	Reduction                float64         `json:"reduction"`
}

// Conversion is the intermediate code of one arithmetic expression
type Conversion struct {
	Expression        string   `json:"expression"`
	Prefix            string   `json:"prefix"`
	Triplets          []string `json:"triplets"`
	Quadruples        []string `json:"quadruples"`
	FinalResult       string   `json:"final_result"`
	TripletsSummary   string   `json:"triplets_summary"`
	QuadruplesSummary string   `json:"quadruples_summary"`
}

// ConvertResponse lists the conversions of every arithmetic expression
type ConvertResponse struct {
	Ok          bool         `json:"ok"`
	Expressions []Conversion `json:"expressions"`
}

// PrefixResponse holds an infix expression in prefix notation
type PrefixResponse struct {
	Ok         bool   `json:"ok"`
	Expression string `json:"expression"`
	Prefix     string `json:"prefix"`
}

// AuditLog is one entry of the analysis audit trail
type AuditLog struct {
	ID           string                 `json:"id"`
	Timestamp    time.Time              `json:"timestamp"`
	Operation    string                 `json:"operation"`
	Success      bool                   `json:"success"`
	SourceBytes  int                    `json:"source_bytes"`
	SourceDigest string                 `json:"source_digest"`
	DurationMS   int64                  `json:"duration_ms"`
	CacheHit     bool                   `json:"cache_hit"`
	Stats        map[string]interface{} `json:"stats"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	RequestID    string                 `json:"request_id"`
	ClientIP     string                 `json:"client_ip"`
	UserAgent    string                 `json:"user_agent"`
	CreatedAt    time.Time              `json:"created_at"`
}

// AuditLogQuery filters the audit trail. Zero values are ignored.
type AuditLogQuery struct {
	Operation string
	Success   *bool
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// AuditLogsResponse is one page of the audit trail
type AuditLogsResponse struct {
	Ok    bool       `json:"ok"`
	Logs  []AuditLog `json:"logs"`
	Total int64      `json:"total"`
}

type auditLogResponse struct {
	Ok  bool      `json:"ok"`
	Log *AuditLog `json:"log"`
}

// Tokenize lists the tokens of source
func (c *Client) Tokenize(ctx context.Context, source string) (*TokenizeResponse, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	var resp TokenizeResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/tokenize", sourceRequest{Source: source}, &resp); err != nil {
		return nil, fmt.Errorf("failed to tokenize source: %w", err)
	}
	return &resp, nil
}

// Parse parses source
func (c *Client) Parse(ctx context.Context, source string) (*ParseResponse, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	var resp ParseResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/parse", sourceRequest{Source: source}, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return &resp, nil
}

// Validate checks the cycles of source
func (c *Client) Validate(ctx context.Context, source string) (*ValidateResponse, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	var resp ValidateResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/validate", sourceRequest{Source: source}, &resp); err != nil {
		return nil, fmt.Errorf("failed to validate source: %w", err)
	}
	return &resp, nil
}

// Optimize optimizes source
func (c *Client) Optimize(ctx context.Context, source string) (*OptimizeResponse, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	var resp OptimizeResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/optimize", sourceRequest{Source: source}, &resp); err != nil {
		return nil, fmt.Errorf("failed to optimize source: %w", err)
	}
	return &resp, nil
}

// Convert converts the arithmetic expressions of source
func (c *Client) Convert(ctx context.Context, source string) (*ConvertResponse, error) {
	if source == "" {
		return nil, errors.New("source is required")
	}

	var resp ConvertResponse
	err := c.post(ctx, c.config.BaseURL+"/api/convert", sourceRequest{Source: source}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "syntax_error" {
			return nil, fmt.Errorf("source has syntax errors: %w", err)
		}
		return nil, fmt.Errorf("failed to convert source: %w", err)
	}
	return &resp, nil
}

// Prefix converts an infix expression to prefix notation
func (c *Client) Prefix(ctx context.Context, expression string) (string, error) {
	if expression == "" {
		return "", errors.New("expression is required")
	}

	var resp PrefixResponse
	if err := c.post(ctx, c.config.BaseURL+"/api/prefix", expressionRequest{Expression: expression}, &resp); err != nil {
		return "", fmt.Errorf("failed to convert expression: %w", err)
	}
	return resp.Prefix, nil
}

// AuditLogs retrieves a page of the audit trail. Requires an admin token.
func (c *Client) AuditLogs(ctx context.Context, query AuditLogQuery) (*AuditLogsResponse, error) {
	params := url.Values{}
	if query.Operation != "" {
		params.Set("operation", query.Operation)
	}
	if query.Success != nil {
		params.Set("success", strconv.FormatBool(*query.Success))
	}
	if !query.StartTime.IsZero() {
		params.Set("start_time", query.StartTime.Format(time.RFC3339))
	}
	if !query.EndTime.IsZero() {
		params.Set("end_time", query.EndTime.Format(time.RFC3339))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}

	endpoint := c.config.BaseURL + "/api/audit"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp AuditLogsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}
	return &resp, nil
}

// AuditLog retrieves one audit entry by ID. Requires an admin token.
func (c *Client) AuditLog(ctx context.Context, id string) (*AuditLog, error) {
	if id == "" {
		return nil, errors.New("id is required")
	}

	var resp auditLogResponse
	if err := c.get(ctx, c.config.BaseURL+"/api/audit/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}
	return resp.Log, nil
}

// PurgeAuditLogs deletes audit entries older than olderThan and returns how
// many were removed. Requires an admin token.
func (c *Client) PurgeAuditLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be positive")
	}

	endpoint := c.config.BaseURL + "/api/audit?older_than=" + url.QueryEscape(olderThan.String())

	var resp struct {
		Ok      bool  `json:"ok"`
		Removed int64 `json:"removed"`
	}
	if err := c.delete(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("failed to purge audit logs: %w", err)
	}
	return resp.Removed, nil
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int      `json:"-"`
	Code       string   `json:"error_code,omitempty"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	// Marshal request to JSON
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.do(ctx, http.MethodPost, endpoint, reqBody, resp)
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, resp)
}

// delete performs a DELETE request to the specified endpoint
func (c *Client) delete(ctx context.Context, endpoint string, resp interface{}) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, resp)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Try to decode error response
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			// If we can't decode the error, create a generic one
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
