package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	// Test with nil config
	client := NewClient(nil)
	if client.config.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected default BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != http.DefaultClient {
		t.Error("Expected default HTTP client")
	}

	// Test with custom config
	customConfig := &Config{
		BaseURL:    "http://example.com",
		Timeout:    5 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	client = NewClient(customConfig)
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("Expected custom BaseURL, got %s", client.config.BaseURL)
	}
	if client.config.Timeout != 5*time.Second {
		t.Errorf("Expected custom timeout, got %v", client.config.Timeout)
	}
	if client.client != customConfig.HTTPClient {
		t.Error("Expected custom HTTP client")
	}
}

// sourceServer answers POST path with resp after checking the request body
func sourceServer(t *testing.T, path, wantSource string, resp interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != path {
			t.Errorf("Expected %s path, got %s", path, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		got := req["source"]
		if got == "" {
			got = req["expression"]
		}
		if got != wantSource {
			t.Errorf("Expected body %q, got %q", wantSource, got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestTokenize(t *testing.T) {
	server := sourceServer(t, "/api/tokenize", "x = 5", TokenizeResponse{
		Ok: true,
		Tokens: []Token{
			{Type: "IDENTIFIER_VAR", Literal: "x", Line: 1, Column: 1},
			{Type: "OPERATOR", Literal: "=", Line: 1, Column: 3, Position: 2},
			{Type: "INTEGER", Literal: "5", Line: 1, Column: 5, Position: 4},
		},
		Total:   3,
		Illegal: []Token{},
	})
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})
	resp, err := client.Tokenize(context.Background(), "x = 5")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if resp.Total != 3 || len(resp.Tokens) != 3 {
		t.Errorf("Expected 3 tokens, got %d", resp.Total)
	}
	if resp.Tokens[2].Literal != "5" {
		t.Errorf("Expected literal 5, got %s", resp.Tokens[2].Literal)
	}

	if _, err := client.Tokenize(context.Background(), ""); err == nil {
		t.Error("Expected error for empty source")
	}
}

func TestParse(t *testing.T) {
	server := sourceServer(t, "/api/parse", "x = (1", ParseResponse{
		Ok:     true,
		Valid:  false,
		Errors: []SyntaxError{{Message: "expected ')'", Line: 1, Column: 7}},
	})
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})
	resp, err := client.Parse(context.Background(), "x = (1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if resp.Valid {
		t.Error("Expected invalid parse")
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Line != 1 {
		t.Errorf("Unexpected syntax errors: %+v", resp.Errors)
	}
}

func TestValidateAndOptimize(t *testing.T) {
	validateServer := sourceServer(t, "/api/validate", "while x { }", ValidateResponse{
		Ok:          true,
		Cycles:      []Cycle{{Keyword: "while", Line: 1}},
		Diagnostics: []Diagnostic{{Severity: "ERROR", Line: 1, Message: "while condition must be in parentheses"}},
		HasErrors:   true,
	})
	defer validateServer.Close()

	resp, err := NewClient(&Config{BaseURL: validateServer.URL}).Validate(context.Background(), "while x { }")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !resp.HasErrors || resp.Cycles[0].Keyword != "while" {
		t.Errorf("Unexpected validation result: %+v", resp)
	}

	optimizeServer := sourceServer(t, "/api/optimize", "x = a + b\ny = a + b\n", OptimizeResponse{
		Ok:                       true,
		Success:                  true,
		OptimizedCode:            "cse0 = a + b\nx = cse0\ny = cse0\n",
		SubexpressionsEliminated: 1,
	})
	defer optimizeServer.Close()

	opt, err := NewClient(&Config{BaseURL: optimizeServer.URL}).Optimize(context.Background(), "x = a + b\ny = a + b\n")
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if opt.SubexpressionsEliminated != 1 {
		t.Errorf("Expected 1 eliminated subexpression, got %d", opt.SubexpressionsEliminated)
	}
}

func TestConvertAndPrefix(t *testing.T) {
	convertServer := sourceServer(t, "/api/convert", "x = a + b", ConvertResponse{
		Ok: true,
		Expressions: []Conversion{{
			Expression:  "(a + b)",
			Prefix:      "+ab",
			Triplets:    []string{"(+, a, b, t1)"},
			Quadruples:  []string{"(+, a, b, t1)"},
			FinalResult: "t1",
		}},
	})
	defer convertServer.Close()

	conv, err := NewClient(&Config{BaseURL: convertServer.URL}).Convert(context.Background(), "x = a + b")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(conv.Expressions) != 1 || conv.Expressions[0].Prefix != "+ab" {
		t.Errorf("Unexpected conversions: %+v", conv.Expressions)
	}

	prefixServer := sourceServer(t, "/api/prefix", "A^B^C", PrefixResponse{Ok: true, Expression: "A^B^C", Prefix: "^A^BC"})
	defer prefixServer.Close()

	out, err := NewClient(&Config{BaseURL: prefixServer.URL}).Prefix(context.Background(), "A^B^C")
	if err != nil {
		t.Fatalf("Prefix failed: %v", err)
	}
	if out != "^A^BC" {
		t.Errorf("Expected ^A^BC, got %s", out)
	}
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ok":false,"error":"Source has syntax errors","error_code":"syntax_error","details":["1. expected expression after line 1"]}`))
	}))
	defer server.Close()

	_, err := NewClient(&Config{BaseURL: server.URL}).Convert(context.Background(), "x = (")
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", apiErr.StatusCode)
	}
	if apiErr.Code != "syntax_error" {
		t.Errorf("Expected syntax_error code, got %s", apiErr.Code)
	}
	if len(apiErr.Details) != 1 {
		t.Errorf("Expected 1 detail, got %d", len(apiErr.Details))
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(&Config{BaseURL: server.URL}).Tokenize(context.Background(), "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", apiErr.StatusCode)
	}
}

func TestAuditLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"ok":false,"error":"Invalid token"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/audit":
			query := r.URL.Query()
			if query.Get("operation") != "parse" || query.Get("success") != "false" || query.Get("limit") != "10" {
				t.Errorf("Unexpected query: %s", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(AuditLogsResponse{
				Ok:    true,
				Logs:  []AuditLog{{ID: "a1", Operation: "parse"}},
				Total: 1,
			})
		case "/api/audit/a1":
			json.NewEncoder(w).Encode(auditLogResponse{Ok: true, Log: &AuditLog{ID: "a1", Operation: "parse"}})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"ok":false,"error":"Audit log not found","error_code":"not_found"}`))
		}
	}))
	defer server.Close()

	failed := false
	client := NewClient(&Config{BaseURL: server.URL, Token: "admin-token"})

	logs, err := client.AuditLogs(context.Background(), AuditLogQuery{Operation: "parse", Success: &failed, Limit: 10})
	if err != nil {
		t.Fatalf("AuditLogs failed: %v", err)
	}
	if logs.Total != 1 || logs.Logs[0].ID != "a1" {
		t.Errorf("Unexpected audit logs: %+v", logs)
	}

	entry, err := client.AuditLog(context.Background(), "a1")
	if err != nil {
		t.Fatalf("AuditLog failed: %v", err)
	}
	if entry.Operation != "parse" {
		t.Errorf("Expected parse operation, got %s", entry.Operation)
	}

	if _, err := client.AuditLog(context.Background(), "missing"); err == nil {
		t.Error("Expected error for missing entry")
	}

	_, err = NewClient(&Config{BaseURL: server.URL}).AuditLogs(context.Background(), AuditLogQuery{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 APIError, got %v", err)
	}
}

func TestPurgeAuditLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE request, got %s", r.Method)
		}
		if got := r.URL.Query().Get("older_than"); got != "720h0m0s" {
			t.Errorf("Expected older_than=720h0m0s, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"removed":12}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "admin-token"})
	removed, err := client.PurgeAuditLogs(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("PurgeAuditLogs failed: %v", err)
	}
	if removed != 12 {
		t.Errorf("Expected 12 removed, got %d", removed)
	}

	if _, err := client.PurgeAuditLogs(context.Background(), 0); err == nil {
		t.Error("Expected error for zero duration")
	}
}
