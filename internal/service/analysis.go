package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/dangerclosesec/ciclo"
	"github.com/dangerclosesec/ciclo/internal/audit"
	"github.com/dangerclosesec/ciclo/internal/domain"
	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/dangerclosesec/ciclo/language/ast"
	"github.com/dangerclosesec/ciclo/language/lexer"
	"github.com/dangerclosesec/ciclo/language/parser"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// AnalysisService runs the front end operations for API callers. Results
// are cached by operation and source digest and every run is audited.
type AnalysisService struct {
	frontend     *ciclo.Frontend
	cacheService *CacheService
	auditLogger  audit.Logger
	validate     *validator.Validate
}

func NewAnalysisService(
	frontend *ciclo.Frontend,
	cacheService *CacheService,
	auditLogger audit.Logger,
) *AnalysisService {
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &AnalysisService{
		frontend:     frontend,
		cacheService: cacheService,
		auditLogger:  auditLogger,
		validate:     validator.New(),
	}
}

type SourceInput struct {
	Source string `json:"source" validate:"required"`
}

type ExpressionInput struct {
	Expression string `json:"expression" validate:"required"`
}

type TokenView struct {
	Type     string `json:"type"`
	Literal  string `json:"literal"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Position int    `json:"position"`
}

type TokenizeOutput struct {
	Tokens  []TokenView `json:"tokens"`
	Total   int         `json:"total"`
	Illegal []TokenView `json:"illegal"`
}

type SyntaxErrorView struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

type ParseOutput struct {
	Valid  bool              `json:"valid"`
	Items  int               `json:"items"`
	Code   string            `json:"code,omitempty"`
	Tree   string            `json:"tree,omitempty"`
	Errors []SyntaxErrorView `json:"errors,omitempty"`
}

type CycleView struct {
	Keyword    string `json:"keyword"`
	Line       int    `json:"line"`
	Position   int    `json:"position"`
	WellFormed bool   `json:"well_formed"`
}

type DiagnosticView struct {
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

type ValidateOutput struct {
	Report      string           `json:"report"`
	Cycles      []CycleView      `json:"cycles"`
	Diagnostics []DiagnosticView `json:"diagnostics"`
	HasErrors   bool             `json:"has_errors"`
}

type SubexpressionView struct {
	Name        string `json:"name"`
	Expression  string `json:"expression"`
	Occurrences int    `json:"occurrences"`
}

type OptimizeOutput struct {
	OptimizedCode            string              `json:"optimized_code"`
	Log                      []string            `json:"log"`
	Success                  bool                `json:"success"`
	ErrorMessage             string              `json:"error_message,omitempty"`
	CommentsRemoved          int                 `json:"comments_removed"`
	SpacesOptimized          int                 `json:"spaces_optimized"`
	SubexpressionsEliminated int                 `json:"subexpressions_eliminated"`
	Subexpressions           []SubexpressionView `json:"subexpressions"`
	OriginalSize             int                 `json:"original_size"`
	OptimizedSize            int                 `json:"optimized_size"`
	Reduction                float64             `json:"reduction"`
}

type ConversionView struct {
	Expression        string   `json:"expression"`
	Prefix            string   `json:"prefix"`
	Triplets          []string `json:"triplets"`
	Quadruples        []string `json:"quadruples"`
	FinalResult       string   `json:"final_result"`
	TripletsSummary   string   `json:"triplets_summary"`
	QuadruplesSummary string   `json:"quadruples_summary"`
}

type ConvertOutput struct {
	Expressions []ConversionView `json:"expressions"`
}

type PrefixOutput struct {
	Expression string `json:"expression"`
	Prefix     string `json:"prefix"`
}

// Tokenize splits the source into tokens
func (s *AnalysisService) Tokenize(ctx context.Context, input SourceInput, req *http.Request) (*TokenizeOutput, error) {
	return run(s, ctx, req, model.OperationTokenize, input, input.Source, func() (*TokenizeOutput, map[string]interface{}, error) {
		tokens, summary, err := s.frontend.Tokenize(input.Source)
		if err != nil {
			return nil, nil, err
		}
		out := &TokenizeOutput{
			Tokens:  tokenViews(tokens),
			Total:   summary.Total,
			Illegal: tokenViews(summary.Illegal),
		}
		return out, map[string]interface{}{"tokens": summary.Total, "illegal": len(summary.Illegal)}, nil
	})
}

// Parse builds the syntax tree. Syntax errors are part of the output.
func (s *AnalysisService) Parse(ctx context.Context, input SourceInput, req *http.Request) (*ParseOutput, error) {
	return run(s, ctx, req, model.OperationParse, input, input.Source, func() (*ParseOutput, map[string]interface{}, error) {
		program, err := s.frontend.Parse(input.Source)
		if err != nil {
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				return nil, nil, err
			}
			out := &ParseOutput{}
			for _, e := range perr.Errors {
				out.Errors = append(out.Errors, SyntaxErrorView{Message: e.Message, Line: e.Line, Column: e.Column})
			}
			return out, map[string]interface{}{"errors": len(out.Errors)}, nil
		}
		out := &ParseOutput{
			Valid: true,
			Items: len(program.Items),
			Code:  program.String(),
			Tree:  ast.Tree(program),
		}
		return out, map[string]interface{}{"items": out.Items, "errors": 0}, nil
	})
}

// Validate checks the loop constructs of the source
func (s *AnalysisService) Validate(ctx context.Context, input SourceInput, req *http.Request) (*ValidateOutput, error) {
	return run(s, ctx, req, model.OperationValidate, input, input.Source, func() (*ValidateOutput, map[string]interface{}, error) {
		report, err := s.frontend.Validate(input.Source)
		if err != nil {
			return nil, nil, err
		}
		out := &ValidateOutput{
			Report:      report.String(),
			Cycles:      []CycleView{},
			Diagnostics: []DiagnosticView{},
			HasErrors:   report.HasErrors(),
		}
		for _, c := range report.Cycles {
			out.Cycles = append(out.Cycles, CycleView{Keyword: c.Keyword, Line: c.Line, Position: c.Position, WellFormed: c.WellFormed})
		}
		for _, d := range report.Diagnostics {
			out.Diagnostics = append(out.Diagnostics, DiagnosticView{Severity: d.Severity.String(), Line: d.Line, Message: d.Message})
		}
		return out, map[string]interface{}{
			"cycles":   len(report.Cycles),
			"errors":   len(report.Errors()),
			"warnings": len(report.Warnings()),
		}, nil
	})
}

// Optimize runs the source-level optimizer
func (s *AnalysisService) Optimize(ctx context.Context, input SourceInput, req *http.Request) (*OptimizeOutput, error) {
	return run(s, ctx, req, model.OperationOptimize, input, input.Source, func() (*OptimizeOutput, map[string]interface{}, error) {
		result, err := s.frontend.Optimize(input.Source)
		if err != nil {
			return nil, nil, err
		}
		out := &OptimizeOutput{
			OptimizedCode:            result.OptimizedCode,
			Log:                      result.Log,
			Success:                  result.Success,
			ErrorMessage:             result.ErrorMessage,
			CommentsRemoved:          result.CommentsRemoved,
			SpacesOptimized:          result.SpacesOptimized,
			SubexpressionsEliminated: result.SubexpressionsEliminated,
			Subexpressions:           []SubexpressionView{},
			OriginalSize:             result.OriginalSize,
			OptimizedSize:            result.OptimizedSize,
			Reduction:                result.Reduction(),
		}
		for _, sub := range result.Subexpressions {
			out.Subexpressions = append(out.Subexpressions, SubexpressionView(sub))
		}
		return out, map[string]interface{}{
			"comments_removed":          result.CommentsRemoved,
			"spaces_optimized":          result.SpacesOptimized,
			"subexpressions_eliminated": result.SubexpressionsEliminated,
		}, nil
	})
}

// Convert converts every arithmetic expression of the source. The source
// must parse.
func (s *AnalysisService) Convert(ctx context.Context, input SourceInput, req *http.Request) (*ConvertOutput, error) {
	return run(s, ctx, req, model.OperationConvert, input, input.Source, func() (*ConvertOutput, map[string]interface{}, error) {
		conversions, err := s.frontend.Convert(input.Source)
		if err != nil {
			var perr *parser.ParseError
			if errors.As(err, &perr) {
				return nil, nil, fmt.Errorf("%w: %v", domain.ErrSyntax, err)
			}
			return nil, nil, err
		}
		out := &ConvertOutput{Expressions: []ConversionView{}}
		for _, c := range conversions {
			view := ConversionView{
				Expression:        c.Expression,
				Prefix:            c.Prefix,
				Triplets:          []string{},
				Quadruples:        []string{},
				FinalResult:       c.Triplets.FinalResult,
				TripletsSummary:   c.Triplets.TripletsSummary(),
				QuadruplesSummary: c.Quadruples.QuadruplesSummary(),
			}
			for _, t := range c.Triplets.Triplets {
				view.Triplets = append(view.Triplets, t.Triplet())
			}
			for _, q := range c.Quadruples.Quadruples {
				view.Quadruples = append(view.Quadruples, q.Quadruple())
			}
			out.Expressions = append(out.Expressions, view)
		}
		return out, map[string]interface{}{"expressions": len(out.Expressions)}, nil
	})
}

// Prefix converts one infix expression string to prefix notation
func (s *AnalysisService) Prefix(ctx context.Context, input ExpressionInput, req *http.Request) (*PrefixOutput, error) {
	return run(s, ctx, req, model.OperationPrefix, input, input.Expression, func() (*PrefixOutput, map[string]interface{}, error) {
		prefix, err := s.frontend.Prefix(input.Expression)
		if err != nil {
			return nil, nil, err
		}
		return &PrefixOutput{Expression: input.Expression, Prefix: prefix}, map[string]interface{}{"length": len(prefix)}, nil
	})
}

// cachedRun keeps the counters of a run with its output so cache hits are
// audited with the same stats
type cachedRun[T any] struct {
	Output T
	Stats  map[string]interface{}
}

// run validates input, serves the result from cache when possible and
// records the audit entry
func run[T any](
	s *AnalysisService,
	ctx context.Context,
	req *http.Request,
	operation string,
	input any,
	source string,
	compute func() (*T, map[string]interface{}, error),
) (*T, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	start := time.Now()
	digest := Digest(source)
	entry := audit.Entry{
		Operation:    operation,
		SourceBytes:  len(source),
		SourceDigest: digest,
	}

	var (
		out   *T
		stats map[string]interface{}
		err   error
	)
	if s.cacheService != nil {
		var cached cachedRun[T]
		entry.CacheHit, err = s.cacheService.GetOrSet(ctx, operation+":"+digest, &cached, func() (interface{}, error) {
			value, st, err := compute()
			if err != nil {
				return nil, err
			}
			return cachedRun[T]{Output: *value, Stats: st}, nil
		})
		if err == nil {
			out = &cached.Output
			stats = maps.Clone(cached.Stats)
		}
	} else {
		out, stats, err = compute()
	}

	entry.Duration = time.Since(start)
	entry.Success = err == nil
	entry.Stats = stats
	if err != nil {
		entry.Error = err.Error()
	}

	if auditErr := s.auditLogger.LogAnalysis(ctx, entry, req); auditErr != nil {
		slog.ErrorContext(ctx, "Failed to record audit log", "error", auditErr, "operation", operation, "requestID", middleware.GetReqID(ctx))
	}

	if err != nil {
		return nil, err
	}
	return out, nil
}

// Digest is the hex SHA-256 of a source, the cache key and audit identity of
// a run
func Digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func tokenViews(tokens []lexer.Token) []TokenView {
	views := make([]TokenView, 0, len(tokens))
	for _, tok := range tokens {
		views = append(views, TokenView{
			Type:     tok.Type.String(),
			Literal:  tok.Literal,
			Line:     tok.Line,
			Column:   tok.Column,
			Position: tok.Position,
		})
	}
	return views
}
