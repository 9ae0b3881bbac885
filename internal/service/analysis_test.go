package service_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/ciclo"
	"github.com/dangerclosesec/ciclo/internal/domain"
	"github.com/dangerclosesec/ciclo/internal/mocks"
	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/dangerclosesec/ciclo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAnalysisService(t *testing.T, repo *mocks.MockAnalysisAuditLogRepositoryIface, maxBytes int) *service.AnalysisService {
	t.Helper()

	cfg := ciclo.NewConfig(context.Background())
	cfg.SetMaxSourceBytes(maxBytes)

	cacheService := service.NewCacheService(service.CacheConfig{
		TTL:         5 * time.Minute,
		CleanupFreq: time.Minute,
	})
	t.Cleanup(cacheService.Close)

	return service.NewAnalysisService(
		ciclo.New(cfg),
		cacheService,
		service.NewAnalysisAuditLogService(repo),
	)
}

func TestAnalysisTokenize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	svc := newAnalysisService(t, repo, 1024)

	source := "x = 5\ny = abc@def\n"
	req := httptest.NewRequest("POST", "/api/tokenize", nil)
	req.Header.Set("User-Agent", "ciclo-test")

	var logged []*model.AnalysisAuditLog
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *model.AnalysisAuditLog) error {
			logged = append(logged, log)
			return nil
		}).
		Times(2)

	out, err := svc.Tokenize(context.Background(), service.SourceInput{Source: source}, req)
	require.NoError(t, err)
	assert.Equal(t, out.Total, len(out.Tokens))
	require.Len(t, out.Illegal, 1)
	assert.Equal(t, "abc@def", out.Illegal[0].Literal)
	assert.Equal(t, "ERROR", out.Illegal[0].Type)

	again, err := svc.Tokenize(context.Background(), service.SourceInput{Source: source}, req)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	require.Len(t, logged, 2)
	assert.Equal(t, model.OperationTokenize, logged[0].Operation)
	assert.True(t, logged[0].Success)
	assert.False(t, logged[0].CacheHit)
	assert.Equal(t, len(source), logged[0].SourceBytes)
	assert.Equal(t, service.Digest(source), logged[0].SourceDigest)
	assert.Equal(t, "ciclo-test", logged[0].UserAgent)
	assert.Equal(t, 1, logged[0].Stats["illegal"])
	assert.True(t, logged[1].CacheHit)
	assert.Equal(t, 1, logged[1].Stats["illegal"])
	assert.Equal(t, out.Total, logged[1].Stats["tokens"])
}

func TestAnalysisRejectsEmptySource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	svc := newAnalysisService(t, repo, 1024)

	_, err := svc.Validate(context.Background(), service.SourceInput{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Prefix(context.Background(), service.ExpressionInput{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalysisSourceTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	svc := newAnalysisService(t, repo, 4)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *model.AnalysisAuditLog) error {
			assert.False(t, log.Success)
			assert.Contains(t, log.ErrorMessage, "source too large")
			return nil
		})

	_, err := svc.Optimize(context.Background(), service.SourceInput{Source: "x = a + b\n"}, nil)
	assert.ErrorIs(t, err, domain.ErrSourceTooLarge)
}

func TestAnalysisParse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Parse(context.Background(), service.SourceInput{Source: "x = 5\ny = x + 1\n"}, nil)
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, 2, out.Items)
	assert.Contains(t, out.Tree, "Decl: y")

	out, err = svc.Parse(context.Background(), service.SourceInput{Source: "while x > 0 { y = x }\n"}, nil)
	require.NoError(t, err)
	assert.False(t, out.Valid)
	require.NotEmpty(t, out.Errors)
	assert.Equal(t, 1, out.Errors[0].Line)
}

func TestAnalysisValidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Validate(context.Background(), service.SourceInput{Source: "while x > 0 { y = x }\n"}, nil)
	require.NoError(t, err)
	assert.True(t, out.HasErrors)
	require.Len(t, out.Cycles, 1)
	assert.Equal(t, "while", out.Cycles[0].Keyword)
	assert.False(t, out.Cycles[0].WellFormed)
	assert.Equal(t, "ERROR", out.Diagnostics[0].Severity)
	assert.Contains(t, out.Report, "=== CYCLE SEMANTIC ANALYSIS ===")
}

func TestAnalysisOptimize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Optimize(context.Background(), service.SourceInput{Source: "x = a + b\ny = a + b\n"}, nil)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "cse0 = a + b\nx = cse0\ny = cse0\n", out.OptimizedCode)
	assert.Equal(t, []service.SubexpressionView{{Name: "cse0", Expression: "a + b", Occurrences: 2}}, out.Subexpressions)
}

func TestAnalysisConvert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Convert(context.Background(), service.SourceInput{Source: "x = (a + b) * c\n"}, nil)
	require.NoError(t, err)
	require.Len(t, out.Expressions, 1)

	conv := out.Expressions[0]
	assert.Equal(t, "*+abc", conv.Prefix)
	assert.Equal(t, []string{"(+, a, b, t1)", "(*, t1, c, t2)"}, conv.Triplets)
	assert.Equal(t, []string{"(+, a, b, t1)", "(*, t1, c, t2)"}, conv.Quadruples)
	assert.Equal(t, "t2", conv.FinalResult)

	_, err = svc.Convert(context.Background(), service.SourceInput{Source: "x = (\n"}, nil)
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestAnalysisPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Prefix(context.Background(), service.ExpressionInput{Expression: "(A+B)*C"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "*+ABC", out.Prefix)
}

func TestAnalysisAuditFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAnalysisAuditLogRepositoryIface(ctrl)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
	svc := newAnalysisService(t, repo, 1024)

	out, err := svc.Prefix(context.Background(), service.ExpressionInput{Expression: "A+B"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "+AB", out.Prefix)
}

func TestAnalysisWithoutCacheOrAudit(t *testing.T) {
	svc := service.NewAnalysisService(ciclo.New(nil), nil, nil)

	out, err := svc.Validate(context.Background(), service.SourceInput{Source: "x = 5\n"}, nil)
	require.NoError(t, err)
	assert.False(t, out.HasErrors)
	assert.Empty(t, out.Cycles)
}
