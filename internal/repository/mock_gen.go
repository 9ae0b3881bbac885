// internal/repository/mock_gen.go
package repository

//go:generate mockgen -typed -source=./analysis_audit_log.go -destination=../mocks/mock_analysis_audit_log_repository.go -package=mocks AnalysisAuditLogRepositoryIface
