package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dangerclosesec/ciclo/internal/model"
	"github.com/dangerclosesec/ciclo/internal/service"
)

// AnalysisHandler exposes the front end operations over HTTP
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	maxBodyBytes    int64
}

// NewAnalysisHandler creates a new analysis handler. Request bodies larger
// than maxBodyBytes are rejected before decoding; zero disables the limit.
func NewAnalysisHandler(analysisService *service.AnalysisService, maxBodyBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		maxBodyBytes:    maxBodyBytes,
	}
}

type TokenizeResponse struct {
	BaseResponse
	*service.TokenizeOutput
}

type ParseResponse struct {
	BaseResponse
	*service.ParseOutput
}

type ValidateResponse struct {
	BaseResponse
	*service.ValidateOutput
}

type OptimizeResponse struct {
	BaseResponse
	*service.OptimizeOutput
}

type ConvertResponse struct {
	BaseResponse
	*service.ConvertOutput
}

type PrefixResponse struct {
	BaseResponse
	*service.PrefixOutput
}

func (h *AnalysisHandler) decode(w http.ResponseWriter, r *http.Request, input any) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// TokenizeHandler handles POST /api/tokenize
func (h *AnalysisHandler) TokenizeHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SourceInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Tokenize(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationTokenize, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TokenizeResponse{BaseResponse{Ok: true}, out})
}

// ParseHandler handles POST /api/parse. Syntax errors are reported with
// ok=true and valid=false.
func (h *AnalysisHandler) ParseHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SourceInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Parse(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationParse, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ParseResponse{BaseResponse{Ok: true}, out})
}

// ValidateHandler handles POST /api/validate
func (h *AnalysisHandler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SourceInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Validate(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationValidate, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ValidateResponse{BaseResponse{Ok: true}, out})
}

// OptimizeHandler handles POST /api/optimize
func (h *AnalysisHandler) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SourceInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Optimize(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationOptimize, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OptimizeResponse{BaseResponse{Ok: out.Success}, out})
}

// ConvertHandler handles POST /api/convert
func (h *AnalysisHandler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SourceInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Convert(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationConvert, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ConvertResponse{BaseResponse{Ok: true}, out})
}

// PrefixHandler handles POST /api/prefix
func (h *AnalysisHandler) PrefixHandler(w http.ResponseWriter, r *http.Request) {
	var input service.ExpressionInput
	if !h.decode(w, r, &input) {
		return
	}

	out, err := h.analysisService.Prefix(r.Context(), input, r)
	if err != nil {
		respondWithDomainError(w, r, model.OperationPrefix, err)
		return
	}
	respondWithJSON(w, http.StatusOK, PrefixResponse{BaseResponse{Ok: true}, out})
}
