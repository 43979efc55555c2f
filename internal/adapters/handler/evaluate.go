package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
	"sigeval/internal/core/port"
)

const serviceVersion = "1.0.0"

// Evaluate exposes the evaluation operations over HTTP. It owns only request
// framing and status mapping; all image and toolpath semantics live behind
// the evaluator port.
type Evaluate struct {
	evaluator port.Evaluator
}

func NewEvaluate(evaluator port.Evaluator) *Evaluate {
	return &Evaluate{evaluator: evaluator}
}

func (h *Evaluate) Register(r chi.Router) {
	r.Post("/api/evaluate/ssim", h.SSIM)
	r.Post("/api/evaluate/smoothness", h.Smoothness)
	r.Post("/api/evaluate/execution-error", h.ExecutionError)
	r.Get("/api/health", h.Health)
}

type ssimRequest struct {
	OriginalImageData   string `json:"original_image_data"`
	ReproducedImageData string `json:"reproduced_image_data"`
}

type smoothnessRequest struct {
	ImageData string `json:"image_data"`
}

type executionErrorRequest struct {
	ExpectedToolpath [][]float64 `json:"expected_toolpath"`
	ActualToolpath   [][]float64 `json:"actual_toolpath"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (h *Evaluate) SSIM(w http.ResponseWriter, r *http.Request) {
	var original, reproduced domain.RawImageInput

	if isMultipart(r) {
		var err error
		original, err = fileInput(r, "original_image")
		if err == nil {
			reproduced, err = fileInput(r, "reproduced_image")
		}
		if err != nil {
			writeValidationError(w, err)
			return
		}
	} else {
		var req ssimRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.OriginalImageData == "" || req.ReproducedImageData == "" {
			writeValidationError(w, fmt.Errorf("both original and reproduced images must be provided"))
			return
		}
		original = domain.EncodedTextInput(req.OriginalImageData)
		reproduced = domain.EncodedTextInput(req.ReproducedImageData)
	}

	score, err := h.evaluator.CompareImages(original, reproduced)
	if err != nil {
		h.writeEvaluationError(w, err, "Invalid image data",
			"An unexpected error occurred during SSIM calculation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"ssim_score":     score,
		"message":        "SSIM calculated successfully",
		"interpretation": similarityInterpretation(score),
	})
}

func (h *Evaluate) Smoothness(w http.ResponseWriter, r *http.Request) {
	var input domain.RawImageInput

	if isMultipart(r) {
		var err error
		input, err = fileInput(r, "image")
		if err != nil {
			writeValidationError(w, err)
			return
		}
	} else {
		var req smoothnessRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		if req.ImageData == "" {
			writeValidationError(w, fmt.Errorf("either 'image' or 'image_data' must be provided"))
			return
		}
		input = domain.EncodedTextInput(req.ImageData)
	}

	score, err := h.evaluator.Smoothness(input)
	if err != nil {
		h.writeEvaluationError(w, err, "Invalid image data",
			"An unexpected error occurred during smoothness calculation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"smoothness_score": score,
		"message":          "Smoothness calculated successfully",
		"interpretation":   smoothnessInterpretation(score),
	})
}

func (h *Evaluate) ExecutionError(w http.ResponseWriter, r *http.Request) {
	var req executionErrorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	expected, err := toToolpath(req.ExpectedToolpath)
	if err == nil {
		var actual domain.Toolpath
		actual, err = toToolpath(req.ActualToolpath)
		if err == nil {
			h.respondExecutionError(w, expected, actual)
			return
		}
	}

	writeValidationError(w, err)
}

func (h *Evaluate) respondExecutionError(w http.ResponseWriter, expected, actual domain.Toolpath) {
	meanError, errs, err := h.evaluator.ExecutionError(expected, actual)
	if err != nil {
		h.writeEvaluationError(w, err, "Invalid toolpath data",
			"An unexpected error occurred during execution error calculation")
		return
	}

	stats := domain.ErrorStats(errs)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"mean_error":        meanError,
		"individual_errors": errs,
		"message":           "Execution error calculated successfully",
		"analysis": map[string]any{
			"max_error":    stats.Max,
			"min_error":    stats.Min,
			"error_std":    stats.Std,
			"total_points": len(errs),
		},
	})
}

func (h *Evaluate) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "GCode Evaluation API",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"ssim":            "/api/evaluate/ssim",
			"smoothness":      "/api/evaluate/smoothness",
			"execution_error": "/api/evaluate/execution-error",
		},
	})
}

// writeEvaluationError maps the domain taxonomy onto status codes: client
// input faults are 400 with their own message, anything else is 500 with a
// generic message so internal details never leak.
func (h *Evaluate) writeEvaluationError(w http.ResponseWriter, err error, clientError, serverDetails string) {
	if domain.IsClientFault(err) {
		log.Debug().Err(err).Msg("rejecting request")
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   clientError,
			Details: err.Error(),
		})
		return
	}

	log.Error().Err(err).Msg("evaluation failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Internal server error",
		Details: serverDetails,
	})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Validation error",
		Details: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("could not write response")
	}
}

func decodeJSON(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

const maxUploadMemory = 32 << 20

// fileInput reads an uploaded file field as raw bytes. Only the content is
// kept; the uploaded filename is untrusted and ignored.
func fileInput(r *http.Request, field string) (domain.RawImageInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return domain.RawImageInput{}, fmt.Errorf("invalid multipart form: %w", err)
	}

	f, _, err := r.FormFile(field)
	if err != nil {
		return domain.RawImageInput{}, fmt.Errorf("missing file field %q", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.RawImageInput{}, fmt.Errorf("reading file field %q: %w", field, err)
	}

	return domain.BytesInput(data), nil
}

func toToolpath(points [][]float64) (domain.Toolpath, error) {
	path := make(domain.Toolpath, 0, len(points))
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("toolpath point %d must be an [x, y] pair", i)
		}
		path = append(path, domain.Point{X: p[0], Y: p[1]})
	}

	return path, nil
}

func similarityInterpretation(score float64) string {
	switch {
	case score >= 0.9:
		return "Very high similarity"
	case score >= 0.7:
		return "High similarity"
	case score >= 0.5:
		return "Moderate similarity"
	case score >= 0.3:
		return "Low similarity"
	default:
		return "Very low similarity"
	}
}

func smoothnessInterpretation(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent line smoothness"
	case score >= 0.6:
		return "Good line smoothness"
	case score >= 0.4:
		return "Fair line smoothness"
	case score >= 0.2:
		return "Poor line smoothness"
	default:
		return "Very poor line smoothness"
	}
}
