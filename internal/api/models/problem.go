package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 error response, written with
// Content-Type: application/problem+json.
type Problem struct {
	// Type is a URI identifying the problem class.
	Type string `json:"type"`

	// Title is a short human-readable summary of the problem class.
	Title string `json:"title"`

	// Status is the HTTP status code of this occurrence.
	Status int `json:"status"`

	// Detail explains this specific occurrence.
	Detail string `json:"detail,omitempty"`

	// Instance identifies the request path that produced the problem.
	Instance string `json:"instance,omitempty"`

	// TraceID carries the request correlation ID.
	TraceID string `json:"traceId"`

	// Errors holds per-field validation failures.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError is one validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Problem type URIs.
const (
	ProblemTypeValidation      = "https://api.margdarshak.in/problems/validation-error"
	ProblemTypeNotFound        = "https://api.margdarshak.in/problems/not-found"
	ProblemTypeTooManyRequests = "https://api.margdarshak.in/problems/too-many-requests"
	ProblemTypeInternal        = "https://api.margdarshak.in/problems/internal-error"
	ProblemTypeUnavailable     = "https://api.margdarshak.in/problems/service-unavailable"
)

// NewProblem creates a Problem of the given class.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return &Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		TraceID: traceID,
	}
}

// WithDetail sets the occurrence detail.
func (p *Problem) WithDetail(detail string) *Problem {
	p.Detail = detail
	return p
}

// WithInstance sets the occurrence path.
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// WithErrors attaches field errors.
func (p *Problem) WithErrors(errors []FieldError) *Problem {
	p.Errors = errors
	return p
}

// Write serializes the Problem to the response.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newDetailed(problemType, title string, status int, traceID, detail string) *Problem {
	p := NewProblem(problemType, title, status, traceID)
	p.Detail = detail
	return p
}

// NewBadRequest creates a 400 validation problem.
func NewBadRequest(traceID, detail string, errors []FieldError) *Problem {
	p := newDetailed(ProblemTypeValidation, "Validation error", http.StatusBadRequest, traceID, detail)
	p.Errors = errors
	return p
}

// NewNotFound creates a 404 problem.
func NewNotFound(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeNotFound, "Not found", http.StatusNotFound, traceID, detail)
}

// NewTooManyRequests creates a 429 problem.
func NewTooManyRequests(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests, traceID, detail)
}

// NewInternalError creates a 500 problem.
func NewInternalError(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, traceID, detail)
}

// NewServiceUnavailable creates a 503 problem.
func NewServiceUnavailable(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeUnavailable, "Service unavailable", http.StatusServiceUnavailable, traceID, detail)
}
