package errors

import (
	"encoding/json"
	"net/http"
)

// ProblemDetails stores details about a certain problem according to RFC7807
// See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	ResponseCode() int
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

// ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ    string
	title  string
	detail string
	code   int
}

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	problemTypeBase string = "https://diwise.io/map-items/errors/"
)

func newProblem(typ, title, detail string, code int) ProblemDetailsImpl {
	return ProblemDetailsImpl{
		typ:    problemTypeBase + typ,
		title:  title,
		detail: detail,
		code:   code,
	}
}

// BadRequestData reports that the payload could be decoded, but not mapped into a map item
type BadRequestData struct {
	ProblemDetailsImpl
}

func NewBadRequestData(detail string) *BadRequestData {
	return &BadRequestData{
		ProblemDetailsImpl: newProblem("BadRequestData", "Bad Request Data", detail, http.StatusBadRequest),
	}
}

func ReportNewBadRequestData(w http.ResponseWriter, detail string) {
	NewBadRequestData(detail).WriteResponse(w)
}

// InvalidRequest reports that the request is syntactically invalid, e.g. not JSON at all
type InvalidRequest struct {
	ProblemDetailsImpl
}

func NewInvalidRequest(detail string) *InvalidRequest {
	return &InvalidRequest{
		ProblemDetailsImpl: newProblem("InvalidRequest", "Invalid Request", detail, http.StatusBadRequest),
	}
}

func ReportNewInvalidRequest(w http.ResponseWriter, detail string) {
	NewInvalidRequest(detail).WriteResponse(w)
}

// InternalError reports that there has been an error during the operation execution
type InternalError struct {
	ProblemDetailsImpl
}

func NewInternalError(detail string) *InternalError {
	return &InternalError{
		ProblemDetailsImpl: newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError),
	}
}

func ReportNewInternalError(w http.ResponseWriter, detail string) {
	NewInternalError(detail).WriteResponse(w)
}

type NotFound struct {
	ProblemDetailsImpl
}

func NewNotFound(detail string) *NotFound {
	return &NotFound{
		ProblemDetailsImpl: newProblem("ResourceNotFound", "Not Found", detail, http.StatusNotFound),
	}
}

func ReportNotFoundError(w http.ResponseWriter, detail string) {
	NewNotFound(detail).WriteResponse(w)
}

type UnauthorizedRequest struct {
	ProblemDetailsImpl
}

func NewUnauthorizedRequest(detail string) *UnauthorizedRequest {
	return &UnauthorizedRequest{
		ProblemDetailsImpl: newProblem("UnauthorizedRequest", "Unauthorized Request", detail, http.StatusUnauthorized),
	}
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail string) {
	NewUnauthorizedRequest(detail).WriteResponse(w)
}

func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Type() string {
	return p.typ
}

func (p *ProblemDetailsImpl) Title() string {
	return p.title
}

func (p *ProblemDetailsImpl) Detail() string {
	return p.detail
}

// MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}{
		Type:   p.typ,
		Title:  p.title,
		Detail: p.detail,
	})
}

// ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {

	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
