package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/forgo/guild/api/internal/model"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a collection response with pagination
type CollectionResponse struct {
	Data       interface{}       `json:"data"`
	Pagination *PaginationInfo   `json:"pagination,omitempty"`
	Links      map[string]string `json:"_links,omitempty"`
}

// PaginationInfo contains offset pagination info
type PaginationInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// SuccessResponse is the body of a successful public site call
type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	response := DataResponse{
		Data:  data,
		Links: links,
	}
	WriteJSON(w, status, response)
}

// WriteCollection writes a collection response with pagination
func WriteCollection(w http.ResponseWriter, status int, data interface{}, pagination *PaginationInfo, links map[string]string) {
	response := CollectionResponse{
		Data:       data,
		Pagination: pagination,
		Links:      links,
	}
	WriteJSON(w, status, response)
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// WriteSiteError writes a public site error: {"error": "..."}
func WriteSiteError(w http.ResponseWriter, err *model.SiteError) {
	err.WriteJSON(w)
}

// WriteSuccess writes {"success": true}
func WriteSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// MaxBodyBytes caps every JSON request body
const MaxBodyBytes = 1 << 20

var errTrailingData = errors.New("request body has data after the JSON value")

// DecodeJSON decodes a JSON request body into the given struct, rejecting
// unknown fields
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	decoder := bodyDecoder(w, r)
	decoder.DisallowUnknownFields()
	return decodeOne(decoder, v)
}

// DecodeJSONLoose is DecodeJSON without the unknown-field check
func DecodeJSONLoose(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return decodeOne(bodyDecoder(w, r), v)
}

func bodyDecoder(w http.ResponseWriter, r *http.Request) *json.Decoder {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
}

// decodeOne requires the body to hold exactly one JSON value
func decodeOne(decoder *json.Decoder, v interface{}) error {
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
