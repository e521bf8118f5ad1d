package api

import (
	"encoding/json"
	"net/http"
)

const (
	InternalErrorDescription string = "something went wrong, please try again later"
	UnauthorizedDescription  string = "unauthorized"
)

// ErrorResponse is the uniform body returned to clients when a request fails
type ErrorResponse struct {
	Description string `json:"description"`
}

// ReportInternalError hides the cause of a failure from the client and responds
// with the uniform internal error body
func ReportInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Description: InternalErrorDescription})
}

func ReportUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Description: UnauthorizedDescription})
}

func writeJSON(w http.ResponseWriter, code int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(b)

	return err
}
