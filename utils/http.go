package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/companieshouse/chs.go/log"
)

// maxBodyBytes bounds the size of request bodies read by ReadJSON
const maxBodyBytes = 1 << 20

// ErrEmptyBody is returned by ReadJSON when the request has no body
var ErrEmptyBody = errors.New("request body empty")

// ResponseResource is the object returned in an error case
type ResponseResource struct {
	Message string `json:"message"`
}

// NewMessageResponse - convenience function for creating a response resource
func NewMessageResponse(message string) *ResponseResource {
	return &ResponseResource{Message: message}
}

// ReadJSON decodes the JSON body of req into dest. Unknown fields and bodies
// over a megabyte are rejected.
func ReadJSON(req *http.Request, dest interface{}) error {
	if req.Body == nil || req.Body == http.NoBody {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("request body invalid: [%v]", err)
	}

	return nil
}

// WriteJSONWithStatus writes the interface as a json string with the supplied status.
func WriteJSONWithStatus(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		log.ErrorR(r, fmt.Errorf("error writing response: %v", err))
	}
}
