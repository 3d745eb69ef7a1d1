package rosterapi

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrorResponse describes the JSON that rosterd responds with when an API
// call fails.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func toErrorFromResponse(resp *resty.Response) error {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil {
		return errors.Wrapf(err, "(HTTP Status: %d) - unable to parse json error response", resp.StatusCode())
	}

	return &errorResponse
}
