package middleware

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes the error envelope. Server errors never carry details.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{
		Error: http.StatusText(status),
		Code:  status,
	}
	if status < http.StatusInternalServerError && err != nil {
		body.Details = err.Error()
	}

	if werr := resp.WriteHeaderAndEntity(status, body); werr != nil {
		log.Error().Err(werr).Int("status", status).Msg("Failed to write error response")
	}
}
