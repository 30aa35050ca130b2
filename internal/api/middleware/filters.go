package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("path", req.Request.URL.Path).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
			HandleError(resp, nil, http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}
