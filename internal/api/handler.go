package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
	Model   string `json:"model" description:"Model ID bound at startup"`
}

type Handler struct {
	relay  *relay.Service
	logger *zerolog.Logger
}

func NewHandler(relay *relay.Service, logger *zerolog.Logger) *Handler {
	return &Handler{
		relay:  relay,
		logger: logger,
	}
}

// POST /ask
// Body: AskRequest
// Returns: AskResponse
func (h *Handler) Ask(req *restful.Request, resp *restful.Response) {
	var askRequest models.AskRequest
	if err := readAskRequest(req, &askRequest); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, fmt.Errorf("%w: %v", relay.ErrInvalidRequest, err), http.StatusUnprocessableEntity)
		return
	}

	answer, err := h.relay.Ask(req.Request.Context(), askRequest.Prompt)
	if err != nil {
		if errors.Is(err, relay.ErrInvalidRequest) {
			middleware.HandleError(resp, err, http.StatusUnprocessableEntity)
			return
		}
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, models.AskResponse{Response: answer})
}

// readAskRequest decodes the body as JSON. A request without Content-Type is
// read as JSON; application/json and application/*+json are accepted.
func readAskRequest(req *restful.Request, askRequest *models.AskRequest) error {
	contentType := req.HeaderParameter(restful.HEADER_ContentType)
	if contentType != "" && !isJSONMediaType(contentType) {
		return fmt.Errorf("unsupported content type %q", contentType)
	}

	req.Request.Header.Set(restful.HEADER_ContentType, restful.MIME_JSON)
	return req.ReadEntity(askRequest)
}

func isJSONMediaType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	mainType, subType, ok := strings.Cut(mediaType, "/")
	return ok && mainType == "application" && (subType == "json" || strings.HasSuffix(subType, "+json"))
}

// Health handler GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
		Model:   h.relay.Params().ModelID,
	})
}
