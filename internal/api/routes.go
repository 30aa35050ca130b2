package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	// No Consumes: the ask handler decodes the body itself so a missing
	// Content-Type reads as JSON and other media types answer 422.
	ws.
		Path("/").
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("ask").
			To(handler.Ask).
			Doc("Forward a prompt to the model and return its response").
			Metadata(restfulspec.KeyOpenAPITags, []string{"ask"}).
			Reads(models.AskRequest{}).
			Writes(models.AskResponse{}).
			Returns(200, "OK", models.AskResponse{}).
			Returns(422, "Unprocessable Entity", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
