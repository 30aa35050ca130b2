package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
)

func newContainer(handler restful.RouteFunction) *restful.Container {
	ws := new(restful.WebService)
	ws.Path("/").Produces(restful.MIME_JSON)
	ws.Route(ws.GET("boom").To(handler))

	container := restful.NewContainer()
	container.Filter(Logger)
	container.Filter(RecoverPanic)
	container.Add(ws)
	return container
}

func TestRecoverPanic_Returns500(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		panic("something broke")
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", recorder.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Code != 500 || body.Details != "" {
		t.Errorf("Unexpected error body: %+v", body)
	}
}

func TestHandleError_ClientErrorCarriesDetails(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		HandleError(resp, errors.New("prompt is required"), http.StatusUnprocessableEntity)
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", recorder.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Error != "Unprocessable Entity" {
		t.Errorf("Expected 'Unprocessable Entity', got '%s'", body.Error)
	}
	if body.Details != "prompt is required" {
		t.Errorf("Expected details 'prompt is required', got '%s'", body.Details)
	}
}

func TestHandleError_ServerErrorHidesDetails(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		HandleError(resp, errors.New("AccessDeniedException: secret account id"), http.StatusInternalServerError)
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Details != "" {
		t.Errorf("Expected no details on 500, got '%s'", body.Details)
	}
}
