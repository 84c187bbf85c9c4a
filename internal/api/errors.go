package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// statusForError maps a recipe generation error to its HTTP status and body.
func statusForError(err error) (int, types.ErrorResponse) {
	var upstreamErr *service.UpstreamError
	var netErr *service.NetworkError

	switch {
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "service unavailable",
			Message: service.ErrServiceUnavailable.Error(),
		}
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, types.ErrorResponse{
			Error:   "upstream error",
			Message: fmt.Sprintf("language model API returned status %d", upstreamErr.StatusCode),
		}
	case errors.As(err, &netErr):
		return http.StatusBadGateway, types.ErrorResponse{
			Error:   "upstream unreachable",
			Message: "could not reach the language model API",
		}
	case errors.Is(err, service.ErrUpstreamFormat):
		return http.StatusBadGateway, types.ErrorResponse{
			Error:   "unexpected upstream response",
			Message: "the language model reply carried no text",
		}
	default:
		return http.StatusInternalServerError, types.ErrorResponse{Error: "Internal Server Error"}
	}
}
