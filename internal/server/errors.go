package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorPayload struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// AbortWithError converts a service-layer status error into an HTTP response.
// Unknown errors map to 500 with a generic message so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{errorPayload{"internal error"}})
		return
	}
	c.AbortWithStatusJSON(httpStatus(st.Code()), errorResponse{errorPayload{st.Message()}})
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
