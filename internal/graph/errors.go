package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deskhub/deskhub/internal/auth"
)

// resolverError is an error carrying a stable machine-readable code in its
// GraphQL extensions. It satisfies gqlerrors.ExtendedError so the executor
// includes the extensions in the formatted response.
type resolverError struct {
	message string
	code    string
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// wrapError translates service errors into resolver errors. Expected
// rejections keep their message and kind; anything else is logged and masked
// so operational failures never surface as user errors.
func wrapError(err error) error {
	if kind, ok := auth.KindOf(err); ok {
		return &resolverError{message: err.Error(), code: string(kind)}
	}

	slog.Error("resolver failed", "error", err)
	return &resolverError{message: "Internal server error", code: "INTERNAL_SERVER_ERROR"}
}

// WriteError writes a GraphQL-shaped error body for failures that happen
// outside schema execution, such as a rejected bearer token or an unreadable
// request body.
func WriteError(w http.ResponseWriter, status int, code, message, requestID string) {
	body := map[string]any{
		"data": nil,
		"errors": []map[string]any{
			{
				"message": message,
				"extensions": map[string]any{
					"code":      code,
					"requestId": requestID,
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
