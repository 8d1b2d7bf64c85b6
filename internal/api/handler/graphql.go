package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/deskhub/deskhub/internal/api/middleware"
	"github.com/deskhub/deskhub/internal/graph"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler executes GraphQL operations against the schema. Identity
// resolution has already happened in middleware by the time this runs.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// ServeHTTP handles POST /graphql.
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		graph.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Request body must be valid JSON", requestID)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode graphql result", "error", err, "requestId", requestID)
	}
}
