package model

// SettleRequest represents an incoming settlement or status request
type SettleRequest struct {
	Reference string `json:"reference"`
}

// OperatorIDUpdateRequest carries reviewed operator ids, keyed by category then product key
type OperatorIDUpdateRequest struct {
	MatchedIDs map[Category]map[string]MatchedOperator `json:"matchedIds"`
}

// OperatorIDUpdateResult reports how many products were updated
type OperatorIDUpdateResult struct {
	UpdatedCount int     `json:"updatedCount"`
	Catalog      Catalog `json:"catalog"`
}

// APIResponse is the JSON envelope of every API answer
type APIResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError represents error response
type APIError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
