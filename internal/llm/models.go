package llm

import "net/http"

// defaultMaxTokens applies when a request leaves MaxTokens unset and the
// API requires a value.
const defaultMaxTokens = 2048

// resolveModel maps a configured short name to a provider model ID.
// Unknown names are passed through as direct model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// mapStatusError classifies an HTTP status from any vendor SDK.
func mapStatusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
