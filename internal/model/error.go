package model

// AppError is the only error payload returned by this service in "strict
// mode". Decode failures are terminal per input; they carry enough context
// (scheme + snippet) for a precise user-facing message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage"`

	Scheme  string `json:"scheme,omitempty"`  // link scheme when the error is scheme-specific
	Snippet string `json:"snippet,omitempty"` // <= 200 chars; may contain credentials, never logged
	Hint    string `json:"hint,omitempty"`
}

type ErrorResponse struct {
	Error AppError `json:"error"`
}
