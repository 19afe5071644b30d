package model

// AppError is the only structured error payload produced by this codec.
// Collaborators (HTTP layer, CLI) decide how to surface it.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage"`

	Snippet string `json:"snippet,omitempty"` // <= 200 chars recommended
	Hint    string `json:"hint,omitempty"`
}

// Error codes shared across packages.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeUnsupportedTarget  = "UNSUPPORTED_TARGET"
	CodeNoUsableNodes      = "NO_USABLE_NODES"
	CodeTemplateParseError = "TEMPLATE_PARSE_ERROR"
)
