package errors

// Error codes for the coquito front end.
// These codes are used in error messages and editor diagnostics
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0100-E0199: Parser errors (including lexical errors surfaced by the parser)
// E0900-E0999: Reserved for tooling errors

const (
	// E0100: A specific token was expected but another was found
	ErrorUnexpectedToken = "E0100"

	// E0101: A required token is missing
	ErrorMissingToken = "E0101"

	// E0102: Input ended inside a block or other construct
	ErrorUnterminatedConstruct = "E0102"

	// E0103: Lexical error (unterminated string, malformed number, stray character)
	ErrorInvalidToken = "E0103"

	// E0104: Parse aborted (nesting or token limit, cancellation)
	ErrorUnrecoverable = "E0104"

	// E0900: Source file could not be loaded
	ErrorSourceLoad = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedToken:
		return "A different token was expected at this position"
	case ErrorMissingToken:
		return "A required token is missing"
	case ErrorUnterminatedConstruct:
		return "The file ended before the construct was closed"
	case ErrorInvalidToken:
		return "The text could not be read as a token"
	case ErrorUnrecoverable:
		return "Parsing stopped because a limit was exceeded"
	case ErrorSourceLoad:
		return "The source file could not be read or decoded"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
