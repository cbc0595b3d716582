package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Routing (E001-E099)

	"E001": {
		Category: CategoryRouting,
		Message:  "Invalid percent-encoding in route parameter",
		Detail:   "A path segment bound to a route parameter contains a malformed percent-escape such as %zz or a trailing %.",
	},
	"E002": {
		Category: CategoryRouting,
		Message:  "No route matches path",
		Detail:   "The path did not match any route in the application route table.",
	},
	"E003": {
		Category: CategoryRouting,
		Message:  "Router closed",
		Detail:   "The navigation session has ended and no longer accepts navigation.",
	},

	// Configuration (E100-E119)

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid habitat source",
		Detail:   "habitats.source must be one of embedded, file or s3.",
	},

	// Data (E120-E139)

	"E120": {
		Category: CategoryData,
		Message:  "Failed to load habitat catalogue",
	},

	// Server (E140-E159)

	"E140": {
		Category: CategoryServer,
		Message:  "Server failed",
	},
	"E141": {
		Category: CategoryServer,
		Message:  "Not implemented",
		Detail:   "Authentication is not implemented yet.",
	},

	// CLI (E200-E219)

	"E200": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
