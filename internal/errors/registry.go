package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Component render failed",
		Detail:   "A component returned an error. The render pass was aborted; nodes already appended to the document are left in place.",
		DocURL:   "https://soar.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Component panicked",
		Detail:   "A component panicked while rendering. The panic was recovered and the render pass was aborted.",
		DocURL:   "https://soar.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "Document root element missing",
		Detail:   "The output document has no html, head or body element to attach to.",
		DocURL:   "https://soar.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRender,
		Message:  "Scope digest failed",
		Detail:   "The scope id for a style block could not be computed.",
		DocURL:   "https://soar.dev/docs/errors/E004",
	},

	// ============================================
	// Style Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryStyle,
		Message:  "Style block parse failed",
		Detail:   "A style block attached with Styled or GlobalStyled is not valid CSS.",
		DocURL:   "https://soar.dev/docs/errors/E010",
	},
	"E011": {
		Category: CategoryStyle,
		Message:  "Invalid selector",
		DocURL:   "https://soar.dev/docs/errors/E011",
	},
	"E012": {
		Category: CategoryStyle,
		Message:  "CSS transform failed",
		Detail:   "The compiled stylesheet was rejected by the CSS minifier.",
		DocURL:   "https://soar.dev/docs/errors/E012",
	},

	// ============================================
	// Document Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryRender,
		Message:  "Document serialization failed",
		DocURL:   "https://soar.dev/docs/errors/E020",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		DocURL:   "https://soar.dev/docs/errors/E120",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://soar.dev/docs/errors/E122",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   "https://soar.dev/docs/errors/E141",
	},

	// ============================================
	// Site Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategorySite,
		Message:  "Page not found",
		DocURL:   "https://soar.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategorySite,
		Message:  "Build output could not be written",
		DocURL:   "https://soar.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategorySite,
		Message:  "Publish failed",
		DocURL:   "https://soar.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategorySite,
		Message:  "Duplicate page path",
		DocURL:   "https://soar.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategorySite,
		Message:  "Invalid request path",
		Detail:   "The path contains a backslash, a NUL byte, a malformed percent escape or a \"..\" segment above the root.",
		DocURL:   "https://soar.dev/docs/errors/E204",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
