package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Bindable is disabled",
		Detail:   "The value of a disabled bindable cannot be changed. Enable it first or use SetDefault.",
	},
	"E010": {
		Category: CategoryRuntime,
		Message:  "Dependency not cached",
		Detail:   "No container in the chain holds a value of the requested type.",
	},
	"E011": {
		Category: CategoryRuntime,
		Message:  "Dependency already cached",
		Detail:   "A container may hold only one value per type. Use a child container to shadow it.",
	},
	"E012": {
		Category: CategoryRuntime,
		Message:  "Dependency injection failed",
		Detail:   "A target returned an error while resolving its dependencies.",
	},

	// ============================================
	// Settings Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategorySettings,
		Message:  "Setting type mismatch",
		Detail:   "The setting was registered with a different value type.",
	},
	"E021": {
		Category: CategorySettings,
		Message:  "Unknown setting",
		Detail:   "The setting key has not been registered with Set and was not found in the loaded file.",
	},
	"E022": {
		Category: CategorySettings,
		Message:  "Settings decode failed",
		Detail:   "The settings file or value could not be decoded.",
	},
	"E023": {
		Category: CategorySettings,
		Message:  "Settings encode failed",
		Detail:   "The settings could not be encoded for saving.",
	},
	"E024": {
		Category: CategorySettings,
		Message:  "Unsupported settings format",
		Detail:   "Settings files must end in .yaml, .yml, .toml or .json.",
	},

	// ============================================
	// Storage Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryStorage,
		Message:  "File not found",
		Detail:   "The requested file does not exist in storage.",
	},
	"E031": {
		Category: CategoryStorage,
		Message:  "Invalid storage path",
		Detail:   "Storage paths must be relative and stay inside the storage root.",
	},
	"E032": {
		Category: CategoryStorage,
		Message:  "Storage backend failure",
		Detail:   "The storage backend returned an error.",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid gamekit.json",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or not recognized.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Config not found",
		Detail:   "No gamekit.json was found.",
	},

	// ============================================
	// CLI Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryCLI,
		Message:  "Unknown example",
		Detail:   "Run 'gamekit list' to see the available examples.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
