package sensorcheck

// UnknownPolicy controls how keys that the schema does not declare are handled.
type UnknownPolicy int

const (
	UnknownIgnore UnknownPolicy = iota // Accept and skip undeclared keys.
	UnknownStrict                      // Reject undeclared keys with an error.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// ParseOpt bundles parsing options. The zero value accepts any JSON text,
// letting the last duplicate key win.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 means unlimited.
	MaxBytes   int64 // 0 means unlimited.
	// OnWarning receives non-fatal issues such as duplicate keys in Warn mode.
	OnWarning func(Issue)
}

// ValidateOpt bundles validation options.
type ValidateOpt struct {
	// CollectAll gathers every issue instead of stopping at the first one.
	CollectAll bool
}
