package sensorcheck

// IssueAt creates an Issue at the given JSON Pointer with provided code, message and params map.
func IssueAt(path, code, msg string, params map[string]any) Issue {
	return Issue{Path: path, Code: code, Message: msg, Params: params}
}

// RequiredIssue reports the missing property at path.
func RequiredIssue(path string) Issue { return requiredIssue(path) }

// TypeIssue reports a value at path whose JSON type differs from expected.
// The empty path denotes the document root.
func TypeIssue(path, expected, got string) Issue { return typeIssue(path, expected, got) }
