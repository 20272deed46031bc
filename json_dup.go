package sensorcheck

import (
	"io"

	eng "github.com/reoring/sensorcheck/internal/engine"
	jsonsrc "github.com/reoring/sensorcheck/source/json"
)

// DetectJSONDuplicateKeysBytes lists duplicate object keys in data, in input
// order, stopping after maxIssues entries (maxIssues < 0 means no limit).
// Malformed JSON yields a *DecodeError.
func DetectJSONDuplicateKeysBytes(data []byte, maxIssues int) (Issues, error) {
	var iss Issues
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink: func(si eng.SimpleIssue) {
			iss = AppendIssues(iss, IssueAt(si.Path, si.Code, limitMessage(si), nil))
		},
	})
	for maxIssues < 0 || len(iss) < maxIssues {
		if _, err := src.NextToken(); err != nil {
			if err == io.EOF {
				break
			}
			return nil, syntaxError(data, err)
		}
	}
	return iss, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
