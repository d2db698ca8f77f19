package discovery

import "errors"

// Terminal discovery outcomes. Each is recoverable by the caller; none
// carries scanned memory content.
var (
	// ErrLogNotFound means no candidate log file was located under any
	// of the conventional roots.
	ErrLogNotFound = errors.New("no Antigravity.log found under data or config directories")

	// ErrPortNotFound means the log was read but contained no HTTPS port
	// announcement.
	ErrPortNotFound = errors.New("no HTTPS port announcement found in log")

	// ErrNoCandidateProcess means no running process matched the target
	// names.
	ErrNoCandidateProcess = errors.New("no running Antigravity/Windsurf process found")

	// ErrSecretNotFound means every candidate process was scanned and
	// none yielded a token.
	ErrSecretNotFound = errors.New("no CSRF token found in any candidate process")
)
