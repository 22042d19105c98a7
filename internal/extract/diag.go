package extract

import "log"

// Diag receives progress and warning messages from the extractors. The
// messages are operator-facing diagnostics, not part of any contract.
type Diag interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopDiag struct{}

func (nopDiag) Infof(string, ...interface{}) {}
func (nopDiag) Warnf(string, ...interface{}) {}

// NopDiag discards all diagnostics. Default for library callers.
func NopDiag() Diag { return nopDiag{} }

type logDiag struct {
	prefix string
}

// StdDiag writes diagnostics through the process logger with the given
// prefix, e.g. "[schedule]".
func StdDiag(prefix string) Diag { return logDiag{prefix: prefix} }

func (d logDiag) Infof(format string, args ...interface{}) {
	log.Printf(d.prefix+" [INFO] "+format, args...)
}

func (d logDiag) Warnf(format string, args ...interface{}) {
	log.Printf(d.prefix+" [WARN] "+format, args...)
}
