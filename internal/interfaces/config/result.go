// Package config
package config

// ValidResult reports the outcome of a config section check. A failing
// result carries the message shown to the operator and, optionally, the
// underlying cause.
type ValidResult struct {
	failed    bool
	err       error
	originErr error
}

func ValidPass() *ValidResult {
	return &ValidResult{}
}

func ValidFail(err error) *ValidResult {
	return &ValidResult{failed: true, err: err}
}

func ValidFailWith(err error, originErr error) *ValidResult {
	return &ValidResult{failed: true, err: err, originErr: originErr}
}

func (result *ValidResult) IsFail() bool { return result.failed }

func (result *ValidResult) Error() error { return result.err }

func (result *ValidResult) OriginErr() error { return result.originErr }
