// Package event holds the NZBGet invocation context: an immutable snapshot of
// the environment variables NZBGet passes to extension scripts, plus the
// classification of which flow a given invocation belongs to.
package event

import (
	"fmt"
	"maps"
	"strings"

	"github.com/joho/godotenv"
)

// MissingKeyError reports a variable that a flow requires but NZBGet did not
// pass.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("event: required variable %s is not set", e.Key)
}

// Context is a read-only view of the environment captured once at start-up.
// The zero value is an empty context.
type Context struct {
	vars map[string]string
}

// New returns a Context holding a copy of vars.
func New(vars map[string]string) Context {
	return Context{vars: maps.Clone(vars)}
}

// FromEnviron builds a Context from KEY=VALUE pairs as returned by
// os.Environ. Entries without '=' are ignored; the first '=' splits key and
// value so values may contain '='.
func FromEnviron(environ []string) Context {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = value
	}
	return Context{vars: vars}
}

// LoadEnvFile reads a dotenv file. Its values are meant to be passed to
// WithDefaults so the real environment keeps precedence.
func LoadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("event: read env file %s: %w", path, err)
	}
	return vars, nil
}

// WithDefaults returns a new Context where keys missing from c are filled in
// from defaults. Keys already present in c are never overwritten.
func (c Context) WithDefaults(defaults map[string]string) Context {
	merged := make(map[string]string, len(c.vars)+len(defaults))
	maps.Copy(merged, defaults)
	maps.Copy(merged, c.vars)
	return Context{vars: merged}
}

// Lookup returns the value of key and whether it was set.
func (c Context) Lookup(key string) (string, bool) {
	v, ok := c.vars[key]
	return v, ok
}

// Get returns the value of key, or "" when it is not set.
func (c Context) Get(key string) string {
	return c.vars[key]
}

// Has reports whether key was set, even to an empty value.
func (c Context) Has(key string) bool {
	_, ok := c.vars[key]
	return ok
}

// Require returns the value of key or a *MissingKeyError.
func (c Context) Require(key string) (string, error) {
	v, ok := c.vars[key]
	if !ok {
		return "", &MissingKeyError{Key: key}
	}
	return v, nil
}

// FromNZBGet reports whether the process was started by NZBGet 11.0 or later,
// which always exports NZBOP_SCRIPTDIR.
func (c Context) FromNZBGet() bool {
	return c.Has(KeyScriptDir)
}

// CorrelationID returns the NZB id of the job the event belongs to, taken
// from the queue context first and the post-processing context second.
func (c Context) CorrelationID() string {
	if id := c.Get(KeyQueueNZBID); id != "" {
		return id
	}
	return c.Get(KeyPostNZBID)
}
