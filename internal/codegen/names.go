// Package codegen provides naming helpers and identifiers for generated code.
package codegen

// Identifiers used inside generated matchers.
const (
	InputName = "input"
	StateName = "state"
	LabelName = "c"
	OkName    = "ok"

	// StartID is the numeric id of the start state in generated code.
	StartID = 0
)

// StepFuncName returns the name of the transition function for a matcher.
func StepFuncName(name string) string {
	return LowerFirst(name) + "Step"
}

// AcceptFuncName returns the name of the acceptance check for a matcher.
func AcceptFuncName(name string) string {
	return LowerFirst(name) + "Accepting"
}

// CompiledName returns the name of the ready-to-use matcher variable.
func CompiledName(name string) string {
	return "Compiled" + UpperFirst(name)
}

// LowerFirst converts the first character of an ASCII identifier to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	return string(c) + s[1:]
}

// UpperFirst converts the first character of an ASCII identifier to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return string(c) + s[1:]
}

// IsIdentifier reports whether s is a valid exported-or-unexported Go
// identifier made of ASCII letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
