package ptr

func ToString(s string) *string {
	return &s
}

// FromString safely dereferences a string pointer, returning empty string if nil
func FromString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EqualString reports whether both pointers are nil or point to equal strings.
func EqualString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CloneString returns a fresh pointer holding the same value, or nil.
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	return ToString(*s)
}
