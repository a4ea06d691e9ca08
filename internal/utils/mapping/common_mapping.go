package mapping

// strPtr returns a pointer to s, or nil when s is empty. Used to map optional
// domain strings onto nullable columns.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref returns the pointed-to string, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
