package utils

import "time"

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeDerefTime returns the zero time for a nil pointer
func SafeDerefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// SafeDerefFloat returns the value and whether the pointer was set
func SafeDerefFloat(f *float64) (float64, bool) {
	if f == nil {
		return 0, false
	}
	return *f, true
}
