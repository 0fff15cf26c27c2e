package helpers

// SparseSet collects column assignments for a partial UPDATE. Absent or empty
// values are skipped so the stored value is kept.
type SparseSet map[string]interface{}

// String sets column when value is present and non-empty
func (s SparseSet) String(column string, value *string) SparseSet {
	if value != nil && *value != "" {
		s[column] = *value
	}
	return s
}

// Float sets column when value is present, zero included
func (s SparseSet) Float(column string, value *float64) SparseSet {
	if value != nil {
		s[column] = *value
	}
	return s
}

// Int sets column when value is present and non-zero
func (s SparseSet) Int(column string, value *int) SparseSet {
	if value != nil && *value != 0 {
		s[column] = *value
	}
	return s
}

// Empty reports whether nothing would be updated
func (s SparseSet) Empty() bool {
	return len(s) == 0
}

// StringOrNil returns nil for an empty string, for nullable columns
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
