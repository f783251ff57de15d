package utils

import "fmt"

// Public account codes keep the legacy zero-padded scheme: M000042, R000007,
// D000013. They are derived from the row id, so they stay sequential per role.
func AccountCode(prefix string, id uint) string {
	return fmt.Sprintf("%s%06d", prefix, id)
}
