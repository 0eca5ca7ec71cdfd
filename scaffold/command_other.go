//go:build !windows

package scaffold

// platformCommand returns the base command unchanged on non-Windows platforms.
func platformCommand(base string) string {
	return base
}
