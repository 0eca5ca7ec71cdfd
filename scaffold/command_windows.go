//go:build windows

package scaffold

// platformCommand adapts a base command for Windows, where npm-installed
// executables are .cmd shims that exec cannot spawn by bare name.
func platformCommand(base string) string {
	return base + ".cmd"
}
