package flags

const (
	// RecursiveFlagName exposes the shared recursive scan flag name.
	RecursiveFlagName = "recursive"
	// RecursiveFlagShorthand provides the shorthand for the recursive scan flag.
	RecursiveFlagShorthand = "r"
	// RecursiveFlagUsage describes the recursive scan flag purpose.
	RecursiveFlagUsage = "Recurse into subdirectories (default: only immediate children)"
	// SkipCleanFlagName exposes the shared skip-clean flag name.
	SkipCleanFlagName = "skip-clean"
	// SkipCleanFlagUsage describes the skip-clean flag purpose.
	SkipCleanFlagUsage = "Do not print clean repositories"
	// ColorFlagName exposes the shared color flag name.
	ColorFlagName = "color"
	// ColorFlagUsage describes the color flag purpose.
	ColorFlagUsage = "Colorize the status report"
)
