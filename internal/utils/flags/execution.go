// Package flags provides helpers for binding standardized scan flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ScanFlagValues captures scan toggle values resolved from a parsed command.
// The Set fields report whether the invocation supplied the flag explicitly.
type ScanFlagValues struct {
	Recursive    bool
	RecursiveSet bool
	SkipClean    bool
	SkipCleanSet bool
	Color        bool
	ColorSet     bool
}

// ResolveScanFlags extracts scan toggle values from the command once parsing completed.
// The second return value reports whether any scan flag was registered on the command.
func ResolveScanFlags(command *cobra.Command) (ScanFlagValues, bool) {
	if command == nil {
		return ScanFlagValues{}, false
	}

	flagSet := command.Flags()
	values := ScanFlagValues{}
	resolved := false

	if recursiveValue, recursiveChanged, recursiveFound := resolveToggleFlag(flagSet, RecursiveFlagName); recursiveFound {
		values.Recursive = recursiveValue
		values.RecursiveSet = recursiveChanged
		resolved = true
	}

	if skipCleanValue, skipCleanChanged, skipCleanFound := resolveToggleFlag(flagSet, SkipCleanFlagName); skipCleanFound {
		values.SkipClean = skipCleanValue
		values.SkipCleanSet = skipCleanChanged
		resolved = true
	}

	if colorValue, colorChanged, colorFound := resolveToggleFlag(flagSet, ColorFlagName); colorFound {
		values.Color = colorValue
		values.ColorSet = colorChanged
		resolved = true
	}

	return values, resolved
}

func resolveToggleFlag(flagSet *pflag.FlagSet, flagName string) (bool, bool, bool) {
	if flagSet == nil {
		return false, false, false
	}

	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return false, false, false
	}

	parsedValue, parseError := parseToggleValue(flag.Value.String())
	if parseError != nil {
		return false, flagSet.Changed(flagName), true
	}

	return parsedValue, flagSet.Changed(flagName), true
}
