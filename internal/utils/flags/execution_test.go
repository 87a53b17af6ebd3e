package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newScanFlagCommand() *cobra.Command {
	command := &cobra.Command{}
	AddToggleFlag(command.Flags(), nil, RecursiveFlagName, RecursiveFlagShorthand, false, RecursiveFlagUsage)
	AddToggleFlag(command.Flags(), nil, SkipCleanFlagName, "", false, SkipCleanFlagUsage)
	AddToggleFlag(command.Flags(), nil, ColorFlagName, "", true, ColorFlagUsage)
	return command
}

func TestResolveScanFlagsReportsExplicitToggles(t *testing.T) {
	command := newScanFlagCommand()

	parseError := command.ParseFlags([]string{"--recursive", "--color=no"})
	require.NoError(t, parseError)

	values, resolved := ResolveScanFlags(command)
	require.True(t, resolved)
	require.True(t, values.Recursive)
	require.True(t, values.RecursiveSet)
	require.False(t, values.SkipClean)
	require.False(t, values.SkipCleanSet)
	require.False(t, values.Color)
	require.True(t, values.ColorSet)
}

func TestResolveScanFlagsReportsDefaultsWhenUnset(t *testing.T) {
	command := newScanFlagCommand()

	parseError := command.ParseFlags(nil)
	require.NoError(t, parseError)

	values, resolved := ResolveScanFlags(command)
	require.True(t, resolved)
	require.False(t, values.Recursive)
	require.False(t, values.RecursiveSet)
	require.True(t, values.Color)
	require.False(t, values.ColorSet)
}

func TestResolveScanFlagsAcceptsShorthandRecursion(t *testing.T) {
	command := newScanFlagCommand()

	parseError := command.ParseFlags([]string{"-r"})
	require.NoError(t, parseError)

	values, resolved := ResolveScanFlags(command)
	require.True(t, resolved)
	require.True(t, values.Recursive)
	require.True(t, values.RecursiveSet)
}

func TestResolveScanFlagsWithoutRegisteredFlags(t *testing.T) {
	values, resolved := ResolveScanFlags(&cobra.Command{})
	require.False(t, resolved)
	require.Equal(t, ScanFlagValues{}, values)
}

func TestResolveScanFlagsHandlesNilCommand(t *testing.T) {
	values, resolved := ResolveScanFlags(nil)
	require.False(t, resolved)
	require.Equal(t, ScanFlagValues{}, values)
}
