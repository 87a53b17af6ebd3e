package status

import "strings"

const (
	configurationRootsKeyConstant     = "roots"
	configurationRecursiveKeyConstant = "recursive"
	configurationSkipCleanKeyConstant = "skip_clean"
	configurationColorKeyConstant     = "color"
	defaultRootPathConstant           = "."
)

// CommandConfiguration captures persistent settings for the status scan command.
type CommandConfiguration struct {
	Roots     []string `mapstructure:"roots"`
	Recursive bool     `mapstructure:"recursive"`
	SkipClean bool     `mapstructure:"skip_clean"`
	Color     bool     `mapstructure:"color"`
}

// DefaultCommandConfiguration returns baseline configuration values for the status scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:     []string{defaultRootPathConstant},
		Recursive: false,
		SkipClean: false,
		Color:     true,
	}
}

// DefaultConfigurationValues produces Viper defaults for the status scan command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:     defaults.Roots,
		rootKey + "." + configurationRecursiveKeyConstant: defaults.Recursive,
		rootKey + "." + configurationSkipCleanKeyConstant: defaults.SkipClean,
		rootKey + "." + configurationColorKeyConstant:     defaults.Color,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Roots = sanitizeConfiguredRoots(configuration.Roots)
	if len(sanitized.Roots) == 0 {
		sanitized.Roots = append([]string{}, defaultRootPathConstant)
	}

	return sanitized
}

func sanitizeConfiguredRoots(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
