package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# clogfmt configuration
# See 'clogfmt config -h' for commands, 'clogfmt config keys' for all options

path: CHANGELOG.md                    # Changelog formatted when no path is given
repo_root_fallback: true              # Fall back to <git root>/CHANGELOG.md when path is missing
recursive: false                      # Walk directories for every CHANGELOG.md
jobs: 0                               # Files formatted in parallel (0 = one per CPU, max 256)
color: auto                           # auto | always | never (NO_COLOR is respected)

# Show command settings
show:
  last: 5                             # Versions shown by 'clogfmt show' without arguments
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}
