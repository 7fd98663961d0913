// Package configcmder provides the config command for managing persistent
// parley configuration stored in the .parley/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent parley configuration.

Configuration is stored as config.toml in the .parley/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  agent.voice, agent.language, agent.stream_delay_ms,
  api.listen, client.api_target,
  storage.driver, storage.sqlite_path, storage.postgres_url,
  events.enabled, events.brokers, events.topic

Use subcommands to get, set, or list configuration values:
  parley config set <key> <value>    Set a configuration value
  parley config get <key>            Get a configuration value
  parley config list                 List all configuration values

Examples:
  parley config set agent.voice calm
  parley config set agent.language es
  parley config get agent.voice
  parley config list`

const configShortDesc string = "Manage persistent parley configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
