// Package parleycmder
package parleycmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/parleyco/parley/cmd/parley/chat"
	configcmder "github.com/parleyco/parley/cmd/parley/config"
	democmder "github.com/parleyco/parley/cmd/parley/demo"
	initcmder "github.com/parleyco/parley/cmd/parley/init"
	languagescmder "github.com/parleyco/parley/cmd/parley/languages"
	servecmder "github.com/parleyco/parley/cmd/parley/serve"
	voicescmder "github.com/parleyco/parley/cmd/parley/voices"
	versioncmder "github.com/parleyco/parley/cmd/version"
)

const parleyLongDesc string = `Parley is a simulated voice agent for the terminal.

Talk to the agent using:
  parley chat          Interactive conversation loop
  parley demo          Streaming vs non-streaming comparison
  parley serve         Run the HTTP API server

Explore the catalogs using:
  parley voices        Voice profiles
  parley languages     Supported languages`

const parleyShortDesc string = "Parley - Simulated Voice Agent"

func NewParleyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parley",
		Short: parleyShortDesc,
		Long:  parleyLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .parley/ config directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(democmder.NewDemoCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(languagescmder.NewLanguagesCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(voicescmder.NewVoicesCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
