// Package voicescmder provides the voices command for browsing voice profiles.
package voicescmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/cliui"
	"github.com/parleyco/parley/pkg/config"
	"github.com/parleyco/parley/pkg/voice"
)

const voicesLongDesc string = `Voices lists and demonstrates the available voice profiles.

Examples:
  parley voices
  parley voices show energetic
  parley voices demo
  parley voices demo --stream-delay 20
  parley voices browse
`

const voicesShortDesc string = "Voices - list and demo voice profiles"

type voicesCommander struct {
	streamDelay uint
}

func NewVoicesCmd() *cobra.Command {
	cmder := &voicesCommander{}

	cmd := &cobra.Command{
		Use:   "voices",
		Short: voicesShortDesc,
		Long:  voicesLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.runList()
		},
	}

	cmd.AddCommand(newShowCmd(cmder))
	cmd.AddCommand(newDemoCmd(cmder))
	cmd.AddCommand(newBrowseCmd())

	return cmd
}

func newShowCmd(cmder *voicesCommander) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show the full settings of a voice profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmder.runShow(args[0])
		},
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return voice.NewRegistry().Keys(), cobra.ShellCompDirectiveNoFileComp
		},
	}
}

func newDemoCmd(cmder *voicesCommander) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Speak a sample line in every voice profile",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed(config.FlagStreamDelay) {
				cmder.streamDelay = cfg.Agent.StreamDelayMs
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.runDemo(cmd.Context())
		},
	}

	fs := config.DefaultFlagSet()
	config.AddUintFlag(cmd, fs, config.FlagStreamDelay, &cmder.streamDelay)

	return cmd
}

func (c *voicesCommander) runList() error {
	registry := voice.NewRegistry()
	defaultKey := registry.Default().Key

	fmt.Println(cliui.StepStyle.Render("Available voice profiles:"))
	for _, profile := range registry.All() {
		marker := " "
		if profile.Key == defaultKey {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n",
			cliui.DimStyle.Render(marker),
			cliui.NameStyle.Render(fmt.Sprintf("%-12s", profile.Key)),
			cliui.ValueStyle.Render(profile.Personality),
		)
	}
	fmt.Println(cliui.DimStyle.Render("* default"))

	return nil
}

func (c *voicesCommander) runShow(key string) error {
	profile, err := voice.NewRegistry().Get(key)
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value string
	}{
		{"name", profile.Name},
		{"voice_id", profile.VoiceID},
		{"speed", fmt.Sprintf("%.2f", profile.Speed)},
		{"pitch", fmt.Sprintf("%.2f", profile.Pitch)},
		{"personality", profile.Personality},
	}

	fmt.Println(cliui.NameStyle.Render(profile.Key))
	for _, row := range rows {
		fmt.Printf("  %s %s\n",
			cliui.KeyStyle.Render(fmt.Sprintf("%-12s", row.label)),
			cliui.ValueStyle.Render(row.value),
		)
	}

	return nil
}

func (c *voicesCommander) runDemo(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	delay := agent.DefaultStreamDelay
	if c.streamDelay > 0 {
		delay = time.Duration(c.streamDelay) * time.Millisecond
	}

	for _, profile := range voice.NewRegistry().All() {
		fmt.Printf("%s %s\n",
			cliui.NameStyle.Render(profile.Key),
			cliui.DimStyle.Render(fmt.Sprintf("(speed %.2f, pitch %.2f)", profile.Speed, profile.Pitch)),
		)

		start := time.Now()
		agent.Speak(os.Stdout, agent.Stream(ctx, sampleLine(profile), delay))
		fmt.Printf("\n%s\n\n", cliui.DimStyle.Render(fmt.Sprintf("spoken in %s", cliui.FormatDuration(time.Since(start)))))

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

func sampleLine(profile voice.Profile) string {
	return fmt.Sprintf("Hi, I am the %s voice. My style is %s.", profile.Name, profile.Personality)
}
