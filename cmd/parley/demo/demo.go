// Package democmder provides the demo command contrasting streaming and
// non-streaming response delivery.
package democmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/config"
)

type demoCommander struct {
	streamDelay uint
}

const demoLongDesc string = `Run the streaming vs non-streaming comparison demo.

The non-streaming half waits the full simulated latency before printing
the complete response. The streaming half prints each word as it is
produced. Both halves deliver exactly the same text; streaming only
changes when the user starts seeing it.

Examples:
  parley demo
  parley demo --stream-delay 25`

const demoShortDesc string = "Compare streaming and non-streaming response delivery"

func NewDemoCmd() *cobra.Command {
	cmder := &demoCommander{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: demoShortDesc,
		Long:  demoLongDesc,
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
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	fs := config.DefaultFlagSet()
	config.AddUintFlag(cmd, fs, config.FlagStreamDelay, &cmder.streamDelay)

	return cmd
}

func (c *demoCommander) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	delay := agent.DefaultStreamDelay
	if c.streamDelay > 0 {
		delay = time.Duration(c.streamDelay) * time.Millisecond
	}

	fmt.Println()
	return agent.ComparisonDemo(ctx, os.Stdout, agent.DemoBlockingWait, delay)
}
