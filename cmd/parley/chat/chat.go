// Package chatcmder provides the chat command for an interactive
// conversation with the simulated voice agent.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/parleyco/parley/pkg/agent"
	"github.com/parleyco/parley/pkg/cliui"
	"github.com/parleyco/parley/pkg/config"
	"github.com/parleyco/parley/pkg/dotdir"
	"github.com/parleyco/parley/pkg/logger"
)

// chatLogFile is the JSON debug log written under .parley/ with --debug.
const chatLogFile = "chat.log"

var (
	userPrompt  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	agentPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("agent> ")
)

type chatCommander struct {
	voice       string
	language    string
	streamDelay uint
	apiTarget   string
	remote      bool
	debug       bool

	logger *zap.Logger
}

const chatLongDesc string = `Start an interactive chat session with the simulated voice agent.

Responses stream word by word with a simulated per-fragment delay, the
same way a real text-to-speech agent would begin speaking before the
full response is ready.

In-session commands:
  /voice <key>     Switch the voice profile
  /lang <key>      Switch the language
  /voices          List available voice profiles
  /langs           List supported languages
  /demo            Run the streaming vs non-streaming comparison
  /help            Show the in-session command reference
  /exit            End the conversation

With --remote, responses are generated by a running parley API server
instead of in-process.

Examples:
  parley chat
  parley chat --voice calm --language es
  parley chat --remote --api-target http://localhost:8080`

const chatShortDesc string = "Interactive chat with the simulated voice agent"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
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

			if !cmd.Flags().Changed(config.FlagVoice) {
				cmder.voice = cfg.Agent.Voice
			}
			if !cmd.Flags().Changed(config.FlagLanguage) {
				cmder.language = cfg.Agent.Language
			}
			if !cmd.Flags().Changed(config.FlagStreamDelay) {
				cmder.streamDelay = cfg.Agent.StreamDelayMs
			}
			if !cmd.Flags().Changed(config.FlagAPITarget) {
				cmder.apiTarget = cfg.Client.APITarget
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	fs := config.DefaultFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagVoice, &cmder.voice)
	config.AddStringFlag(cmd, fs, config.FlagLanguage, &cmder.language)
	config.AddUintFlag(cmd, fs, config.FlagStreamDelay, &cmder.streamDelay)
	config.AddStringFlag(cmd, fs, config.FlagAPITarget, &cmder.apiTarget)
	cmd.Flags().BoolVar(&cmder.remote, "remote", false, "Generate responses via a running parley API server")

	return cmd
}

func (c *chatCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	agentLogger, closeLog := c.newAgentLogger()
	defer closeLog()

	a, err := agent.New(agent.Config{
		Voice:       c.voice,
		Language:    c.language,
		StreamDelay: time.Duration(c.streamDelay) * time.Millisecond,
		Logger:      agentLogger,
	})
	if err != nil {
		return err
	}

	// Ctrl+C ends the conversation with a localized goodbye rather than
	// a bare interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Printf("\n\n%s%s\n", agentPrompt, a.Goodbye())
		os.Exit(0)
	}()

	// Suppress the banner and prompts when input is piped in, so that
	// `echo "hi" | parley chat` emits just the conversation.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		fmt.Println()
		fmt.Printf("  %s %s %s\n",
			cliui.KeyStyle.Render("Voice:"),
			cliui.NameStyle.Render(a.Voice().Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s)", a.Voice().Personality)),
		)
		fmt.Printf("  %s %s %s\n",
			cliui.KeyStyle.Render("Language:"),
			cliui.NameStyle.Render(a.Language().Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s)", a.Language().Code)),
		)
		if c.remote {
			fmt.Printf("  %s %s\n",
				cliui.KeyStyle.Render("Remote:"),
				cliui.ValueStyle.Render(c.apiTarget),
			)
		}
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))
	}

	fmt.Printf("%s%s\n\n", agentPrompt, a.Greeting())

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Print(userPrompt)
		}
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if c.handleCommand(a, input) {
				break
			}
			continue
		}

		fmt.Print(agentPrompt)
		if c.remote {
			if err := c.sendAndStream(a, input); err != nil {
				fmt.Println()
				fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
				continue
			}
		} else {
			a.Process(context.Background(), os.Stdout, input)
		}

		fmt.Println()
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Printf("\n%s%s\n", agentPrompt, a.Goodbye())
	return nil
}

// handleCommand dispatches a /command. It returns true when the session
// should end.
func (c *chatCommander) handleCommand(a *agent.Agent, input string) bool {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/exit", "/quit":
		return true

	case "/voice":
		if len(args) != 1 {
			fmt.Fprintf(os.Stderr, "  %s usage: /voice <key>\n\n", cliui.FailMark)
			return false
		}
		if err := a.SetVoice(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n\n", cliui.FailMark, err)
			return false
		}
		v := a.Voice()
		fmt.Printf("  %s Voice switched to %s %s\n\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(v.Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s, speed %.2g, pitch %.3g)", v.Personality, v.Speed, v.Pitch)),
		)

	case "/lang", "/language":
		if len(args) != 1 {
			fmt.Fprintf(os.Stderr, "  %s usage: /lang <key>\n\n", cliui.FailMark)
			return false
		}
		if err := a.SetLanguage(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n\n", cliui.FailMark, err)
			return false
		}
		l := a.Language()
		fmt.Printf("  %s Language switched to %s %s\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(l.Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s)", l.Code)),
		)
		fmt.Printf("%s%s\n\n", agentPrompt, l.Greeting)

	case "/voices":
		fmt.Println()
		for _, v := range a.Voices().All() {
			marker := " "
			if v.Key == a.Voice().Key {
				marker = cliui.SuccessMark
			}
			fmt.Printf("  %s %s  %s\n",
				marker,
				cliui.KeyStyle.Render(fmt.Sprintf("%-12s", v.Key)),
				cliui.DimStyle.Render(v.Personality),
			)
		}
		fmt.Println()

	case "/langs", "/languages":
		fmt.Println()
		for _, l := range a.Languages().All() {
			marker := " "
			if l.Key == a.Language().Key {
				marker = cliui.SuccessMark
			}
			fmt.Printf("  %s %s  %s %s\n",
				marker,
				cliui.KeyStyle.Render(fmt.Sprintf("%-4s", l.Key)),
				cliui.NameStyle.Render(fmt.Sprintf("%-10s", l.Name)),
				cliui.DimStyle.Render(l.Code),
			)
		}
		fmt.Println()

	case "/demo":
		fmt.Println()
		if err := agent.ComparisonDemo(context.Background(), os.Stdout, agent.DemoBlockingWait, c.delay()); err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
		}
		fmt.Println()

	case "/help":
		fmt.Println(renderChatHelp())

	default:
		fmt.Fprintf(os.Stderr, "  %s unknown command %q (try /help for the command reference)\n\n",
			cliui.FailMark, cmd)
	}

	return false
}

const chatHelpMarkdown = `# In-session commands

| Command | Effect |
| ------- | ------ |
| ` + "`/voice <key>`" + ` | Switch the voice profile |
| ` + "`/lang <key>`" + ` | Switch the language (greets in the new language) |
| ` + "`/voices`" + ` | List available voice profiles |
| ` + "`/langs`" + ` | List supported languages |
| ` + "`/demo`" + ` | Run the streaming vs non-streaming comparison |
| ` + "`/help`" + ` | Show this reference |
| ` + "`/exit`" + ` | End the conversation |
`

// renderChatHelp renders the command reference through glamour, falling
// back to the raw markdown when the terminal renderer cannot be built.
func renderChatHelp() string {
	rendered, err := cliui.RenderMarkdown(chatHelpMarkdown)
	if err != nil {
		return chatHelpMarkdown
	}
	return rendered
}

// newAgentLogger builds the slog logger handed to the agent. Records are
// pretty-printed to stderr so they never interleave with the conversation
// stream on stdout. With --debug they also fan out as JSON to
// .parley/chat.log for later inspection.
func (c *chatCommander) newAgentLogger() (*slog.Logger, func()) {
	pretty := logger.New(
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
	)

	if !c.debug {
		return pretty, func() {}
	}

	target, err := dotdir.NewManager().Target("")
	if err != nil {
		return pretty, func() {}
	}

	f, err := os.OpenFile(filepath.Join(target, chatLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return pretty, func() {}
	}

	jsonLog := logger.New(
		logger.WithJSON(true),
		logger.WithDebug(true),
		logger.WithWriter(f),
	)

	return logger.Multi(pretty, jsonLog), func() { _ = f.Close() }
}

func (c *chatCommander) delay() time.Duration {
	if c.streamDelay == 0 {
		return agent.DefaultStreamDelay
	}
	return time.Duration(c.streamDelay) * time.Millisecond
}
