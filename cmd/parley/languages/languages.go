// Package languagescmder provides the languages command for listing and
// demonstrating the supported languages.
package languagescmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parleyco/parley/pkg/cliui"
	"github.com/parleyco/parley/pkg/language"
)

const languagesLongDesc string = `Languages lists the supported languages and their localized phrases.

Examples:
  parley languages
  parley languages demo
  parley languages translate
`

const languagesShortDesc string = "Languages - list and demo supported languages"

func NewLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: languagesShortDesc,
		Long:  languagesLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Greet in every supported language",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDemo()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "translate",
		Short: "Show the thank-you phrase across languages",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTranslate()
		},
	})

	return cmd
}

func runList() error {
	registry := language.NewRegistry()
	defaultKey := registry.Default().Key

	fmt.Println(cliui.StepStyle.Render("Supported languages:"))
	for _, lang := range registry.All() {
		marker := " "
		if lang.Key == defaultKey {
			marker = "*"
		}
		fmt.Printf("%s %s %s %s\n",
			cliui.DimStyle.Render(marker),
			cliui.NameStyle.Render(fmt.Sprintf("%-4s", lang.Key)),
			cliui.ValueStyle.Render(fmt.Sprintf("%-10s", lang.Name)),
			cliui.DimStyle.Render(lang.Code),
		)
	}
	fmt.Println(cliui.DimStyle.Render("* default"))

	return nil
}

func runDemo() error {
	for _, lang := range language.NewRegistry().All() {
		fmt.Printf("%s %s\n",
			cliui.NameStyle.Render(fmt.Sprintf("%-10s", lang.Name)),
			cliui.ValueStyle.Render(lang.Greeting),
		)
	}

	return nil
}

func runTranslate() error {
	registry := language.NewRegistry()
	thanks := language.Thanks()

	fmt.Println(cliui.StepStyle.Render("\"Thank you\" around the world:"))
	for _, lang := range registry.All() {
		phrase, ok := thanks[lang.Key]
		if !ok {
			continue
		}
		fmt.Printf("%s %s\n",
			cliui.NameStyle.Render(fmt.Sprintf("%-10s", lang.Name)),
			cliui.ValueStyle.Render(phrase),
		)
	}

	return nil
}
