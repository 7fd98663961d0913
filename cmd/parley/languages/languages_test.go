package languagescmder

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Languages command", func() {
	It("registers the demo and translate subcommands", func() {
		cmd := NewLanguagesCmd()

		names := []string{}
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("demo", "translate"))
	})

	It("rejects positional arguments", func() {
		cmd := NewLanguagesCmd()
		cmd.SetArgs([]string{"nope"})

		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})
})
