package parleycmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	parleycmder "github.com/parleyco/parley/cmd/parley"
)

var _ = Describe("NewParleyCmd", func() {
	It("registers every subcommand", func() {
		cmd := parleycmder.NewParleyCmd()

		names := []string{}
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements(
			"chat", "config", "demo", "init", "languages", "serve", "voices", "version",
		))
	})

	It("registers the global debug flag", func() {
		cmd := parleycmder.NewParleyCmd()

		flag := cmd.PersistentFlags().Lookup("debug")
		Expect(flag).NotTo(BeNil())
		Expect(flag.Shorthand).To(Equal("d"))
		Expect(flag.DefValue).To(Equal("false"))
	})

	It("registers the global config-dir flag", func() {
		cmd := parleycmder.NewParleyCmd()

		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
	})
})
