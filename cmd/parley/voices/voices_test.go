package voicescmder

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/voice"
)

var _ = Describe("Voices command", func() {
	Describe("NewVoicesCmd", func() {
		It("registers the show, demo, and browse subcommands", func() {
			cmd := NewVoicesCmd()

			names := []string{}
			for _, sub := range cmd.Commands() {
				names = append(names, sub.Name())
			}
			Expect(names).To(ContainElements("show", "demo", "browse"))
		})

		It("exposes the stream-delay flag on demo", func() {
			cmd := NewVoicesCmd()

			for _, sub := range cmd.Commands() {
				if sub.Name() != "demo" {
					continue
				}
				flag := sub.Flags().Lookup("stream-delay")
				Expect(flag).NotTo(BeNil())
				Expect(flag.DefValue).To(Equal("50"))
			}
		})
	})

	Describe("sampleLine", func() {
		It("names the profile and its personality", func() {
			profile, err := voice.NewRegistry().Get("calm")
			Expect(err).NotTo(HaveOccurred())

			line := sampleLine(profile)
			Expect(line).To(ContainSubstring("Calm"))
			Expect(line).To(ContainSubstring("calm and soothing"))
		})
	})
})

var _ = Describe("Browse TUI", func() {
	Describe("moveCursor", func() {
		It("clamps at the list bounds", func() {
			model := newBrowseModel(voice.NewRegistry())

			model = model.moveCursor(-1)
			Expect(model.cursor).To(Equal(0))

			for range 10 {
				model = model.moveCursor(1)
			}
			Expect(model.cursor).To(Equal(len(model.profiles) - 1))
		})

		It("ignores movement in the detail view", func() {
			model := newBrowseModel(voice.NewRegistry())
			model.view = viewDetail

			moved := model.moveCursor(1)
			Expect(moved.cursor).To(Equal(model.cursor))
		})
	})

	Describe("viewProfiles", func() {
		It("lists every profile with the cursor on the first row", func() {
			model := newBrowseModel(voice.NewRegistry())
			model.width = 80

			rendered := model.viewProfiles()
			for _, profile := range model.profiles {
				Expect(rendered).To(ContainSubstring(profile.Key))
			}
			Expect(rendered).To(ContainSubstring("> "))
		})
	})

	Describe("viewDetail", func() {
		It("shows the selected profile settings and a sample response", func() {
			model := newBrowseModel(voice.NewRegistry())
			model.width = 80
			model.cursor = 1
			model.view = viewDetail

			rendered := model.viewDetail()
			profile := model.profiles[1]
			Expect(rendered).To(ContainSubstring(profile.Name))
			Expect(rendered).To(ContainSubstring(profile.VoiceID))
			Expect(rendered).To(ContainSubstring("sample response"))
		})
	})

	Describe("wrapText", func() {
		It("keeps lines within the given width", func() {
			wrapped := wrapText("one two three four five six seven eight", 12)
			for _, line := range strings.Split(wrapped, "\n") {
				Expect(len(line)).To(BeNumerically("<=", 12))
			}
		})

		It("returns empty output for empty input", func() {
			Expect(wrapText("", 20)).To(Equal(""))
		})
	})

	Describe("clamp", func() {
		It("bounds values into [0, max]", func() {
			Expect(clamp(-3, 5)).To(Equal(0))
			Expect(clamp(2, 5)).To(Equal(2))
			Expect(clamp(9, 5)).To(Equal(5))
			Expect(clamp(0, -1)).To(Equal(0))
		})
	})
})
