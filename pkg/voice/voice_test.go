package voice_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/voice"
)

var _ = Describe("Registry", func() {
	var reg *voice.Registry

	BeforeEach(func() {
		reg = voice.NewRegistry()
	})

	It("contains the four built-in profiles", func() {
		Expect(reg.Keys()).To(Equal([]string{"calm", "energetic", "friendly", "professional"}))
	})

	It("looks up a profile by key", func() {
		p, err := reg.Get("energetic")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name).To(Equal("Energetic"))
		Expect(p.VoiceID).To(Equal("energy_001"))
		Expect(p.Speed).To(Equal(1.2))
		Expect(p.Pitch).To(Equal(1.1))
		Expect(p.Personality).To(Equal("enthusiastic and energetic"))
	})

	It("returns ErrUnknownProfile for a bogus key", func() {
		_, err := reg.Get("robotic")
		Expect(err).To(MatchError(voice.ErrUnknownProfile))
	})

	It("reports membership with Has", func() {
		Expect(reg.Has("calm")).To(BeTrue())
		Expect(reg.Has("robotic")).To(BeFalse())
	})

	It("defaults to the friendly profile", func() {
		Expect(reg.Default().Key).To(Equal(voice.DefaultKey))
		Expect(reg.Default().Name).To(Equal("Friendly"))
	})

	It("lists all profiles ordered by key", func() {
		all := reg.All()
		Expect(all).To(HaveLen(4))
		Expect(all[0].Key).To(Equal("calm"))
		Expect(all[3].Key).To(Equal("professional"))
	})
})
