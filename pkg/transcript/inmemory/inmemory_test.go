package inmemory_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/inmemory"
)

func turnWith(role conversation.Role, content, voice, lang string) conversation.Turn {
	t := conversation.NewTurn(role, content)
	t.Voice = voice
	t.Language = lang
	return t
}

var _ = Describe("Store", func() {
	var (
		store *inmemory.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		store = inmemory.NewStore()
		ctx = context.Background()
	})

	Describe("Save and Get", func() {
		It("round-trips a turn", func() {
			turn := turnWith(conversation.RoleUser, "hello", "friendly", "en")
			Expect(store.Save(ctx, turn)).To(Succeed())

			got, err := store.Get(ctx, turn.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(turn))
		})

		It("treats a duplicate save as a no-op", func() {
			turn := turnWith(conversation.RoleUser, "hello", "friendly", "en")
			Expect(store.Save(ctx, turn)).To(Succeed())
			Expect(store.Save(ctx, turn)).To(Succeed())

			count, err := store.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("returns NotFoundError for a missing ID", func() {
			_, err := store.Get(ctx, "missing")
			Expect(err).To(MatchError(transcript.NotFoundError{ID: "missing"}))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(store.Save(ctx, turnWith(conversation.RoleUser, "first", "friendly", "en"))).To(Succeed())
			Expect(store.Save(ctx, turnWith(conversation.RoleAssistant, "second", "friendly", "en"))).To(Succeed())
			Expect(store.Save(ctx, turnWith(conversation.RoleUser, "third", "calm", "es"))).To(Succeed())
		})

		It("returns all turns in insertion order", func() {
			turns, err := store.List(ctx, transcript.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(3))
			Expect(turns[0].Content).To(Equal("first"))
			Expect(turns[2].Content).To(Equal("third"))
		})

		It("filters by role", func() {
			turns, err := store.List(ctx, transcript.Query{Role: conversation.RoleAssistant})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].Content).To(Equal("second"))
		})

		It("filters by voice and language", func() {
			turns, err := store.List(ctx, transcript.Query{Voice: "calm", Language: "es"})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].Content).To(Equal("third"))
		})

		It("applies limit and offset", func() {
			turns, err := store.List(ctx, transcript.Query{Offset: 1, Limit: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].Content).To(Equal("second"))
		})

		It("returns nothing past the end", func() {
			turns, err := store.List(ctx, transcript.Query{Offset: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(BeEmpty())
		})
	})
})
