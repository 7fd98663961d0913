package sqlite_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/sqlite"
)

func sqliteTestTurn(role conversation.Role, content string) conversation.Turn {
	t := conversation.NewTurn(role, content)
	t.Voice = "friendly"
	t.Language = "en"
	return t
}

var _ = Describe("Store", func() {
	var (
		store *sqlite.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		store, err = sqlite.NewStore(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("NewStore", func() {
		It("creates a store with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			s, err := sqlite.NewStore(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			// Verify file was created
			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Save and Get", func() {
		It("round-trips a turn", func() {
			turn := sqliteTestTurn(conversation.RoleUser, "hello")
			Expect(store.Save(ctx, turn)).To(Succeed())

			got, err := store.Get(ctx, turn.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(turn.ID))
			Expect(got.Role).To(Equal(conversation.RoleUser))
			Expect(got.Content).To(Equal("hello"))
			Expect(got.Voice).To(Equal("friendly"))
			Expect(got.Language).To(Equal("en"))
			Expect(got.CreatedAt).To(BeTemporally("~", turn.CreatedAt))
		})

		It("treats a duplicate save as a no-op", func() {
			turn := sqliteTestTurn(conversation.RoleUser, "hello")
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
			Expect(store.Save(ctx, sqliteTestTurn(conversation.RoleUser, "first"))).To(Succeed())
			Expect(store.Save(ctx, sqliteTestTurn(conversation.RoleAssistant, "second"))).To(Succeed())
			Expect(store.Save(ctx, sqliteTestTurn(conversation.RoleUser, "third"))).To(Succeed())
		})

		It("returns all turns oldest first", func() {
			turns, err := store.List(ctx, transcript.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(3))
		})

		It("filters by role", func() {
			turns, err := store.List(ctx, transcript.Query{Role: conversation.RoleAssistant})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
			Expect(turns[0].Content).To(Equal("second"))
		})

		It("applies a limit", func() {
			turns, err := store.List(ctx, transcript.Query{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(2))
		})

		It("applies an offset without a limit", func() {
			turns, err := store.List(ctx, transcript.Query{Offset: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(1))
		})
	})
})
