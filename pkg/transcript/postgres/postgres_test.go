package postgres_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyco/parley/pkg/conversation"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/postgres"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("PARLEY_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("PARLEY_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

func postgresTestTurn(role conversation.Role, content string) conversation.Turn {
	t := conversation.NewTurn(role, content)
	t.Voice = "friendly"
	t.Language = "en"
	return t
}

var _ = Describe("Store", func() {
	var (
		store *postgres.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		store, err = postgres.NewStore(ctx, dsn)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	It("round-trips a turn", func() {
		turn := postgresTestTurn(conversation.RoleUser, "hello")
		Expect(store.Save(ctx, turn)).To(Succeed())

		got, err := store.Get(ctx, turn.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Content).To(Equal("hello"))
		Expect(got.Role).To(Equal(conversation.RoleUser))
	})

	It("returns NotFoundError for a missing ID", func() {
		_, err := store.Get(ctx, "missing")
		Expect(err).To(MatchError(transcript.NotFoundError{ID: "missing"}))
	})

	It("lists turns filtered by role", func() {
		user := postgresTestTurn(conversation.RoleUser, "question")
		assistant := postgresTestTurn(conversation.RoleAssistant, "answer")
		Expect(store.Save(ctx, user)).To(Succeed())
		Expect(store.Save(ctx, assistant)).To(Succeed())

		turns, err := store.List(ctx, transcript.Query{Role: conversation.RoleAssistant})
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).NotTo(BeEmpty())
		for _, t := range turns {
			Expect(t.Role).To(Equal(conversation.RoleAssistant))
		}
	})
})
