package servecmder

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.uber.org/zap"

	"github.com/parleyco/parley/pkg/eventstream/nop"
	"github.com/parleyco/parley/pkg/transcript/inmemory"
	"github.com/parleyco/parley/pkg/transcript/sqlite"
)

var _ = Describe("NewServeCmd", func() {
	It("registers the listen flag with the config default", func() {
		cmd := NewServeCmd()

		flag := cmd.Flags().Lookup("listen")
		Expect(flag).NotTo(BeNil())
		Expect(flag.DefValue).To(Equal(":8080"))
	})

	It("registers the storage flags", func() {
		cmd := NewServeCmd()

		Expect(cmd.Flags().Lookup("storage-driver")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("sqlite")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("postgres")).NotTo(BeNil())
	})

	It("registers the event flags", func() {
		cmd := NewServeCmd()

		Expect(cmd.Flags().Lookup("events")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("events-brokers")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("events-topic")).NotTo(BeNil())
	})

	It("rejects positional arguments", func() {
		cmd := NewServeCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("newStore", func() {
	var cmder *serveCommander

	BeforeEach(func() {
		cmder = &serveCommander{logger: zap.NewNop()}
	})

	It("defaults to the in-memory store", func() {
		store, err := cmder.newStore(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer store.Close()

		Expect(store).To(BeAssignableToTypeOf(&inmemory.Store{}))
	})

	It("creates a SQLite store at the given path", func() {
		cmder.storageDriver = "sqlite"
		cmder.sqlitePath = filepath.Join(GinkgoT().TempDir(), "transcript.db")

		store, err := cmder.newStore(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer store.Close()

		Expect(store).To(BeAssignableToTypeOf(&sqlite.Store{}))
	})

	It("requires a connection URL for postgres", func() {
		cmder.storageDriver = "postgres"

		_, err := cmder.newStore(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("postgres"))
	})

	It("rejects unknown drivers", func() {
		cmder.storageDriver = "etcd"

		_, err := cmder.newStore(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unknown storage driver"))
	})
})

var _ = Describe("newPublisher", func() {
	It("returns a no-op publisher when events are disabled", func() {
		cmder := &serveCommander{logger: zap.NewNop()}

		publisher, err := cmder.newPublisher()
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher).To(BeAssignableToTypeOf(&nop.Publisher{}))
	})

	It("requires brokers when events are enabled", func() {
		cmder := &serveCommander{logger: zap.NewNop(), eventsEnabled: true}

		_, err := cmder.newPublisher()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("events-brokers"))
	})

	It("builds a Kafka publisher from comma-separated brokers", func() {
		cmder := &serveCommander{
			logger:        zap.NewNop(),
			eventsEnabled: true,
			eventsBrokers: "localhost:9092,localhost:9093",
			eventsTopic:   "parley.turns",
		}

		publisher, err := cmder.newPublisher()
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher.Close()).To(Succeed())
	})
})
