package initcmder_test

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/parleyco/parley/cmd/parley/init"
	"github.com/parleyco/parley/pkg/config"
)

var _ = Describe("NewInitCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Use).To(Equal("init"))
	})

	It("rejects any arguments", func() {
		cmd := initcmder.NewInitCmd()
		err := cmd.Args(cmd, []string{"extra"})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Init command execution", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "parley-init-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	It("creates a .parley directory in the current directory", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		info, err := os.Stat(filepath.Join(tmpDir, ".parley"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("creates a config.toml with default values", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Version).To(Equal(config.CurrentV))
		Expect(cfg.Agent.Voice).To(Equal("friendly"))
		Expect(cfg.Agent.Language).To(Equal("en"))
		Expect(cfg.Agent.StreamDelayMs).To(Equal(uint(50)))
		Expect(cfg.API.Listen).To(Equal(":8080"))
		Expect(cfg.Storage.Driver).To(Equal("memory"))
	})

	It("succeeds when .parley directory already exists", func() {
		err := os.MkdirAll(filepath.Join(tmpDir, ".parley"), 0o755)
		Expect(err).NotTo(HaveOccurred())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err = cmd.Execute()
		Expect(err).NotTo(HaveOccurred())
	})

	It("does not overwrite an existing config.toml", func() {
		parleyDir := filepath.Join(tmpDir, ".parley")
		err := os.MkdirAll(parleyDir, 0o755)
		Expect(err).NotTo(HaveOccurred())

		custom := "version = 0\n\n[agent]\nvoice = \"calm\"\n"
		err = os.WriteFile(filepath.Join(parleyDir, "config.toml"), []byte(custom), 0o644)
		Expect(err).NotTo(HaveOccurred())

		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{})
		err = cmd.Execute()
		Expect(err).NotTo(HaveOccurred())

		cfg := loadConfig(tmpDir)
		Expect(cfg.Agent.Voice).To(Equal("calm"))
	})
})

// loadConfig is a test helper that reads and parses the config.toml from the
// .parley directory within the given base directory.
func loadConfig(baseDir string) *config.Config {
	configPath := filepath.Join(baseDir, ".parley", "config.toml")
	data, err := os.ReadFile(configPath)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	cfg := &config.Config{}
	err = toml.Unmarshal(data, cfg)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return cfg
}
