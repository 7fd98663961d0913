package chatcmder_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	chatcmder "github.com/parleyco/parley/cmd/parley/chat"
)

var _ = Describe("NewChatCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := chatcmder.NewChatCmd()
		Expect(cmd.Use).To(Equal("chat"))
	})

	It("has a --voice flag with the friendly default", func() {
		cmd := chatcmder.NewChatCmd()
		flag := cmd.Flags().Lookup("voice")
		Expect(flag).NotTo(BeNil())
		Expect(flag.DefValue).To(Equal("friendly"))
	})

	It("has a --language flag with the en default", func() {
		cmd := chatcmder.NewChatCmd()
		flag := cmd.Flags().Lookup("language")
		Expect(flag).NotTo(BeNil())
		Expect(flag.Shorthand).To(Equal("l"))
		Expect(flag.DefValue).To(Equal("en"))
	})

	It("has a --stream-delay flag with the 50ms default", func() {
		cmd := chatcmder.NewChatCmd()
		flag := cmd.Flags().Lookup("stream-delay")
		Expect(flag).NotTo(BeNil())
		Expect(flag.DefValue).To(Equal("50"))
	})

	It("has an --api-target flag with the local default", func() {
		cmd := chatcmder.NewChatCmd()
		flag := cmd.Flags().Lookup("api-target")
		Expect(flag).NotTo(BeNil())
		Expect(flag.Shorthand).To(Equal("a"))
		Expect(flag.DefValue).To(Equal("http://localhost:8080"))
	})

	It("has a --remote flag defaulting to false", func() {
		cmd := chatcmder.NewChatCmd()
		flag := cmd.Flags().Lookup("remote")
		Expect(flag).NotTo(BeNil())
		Expect(flag.DefValue).To(Equal("false"))
	})
})

var _ = Describe("Stream chunk format", func() {
	// These tests validate the NDJSON chunk format the chat command
	// exchanges with the API server's streaming endpoint.

	type streamChunk struct {
		Text     string `json:"text,omitempty"`
		Index    int    `json:"index"`
		Done     bool   `json:"done"`
		Response string `json:"response,omitempty"`
	}

	It("parses a fragment chunk", func() {
		var chunk streamChunk
		err := json.Unmarshal([]byte(`{"text":"Hello ","index":0,"done":false}`), &chunk)
		Expect(err).NotTo(HaveOccurred())
		Expect(chunk.Text).To(Equal("Hello "))
		Expect(chunk.Index).To(Equal(0))
		Expect(chunk.Done).To(BeFalse())
	})

	It("parses a final chunk", func() {
		var chunk streamChunk
		err := json.Unmarshal([]byte(`{"index":0,"done":true,"response":"Hello"}`), &chunk)
		Expect(err).NotTo(HaveOccurred())
		Expect(chunk.Done).To(BeTrue())
		Expect(chunk.Response).To(Equal("Hello"))
	})
})
