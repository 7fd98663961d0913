package sse

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writer", func() {
	var dst *bytes.Buffer

	BeforeEach(func() {
		dst = &bytes.Buffer{}
	})

	It("emits the event, id, and data fields in order", func() {
		w := NewWriter(dst)

		err := w.Write(&Event{Type: "fragment", ID: "0", Data: "hello "})
		Expect(err).NotTo(HaveOccurred())
		Expect(dst.String()).To(Equal("event: fragment\nid: 0\ndata: hello \n\n"))
	})

	It("omits empty type and id fields", func() {
		w := NewWriter(dst)

		err := w.Write(&Event{Data: "payload"})
		Expect(err).NotTo(HaveOccurred())
		Expect(dst.String()).To(Equal("data: payload\n\n"))
	})

	It("splits multi-line data into multiple data fields", func() {
		w := NewWriter(dst)

		err := w.Write(&Event{Data: "one\ntwo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(dst.String()).To(Equal("data: one\ndata: two\n\n"))
	})

	It("ignores nil events", func() {
		w := NewWriter(dst)

		Expect(w.Write(nil)).To(Succeed())
		Expect(dst.Len()).To(BeZero())
	})

	It("round-trips through the Reader", func() {
		w := NewWriter(dst)

		Expect(w.Write(&Event{Type: "fragment", ID: "0", Data: "hello "})).To(Succeed())
		Expect(w.Write(&Event{Type: "fragment", ID: "1", Data: "world"})).To(Succeed())

		r := NewReader(strings.NewReader(dst.String()))

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Type).To(Equal("fragment"))
		Expect(ev.Data).To(Equal("hello "))

		ev, err = r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.ID).To(Equal("1"))
		Expect(ev.Data).To(Equal("world"))
	})

	It("round-trips data with a leading newline", func() {
		w := NewWriter(dst)

		Expect(w.Write(&Event{Data: "\nsecond line"})).To(Succeed())

		r := NewReader(strings.NewReader(dst.String()))

		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Data).To(Equal("\nsecond line"))
	})
})
