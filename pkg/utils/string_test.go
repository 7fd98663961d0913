package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		result := Truncate("this is a long string", 10)
		Expect(result).To(Equal("this is a ..."))
	})

	It("counts runes, not bytes, for multibyte content", func() {
		Expect(Truncate("你好！今天我能怎么帮助你？", 2)).To(Equal("你好..."))
		Expect(Truncate("¡Hola!", 6)).To(Equal("¡Hola!"))
	})
})
