package utils

// Truncate shortens s to at most maxLen runes, appending "..." when content
// was cut. Counting runes rather than bytes keeps multibyte turn content
// (e.g. the zh/ja/hi/ar greetings) from being split mid-character in logs.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
