package agent

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	demoInput = "What are the benefits of voice agents?"

	demoBlockingResponse = "The benefits of voice agents include hands-free operation, " +
		"natural interaction, accessibility for users with disabilities, " +
		"and increased efficiency in task completion."

	// DemoBlockingWait simulates waiting for a complete response in the
	// non-streaming half of the comparison demo.
	DemoBlockingWait = 2 * time.Second
)

// ComparisonDemo contrasts blocking and streaming delivery of a
// response: the blocking half waits the full simulated latency and then
// prints the complete text, the streaming half prints fragments as they
// are produced. wait is the blocking-half latency and delay the
// per-fragment latency; pass zero for either to run without pausing.
func ComparisonDemo(ctx context.Context, w io.Writer, wait, delay time.Duration) error {
	fmt.Fprintln(w, "Streaming vs Non-Streaming Comparison")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Non-Streaming Mode ---")
	fmt.Fprintf(w, "You: %s\n", demoInput)
	fmt.Fprintln(w, "Processing... (waiting for complete response)")
	if !pause(ctx, wait) {
		return ctx.Err()
	}
	fmt.Fprintf(w, "Agent: %s\n", demoBlockingResponse)
	fmt.Fprintf(w, "Total time: %.1fs (user waited for complete response)\n", wait.Seconds())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Streaming Mode ---")
	fmt.Fprintf(w, "You: %s\n", demoInput)
	fmt.Fprintln(w, "Streaming response...")
	start := time.Now()
	fmt.Fprint(w, "Agent: ")
	Speak(w, Stream(ctx, Respond(demoInput), delay))
	fmt.Fprintln(w)
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total time: %.1fs (user heard response immediately)\n", time.Since(start).Seconds())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Key difference:")
	fmt.Fprintln(w, "  Non-streaming: user waits for the complete response")
	fmt.Fprintln(w, "  Streaming: user hears the response as it is generated")
	return nil
}
