package builtins

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Tool is a named function a tool-using module may call.
type Tool struct {
	Name        string
	Description string
	Call        func(ctx context.Context, input string) (string, error)
}

// Echo returns its input unchanged.
func Echo() *Tool {
	return &Tool{
		Name:        "echo",
		Description: "Returns the input unchanged.",
		Call: func(_ context.Context, input string) (string, error) {
			return input, nil
		},
	}
}

// Clock reports the current time in RFC 3339. now defaults to time.Now.
func Clock(now func() time.Time) *Tool {
	if now == nil {
		now = time.Now
	}
	return &Tool{
		Name:        "clock",
		Description: "Returns the current UTC time in RFC 3339 format.",
		Call: func(_ context.Context, _ string) (string, error) {
			return now().UTC().Format(time.RFC3339), nil
		},
	}
}

// WordCount counts whitespace-separated words.
func WordCount() *Tool {
	return &Tool{
		Name:        "word_count",
		Description: "Counts the whitespace-separated words of the input.",
		Call: func(_ context.Context, input string) (string, error) {
			return strconv.Itoa(len(strings.Fields(input))), nil
		},
	}
}
