package symbol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want Reference
	}{
		{
			name: "module path",
			ref:  "pkg.mod:tool_a",
			want: Reference{Raw: "pkg.mod:tool_a", Mode: ModeModule, Path: "pkg.mod", Attr: "tool_a"},
		},
		{
			name: "module path with colon splits on last",
			ref:  "github.com/acme/tools:v2:Search",
			want: Reference{Raw: "github.com/acme/tools:v2:Search", Mode: ModeModule, Path: "github.com/acme/tools:v2", Attr: "Search"},
		},
		{
			name: "file path",
			ref:  "/tmp/tools.go::MyTool",
			want: Reference{Raw: "/tmp/tools.go::MyTool", Mode: ModeFile, Path: "/tmp/tools.go", Attr: "MyTool"},
		},
		{
			name: "home relative file path",
			ref:  " ~/agents/tools.go::Search ",
			want: Reference{Raw: "~/agents/tools.go::Search", Mode: ModeFile, Path: "~/agents/tools.go", Attr: "Search"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseReference(tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseReferenceErrors(t *testing.T) {
	for _, ref := range []string{"", "   ", "no_delimiter", "pkg.mod:", ":attr", "/tmp/tools.go::", "::attr"} {
		t.Run(ref, func(t *testing.T) {
			_, err := ParseReference(ref)
			var rerr *ResolutionError
			require.True(t, errors.As(err, &rerr), "expected ResolutionError, got %v", err)
		})
	}
}

func TestResolutionErrorMessage(t *testing.T) {
	err := &ResolutionError{Ref: "pkg:x", Field: "tools[1]", Reason: "unknown module pkg"}
	assert.Equal(t, `symbol: tools[1]: resolve "pkg:x": unknown module pkg`, err.Error())

	cause := errors.New("boom")
	wrapped := &ResolutionError{Ref: "a.go::X", Reason: "interpret a.go", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "boom")
}
