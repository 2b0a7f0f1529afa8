package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file URI", "file:///Users/test/docs/spec.md", "/Users/test/docs/spec.md"},
		{"escaped spaces", "file:///Users/test/my%20docs/spec.md", "/Users/test/my docs/spec.md"},
		{"raw spaces", "file:///Users/test/my docs/spec.md", "/Users/test/my docs/spec.md"},
		{"bare path", "/Users/test/docs", "/Users/test/docs"},
		{"relative path", "sample_data", "sample_data"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalPath(tt.uri))
		})
	}
}
