package logutils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/toolbelt/pkg/logutils"
)

func TestShortCallerFormatter(t *testing.T) {
	tests := []struct {
		name string
		file string
		line int
		want string
	}{
		{
			"absolute path",
			"/home/user/go/src/toolbelt/internal/core/usecases/measurelatency/measurelatency.go",
			42,
			"measurelatency.go:42",
		},
		{
			"relative path",
			"internal/rest/router.go",
			7,
			"router.go:7",
		},
		{
			"bare file name",
			"main.go",
			1,
			"main.go:1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logutils.ShortCallerFormatter(0, tt.file, tt.line)
			assert.Equal(t, tt.want, got)
		})
	}
}
