package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapterExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), want: 2},
		{name: "not found", err: NotFoundError("missing").Build(), want: 4},
		{name: "settings", err: SettingsError("bad yaml").Build(), want: 7},
		{name: "git", err: GitError("no head").Build(), want: 8},
		{name: "internal", err: InternalError("oops").Build(), want: 10},
		{name: "generator", err: GeneratorError("exit 1").Build(), want: 11},
		{name: "filesystem", err: FileSystemError("mkdir").Build(), want: 11},
		{name: "serve", err: ServeError("listen").Build(), want: 12},
		{name: "unclassified", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapterFormatError(t *testing.T) {
	cause := errors.New("exit status 2")
	err := WrapError(cause, CategoryGenerator, "generator failed").Build()

	quiet := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, "Error: generator failed: exit status 2", quiet.FormatError(err))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Equal(t, "Error: [generator:error] generator failed: exit status 2", verbose.FormatError(err))
}

func TestCLIErrorAdapterHandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(SettingsError("unsupported settings version").WithContext("file", "site.yaml").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: unsupported settings version\n", out.String())
	assert.Contains(t, logs.String(), "category=settings")
	assert.Contains(t, logs.String(), "file=site.yaml")

	code = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, code)
}
