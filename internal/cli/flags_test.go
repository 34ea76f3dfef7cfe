package cli

import (
	stderrors "errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigconform/sigconform/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		valid  bool
	}{
		{"text", true},
		{"json", true},
		{"xml", false},
		{"", false},
		{"TEXT", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.valid, IsValidOutputFormat(tc.format))
		})
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"invalid output format", errors.ErrInvalidOutputFormat, ExitInvalidInput},
		{
			"wrapped invalid output format",
			errors.Wrapf(errors.ErrInvalidOutputFormat, "%q", "xml"),
			ExitInvalidInput,
		},
		{"unknown flag", stderrors.New(`unknown flag: --bogus`), ExitInvalidInput},
		{"unknown command", stderrors.New(`unknown command "frobnicate"`), ExitInvalidInput},
		{
			"mutually exclusive flags",
			stderrors.New("if any flags in the group [verbose quiet] are set none of the others can be"),
			ExitInvalidInput,
		},
		{"non-conformant run", errors.Wrap(errors.ErrConformanceFailed, "3 of 12 cases failed"), ExitError},
		{"signer unavailable", errors.ErrSignerUnavailable, ExitError},
		{"generic error", stderrors.New("boom"), ExitError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ExitCodeForError(tc.err))
		})
	}
}

func TestAddGlobalFlags_Defaults(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)

	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, OutputText, flags.Format)
	assert.False(t, flags.Verbose)
	assert.False(t, flags.Quiet)
}

func TestBindGlobalFlags(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddGlobalFlags(cmd, flags)
	require.NoError(t, cmd.ParseFlags([]string{"--format", "json", "--verbose"}))

	v := viper.New()
	require.NoError(t, BindGlobalFlags(v, cmd))

	assert.Equal(t, "json", v.GetString("format"))
	assert.True(t, v.GetBool("verbose"))
	assert.False(t, v.GetBool("quiet"))
}
