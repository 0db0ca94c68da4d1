package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/ConcepteurBiere/internal/cli"
)

func TestRootCommand(t *testing.T) {
	root := cli.NewRootCmd(version)
	require.NotNil(t, root)
	assert.Equal(t, "brewplan", root.Use)
	assert.Equal(t, version, root.Version)
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "exit error with code 2", err: &cli.ExitError{Code: 2, Reason: "risks found"}, want: 2},
		{name: "exit error with code 0", err: &cli.ExitError{Code: 0, Reason: "reported only"}, want: 0},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("risks: %w", &cli.ExitError{Code: 42, Reason: "danger"}),
			want: 42,
		},
		{
			name: "joined exit error",
			err:  errors.Join(errors.New("outer"), &cli.ExitError{Code: 3, Reason: "warn"}),
			want: 3,
		},
		{name: "generic error falls through", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
