package options

import (
	"errors"
	"testing"

	"github.com/erraggy/blueprints/bperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "one set",
			sources: []Source{{"WithName", true}, {"WithItems", false}},
		},
		{
			name:    "none set",
			sources: []Source{{"WithName", false}, {"WithItems", false}},
			wantErr: "must specify one of WithName or WithItems",
		},
		{
			name:    "both set",
			sources: []Source{{"WithName", true}, {"WithItems", true}},
			wantErr: "must specify only one of WithName or WithItems",
		},
		{
			name:    "no sources",
			wantErr: "must specify one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("blueprint", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, bperrors.ErrConfig))

			var cfgErr *bperrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "blueprint", cfgErr.Option)
		})
	}
}

func TestExactlyOneReportsConflicts(t *testing.T) {
	err := ExactlyOne("input", Source{"--file", true}, Source{"name", true}, Source{"--stdin", false})
	var cfgErr *bperrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "--file, name", cfgErr.Value)
}
