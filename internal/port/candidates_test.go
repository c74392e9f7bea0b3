package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr string
	}{
		{
			name:  "default list",
			input: "8000,8080,3000,5000,9000",
			want:  []int{8000, 8080, 3000, 5000, 9000},
		},
		{
			name:  "order is preserved",
			input: "9000,3000",
			want:  []int{9000, 3000},
		},
		{
			name:  "whitespace and empty entries ignored",
			input: " 8000 , ,8080,",
			want:  []int{8000, 8080},
		},
		{
			name:    "non-numeric entry",
			input:   "8000,http",
			wantErr: "invalid candidate port",
		},
		{
			name:    "zero is rejected",
			input:   "0",
			wantErr: "out of range",
		},
		{
			name:    "above 65535 is rejected",
			input:   "65536",
			wantErr: "out of range",
		},
		{
			name:    "duplicate port",
			input:   "8000,8080,8000",
			wantErr: "more than once",
		},
		{
			name:    "empty list",
			input:   "",
			wantErr: "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCandidates(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCandidates(t *testing.T) {
	assert.Equal(t, "8000,8080,3000", FormatCandidates([]int{8000, 8080, 3000}))
	assert.Equal(t, "", FormatCandidates(nil))
}
