package jpl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgw/precastro/internal/jpl"
	"github.com/pkgw/precastro/internal/jpl/jpltest"
)

func TestCompileSample(t *testing.T) {
	var out bytes.Buffer
	err := jpl.Compile(strings.NewReader(jpltest.Header()), strings.NewReader(jpltest.Data()), &out)
	require.NoError(t, err)

	// Two header records plus two data records, each ksize 4-byte words.
	assert.Equal(t, 4*724*4, out.Len())
}

func TestCompileHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			"missing KSIZE",
			func(h string) string { return strings.Replace(h, "KSIZE=", "XSIZE=", 1) },
			"KSIZE",
		},
		{
			"odd KSIZE",
			func(h string) string { return strings.Replace(h, "724", "725", 1) },
			"KSIZE",
		},
		{
			"missing AU constant",
			func(h string) string { return strings.Replace(h, "  DENUM   AU  ", "  DENUM   AUX ", 1) },
			"missing constant AU",
		},
		{
			"wrong title count",
			func(h string) string { return strings.Replace(h, "Final Epoch: JED 2451600.5\n", "", 1) },
			"titles",
		},
		{
			"constant count mismatch",
			func(h string) string { return strings.Replace(h, "     3\n  DENUM", "     4\n  DENUM", 1) },
			"counts disagree",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := jpl.Compile(
				strings.NewReader(tt.mutate(jpltest.Header())),
				strings.NewReader(jpltest.Data()), &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCompileDataErrors(t *testing.T) {
	t.Run("coefficient count mismatch", func(t *testing.T) {
		data := strings.Replace(jpltest.Data(), "     1   362", "     1   360", 1)
		var out bytes.Buffer
		err := jpl.Compile(strings.NewReader(jpltest.Header()), strings.NewReader(data), &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mismatched files")
	})

	t.Run("truncated data", func(t *testing.T) {
		// Cut mid-record, at a line boundary.
		data := jpltest.Data()
		data = data[:strings.LastIndex(data[:3*len(data)/4], "\n")+1]
		var out bytes.Buffer
		err := jpl.Compile(strings.NewReader(jpltest.Header()), strings.NewReader(data), &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "truncated")
	})
}
