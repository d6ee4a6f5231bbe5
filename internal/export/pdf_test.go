package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	// A4 portrait with 10mm margins, expressed in inches.
	assert.InDelta(t, 8.27, opts.PaperWidth, 0.001)
	assert.InDelta(t, 11.69, opts.PaperHeight, 0.001)
	assert.InDelta(t, 0.39, opts.Margin, 0.001)
	assert.True(t, opts.PrintBackground)
	assert.Equal(t, 1.0, opts.Scale)
	assert.Equal(t, 60*time.Second, opts.Timeout)
}

func TestWrapPage(t *testing.T) {
	got := wrapPage(`<p>conținut</p>`)

	require.Contains(t, got, "<!DOCTYPE html>")
	require.Contains(t, got, `<meta charset="UTF-8">`)
	assert.Contains(t, got, `<body><p>conținut</p></body>`)

	// Print rules that keep pagination stable.
	assert.Contains(t, got, "orphans: 3; widows: 3;")
	assert.Contains(t, got, "page-break-after: avoid")
	assert.Contains(t, got, "print-color-adjust: exact")
}

func TestNew_NilLogger(t *testing.T) {
	e := New(DefaultOptions(), nil)
	require.NotNil(t, e)
	require.NotNil(t, e.log)
}
