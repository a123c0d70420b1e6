//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package timing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSize(t *testing.T) {
	tests := map[FileSize]string{
		0:             "0B",
		1000:          "1000B",
		1001:          "1kB",
		2_500_000:     "2MB",
		7_000_000_001: "7GB",
	}
	for size, expected := range tests {
		require.Equal(t, expected, size.String())
	}
}

func TestTiming(t *testing.T) {
	timing := New()
	var buf bytes.Buffer

	timing.Print(&buf, 0, 0)
	require.Zero(t, buf.Len())

	timing.Sample("v2a", FileSize(480).String())
	timing.Sample("a2p", FileSize(80).String())
	require.Len(t, timing.Samples, 2)
	require.Equal(t, timing.Samples[0].End, timing.Samples[1].Start)
	require.Equal(t, timing.Samples[1].End.Sub(timing.Start), timing.Total())

	timing.Print(&buf, 560, 320)
	out := buf.String()
	require.Contains(t, out, "v2a")
	require.Contains(t, out, "Total")
	require.Contains(t, out, "880B")
}
