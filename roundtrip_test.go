package streamcsv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeAll writes every record and returns the produced bytes.
func encodeAll(t *testing.T, records [][]string, d Dialect) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf, d)
	for _, record := range records {
		require.NoError(t, w.WriteRecordStrings(record...))
	}
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"plain", "fields", "here"},
		{""},
		{"comma,inside", "quote\"inside", "term\r\ninside", "pipe|hash#", "apos'x"},
		{"multi\nline", "", "z"},
	}

	dialects := map[string]Dialect{
		"default":     {},
		"lf":          {Terminator: TerminatorByte('\n')},
		"pipeHash":    {Delimiter: '|', Quote: '\'', Terminator: TerminatorByte('#'), BOM: BOMKeep},
		"bomEmit":     {BOM: BOMEmit},
		"bomKeep":     {BOM: BOMKeep},
		"alwaysQuote": {AlwaysQuote: true, BOM: BOMKeep},
	}

	for name, dialect := range dialects {
		dialect := dialect
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded := encodeAll(t, records, dialect)

			r := NewReader(bytes.NewReader(encoded), dialect)
			var rec Record
			var got [][]string
			for {
				ok, err := r.Read(&rec)
				require.NoError(t, err)
				if !ok {
					break
				}
				got = append(got, rec.Strings())
			}
			require.Equal(t, records, got)
		})
	}
}

func TestRoundTripArbitraryOctets(t *testing.T) {
	t.Parallel()

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	records := [][]string{
		{string(all), "x"},
		{"\xEF\xBB\xBF leading bom bytes", string(all[128:])},
	}

	// BOMKeep makes the codec fully byte-transparent: under the discard
	// policies a first field starting with a complete BOM sequence is
	// indistinguishable from a real BOM.
	dialect := Dialect{BOM: BOMKeep}
	encoded := encodeAll(t, records, dialect)

	r := NewReader(bytes.NewReader(encoded), dialect)
	var rec Record
	var got [][]string
	for {
		ok, err := r.Read(&rec)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec.Strings())
	}
	require.Equal(t, records, got)
}
