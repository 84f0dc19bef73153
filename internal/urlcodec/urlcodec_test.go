package urlcodec_test

import (
	"testing"

	"github.com/jroosing/apphelpers/internal/urlcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "alnum", in: "abcXYZ019", want: "abcXYZ019"},
		{name: "space", in: "a b", want: "a+b"},
		{name: "punctuation", in: "a-b_c.d~e", want: "a%2Db%5Fc%2Ed%7Ee"},
		{name: "query", in: "t=21.5&h=40%", want: "t%3D21%2E5%26h%3D40%25"},
		{name: "utf8-bytes", in: "°C", want: "%C2%B0C"},
		{name: "control", in: "\n", want: "%0A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urlcodec.Encode(tt.in))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plus", in: "a+b", want: "a b"},
		{name: "upper-hex", in: "%3D%26", want: "=&"},
		{name: "lower-hex", in: "%3d%2e", want: "=."},
		{name: "passthrough", in: "a-b_c", want: "a-b_c"},
		{name: "utf8-bytes", in: "%C2%B0C", want: "°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := urlcodec.Decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{"%", "%4", "abc%", "%G1", "%1G", "x%zz"} {
		t.Run(in, func(t *testing.T) {
			_, err := urlcodec.Decode(in)
			require.ErrorIs(t, err, urlcodec.ErrMalformedEscape)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"sensor=bme280&temp=21.5°C",
		string([]byte{0x00, 0x7f, 0x80, 0xff}),
	}
	for _, in := range inputs {
		got, err := urlcodec.Decode(urlcodec.Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}
