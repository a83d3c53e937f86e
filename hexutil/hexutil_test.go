package hexutil_test

import (
	"testing"

	"github.com/mewmew/blockview/hexutil"
)

func TestEncodeTruncated(t *testing.T) {
	golden := []struct {
		bs     []byte
		width  int
		spaced bool
		want   string
	}{
		{bs: []byte{0xDE, 0xAD}, width: 0, spaced: false, want: "dead"},
		{bs: []byte{0xDE, 0xAD}, width: 0, spaced: true, want: "DE AD"},
		{bs: []byte{0xDE, 0xAD, 0xBE, 0xEF}, width: 8, spaced: false, want: "deadbeef"},
		{bs: []byte{0xDE, 0xAD, 0xBE, 0xEF}, width: 5, spaced: false, want: "de..."},
		{bs: []byte{0xDE, 0xAD, 0xBE, 0xEF}, width: 2, spaced: false, want: "de"},
		{bs: nil, width: 10, spaced: true, want: ""},
	}
	for _, g := range golden {
		got := hexutil.EncodeTruncated(g.bs, g.width, g.spaced)
		if got != g.want {
			t.Errorf("EncodeTruncated(%v, %d, %v) = %q, want %q", g.bs, g.width, g.spaced, got, g.want)
		}
	}
}

func TestEncodeTruncatedNeverExceedsWidth(t *testing.T) {
	bs := make([]byte, 64)
	for i := range bs {
		bs[i] = byte(i)
	}
	for width := 1; width < 20; width++ {
		got := hexutil.EncodeTruncated(bs, width, true)
		if len(got) > width {
			t.Errorf("width=%d: EncodeTruncated produced %d characters: %q", width, len(got), got)
		}
	}
}
