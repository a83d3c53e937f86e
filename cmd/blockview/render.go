package main

import (
	"fmt"
	"io"

	"github.com/mewmew/blockview/block"
	"github.com/mewmew/blockview/colors"
	"github.com/mewmew/blockview/token"
)

// renderer maps a token.Stream onto an ANSI-colored terminal writer: the
// natural terminal analogue of the GUI's color-aware text renderer.
// Per-block formatting (address column width, byte-run chunk width) is
// already applied by the engine, which attaches the resolved config to
// each block's content before the renderer ever sees it.
type renderer struct {
	out io.Writer
}

func (r renderer) render(b block.Block) {
	var stream token.Stream
	b.Tokenize(&stream)
	for _, tok := range stream.Inner {
		fmt.Fprint(r.out, ansiColor(tok.Color), tok.Text.String(), ansiReset)
	}
	fmt.Fprintln(r.out)
}

const ansiReset = "\x1b[0m"

func ansiColor(c colors.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}
