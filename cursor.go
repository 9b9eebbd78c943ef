package main

import "unicode/utf8"

const eof rune = -1

// cursor is a position within program text: one frame of the continuation
// stack. Only the most recently read rune can be unread.
type cursor struct {
	src  string
	pos  int
	last rune
	size int

	// tails counts exhausted callers elided beneath this frame
	tails int
}

func newCursor(src string) *cursor { return &cursor{src: src, last: eof} }

func (cur *cursor) readRune() rune {
	if cur.pos >= len(cur.src) {
		cur.last, cur.size = eof, 0
		return eof
	}
	cur.last, cur.size = utf8.DecodeRuneInString(cur.src[cur.pos:])
	cur.pos += cur.size
	return cur.last
}

// unreadRune steps back over the last rune read; there is nothing to unread
// once the text has been exhausted.
func (cur *cursor) unreadRune() {
	if cur.last != eof && cur.pos >= cur.size {
		cur.pos -= cur.size
		cur.last, cur.size = eof, 0
	}
}

func (cur *cursor) done() bool { return cur.pos >= len(cur.src) }

func (cur *cursor) remainder() string { return cur.src[cur.pos:] }

// skip discards the rest of the text.
func (cur *cursor) skip() { cur.pos = len(cur.src) }
