// Package fileinput reads lines sequentially through a queue of input
// streams, tracking where each line came from.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input implements sequential line reading through a Queue of one or more
// input streams. Streams that implement io.Closer are closed once exhausted.
type Input struct {
	Queue []io.Reader
	Location

	cur io.Reader
	br  *bufio.Reader
}

// ReadLine returns the next line, without its line terminator, advancing
// through the Queue as each stream runs out. Returns io.EOF once every stream
// has been read.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return "", io.EOF
		}

		line, err := in.br.ReadString('\n')
		if line != "" {
			in.Line++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			return line, nil
		}
		if err != nil && err != io.EOF {
			return "", err
		}
		in.closeIn()
	}
}

// Where returns the location of the line last read.
func (in *Input) Where() Location { return in.Location }

// Close closes the current stream and any still queued.
func (in *Input) Close() (err error) {
	in.closeIn()
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur = nil
	in.br = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.br = bufio.NewReader(in.cur)
	in.Name = nameOf(in.cur)
	in.Line = 0
	return true
}

// NamedReader attaches a name to a reader, for use in Location.
func NamedReader(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
