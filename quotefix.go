package assayplot

import (
	"bufio"
	"io"
	"strings"
)

// QuoteFixReader rewrites the backslash-escaped quote \" that some exporters
// write into the doubled quote "" that CSV readers expect, one line at a
// time.
type QuoteFixReader struct {
	r        *bufio.Reader
	leftover *strings.Reader
	err      error
}

func NewQuoteFixReader(r io.Reader) *QuoteFixReader {
	return &QuoteFixReader{r: bufio.NewReader(r), leftover: &strings.Reader{}}
}

func (q *QuoteFixReader) Read(p []byte) (int, error) {
	for q.leftover.Len() == 0 {
		if q.err != nil {
			return 0, q.err
		}

		line, err := q.r.ReadString('\n')
		q.err = err
		q.leftover = strings.NewReader(strings.ReplaceAll(line, `\"`, `""`))
	}

	return q.leftover.Read(p)
}
