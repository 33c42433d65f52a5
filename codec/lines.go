package codec

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding"
)

// Delimiter terminates each record written by a lines codec.
type Delimiter string

const (
	// LF terminates lines with "\n".
	LF Delimiter = "\n"
	// CRLF terminates lines with "\r\n".
	CRLF Delimiter = "\r\n"
)

type linesCodec struct {
	enc   encoding.Encoding
	delim Delimiter
}

// Lines returns a codec for UTF-8 text where every line is a record.
// Lines are written with a trailing "\n".
func Lines() Codec[string] {
	return LinesEncoding(nil, LF)
}

// LinesCRLF is the same as Lines but writes "\r\n" line endings.
func LinesCRLF() Codec[string] {
	return LinesEncoding(nil, CRLF)
}

// LinesEncoding returns a lines codec for text in the given character
// encoding. A nil enc means UTF-8. Both "\n" and "\r\n" are accepted when
// reading regardless of delim, and the last line does not need a terminator.
func LinesEncoding(enc encoding.Encoding, delim Delimiter) Codec[string] {
	if delim == "" {
		delim = LF
	}
	return linesCodec{enc: enc, delim: delim}
}

func (c linesCodec) NewReader(r io.Reader) Reader[string] {
	if c.enc != nil {
		r = c.enc.NewDecoder().Reader(r)
	}
	return &lineReader{r: bufio.NewReader(r)}
}

func (c linesCodec) NewWriter(w io.Writer) Writer[string] {
	lw := &lineWriter{delim: string(c.delim)}
	if c.enc != nil {
		tw := c.enc.NewEncoder().Writer(w)
		if closer, ok := tw.(io.Closer); ok {
			lw.closer = closer
		}
		w = tw
	}
	lw.w = bufio.NewWriter(w)
	return lw
}

type lineReader struct {
	r *bufio.Reader
}

func (l *lineReader) Read() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		if len(line) == 0 {
			return "", io.EOF
		}
		// unterminated last line
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

type lineWriter struct {
	w      *bufio.Writer
	closer io.Closer // flushes the charset encoder, if any
	delim  string
}

func (l *lineWriter) Write(s string) error {
	if _, err := l.w.WriteString(s); err != nil {
		return err
	}
	_, err := l.w.WriteString(l.delim)
	return err
}

func (l *lineWriter) Close() error {
	if err := l.w.Flush(); err != nil {
		return err
	}
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
