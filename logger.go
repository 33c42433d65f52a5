package filesort

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

const logTimeLayout = "2006-01-02 15:04:05.0-0700"

// ZapLogger sends progress messages to l at info level.
func ZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	named := l.Named("filesort")
	return func(msg string) {
		named.Info(msg)
	}
}

// WriterLogger writes each progress message to w as a timestamped line.
func WriterLogger(w io.Writer) Logger {
	return func(msg string) {
		fmt.Fprintf(w, "%s %s\n", time.Now().Format(logTimeLayout), msg)
	}
}

// StdoutLogger writes timestamped progress messages to standard output.
func StdoutLogger() Logger {
	return WriterLogger(os.Stdout)
}
