package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup sets the global logrus level and output.
// When file is non-empty, logs go to a size-rotated file instead of stderr.
// The returned closer releases the file; it is a no-op for stderr.
func Setup(level, file string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: invalid level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)

	if file == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   false,
	}
	logrus.SetOutput(w)
	return w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
