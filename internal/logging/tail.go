package logging

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Tail writes a log file to w, optionally following for new content.
// When n > 0, only approximately the last n lines are shown.
func Tail(w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(w, file)
	}

	_, err = io.Copy(w, file)
	return err
}

// tailSeek seeks to a position that shows approximately the last n lines.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 100

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	offset := size - int64(n*avgLineLength)
	if offset <= 0 {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	// Discard the partial first line.
	buf := make([]byte, 1)
	for {
		if _, err := file.Read(buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if buf[0] == '\n' {
			return nil
		}
	}
}

// tailFollow keeps copying new content, like tail -f.
func tailFollow(w io.Writer, file *os.File) error {
	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
}
