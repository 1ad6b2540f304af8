package errs

import (
	"context"
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// ErrCanceled marks work abandoned because the request context ended.
var ErrCanceled = New("request canceled")

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

// FromContext converts a finished context into a marked cancellation error.
func FromContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		if cr.Is(err, context.Canceled) || cr.Is(err, context.DeadlineExceeded) {
			return Mark(err, ErrCanceled)
		}
		return err
	}
	return nil
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
