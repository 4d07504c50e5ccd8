package errors

import (
	"github.com/cockroachdb/errors"
)

// Builder accumulates context on an error; Mark ends the chain.
//
//	ierr.NewErrorf("unknown model %q", name).WithHint("run `models`").Mark(ierr.ErrConfiguration)
type Builder struct {
	err error
}

func NewError(msg string) *Builder {
	return &Builder{err: errors.New(msg)}
}

func NewErrorf(format string, args ...any) *Builder {
	return &Builder{err: errors.Newf(format, args...)}
}

func WithError(err error) *Builder {
	return &Builder{err: err}
}

// WithMessage prefixes the message, as in "query plans: <cause>".
func (b *Builder) WithMessage(msg string) *Builder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint adds text for whoever runs the tool. It is not part of Error().
func (b *Builder) WithHint(hint string) *Builder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *Builder) WithHintf(format string, args ...any) *Builder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

func (b *Builder) Mark(kind *Kind) error {
	return errors.Mark(b.err, kind)
}
