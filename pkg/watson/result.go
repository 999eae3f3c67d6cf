package watson

import (
	"context"
	"errors"

	"alchemy/pkg/watson/decode"
)

// Result is the outcome of one call: a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a decoded value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps err. A nil err is replaced so the result still reads as failed.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("watson: failure without cause")
	}
	return Result[T]{err: err}
}

func (r Result[T]) OK() bool   { return r.err == nil }
func (r Result[T]) Err() error { return r.err }

// Value returns the success value and whether the result succeeded.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// Unwrap returns the pair in Go's usual (value, error) shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// DecodeFunc decodes a parsed body into a model.
type DecodeFunc[T any] func(decode.Value) (T, error)

// Execute sends d and delivers its outcome to done exactly once, on the
// invoker's goroutine.
func Execute[T any](ctx context.Context, inv *Invoker, d Descriptor, model string, fn DecodeFunc[T], done func(Result[T])) {
	inv.Send(ctx, d, func(raw RawResponse, err error) {
		done(Complete(raw, err, model, fn))
	})
}

// Complete turns one raw outcome into a Result. A transport error wins, then
// a service error body, then a non-2xx status; only then is the body decoded.
func Complete[T any](raw RawResponse, err error, model string, fn DecodeFunc[T]) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	if svcErr := ToError(raw.Body); svcErr != nil {
		return Failure[T](svcErr)
	}
	if !raw.OK() {
		return Failure[T](StatusError(raw))
	}
	root, err := decode.Parse(raw.Body)
	if err != nil {
		return Failure[T](&DecodeError{Model: model, Err: err})
	}
	v, err := fn(root)
	if err != nil {
		return Failure[T](&DecodeError{Model: model, Err: err})
	}
	return Success(v)
}

// Await starts a call and blocks until its completion fires.
//
//	kw, err := watson.Await(func(done func(watson.Result[alchemylanguage.Keywords])) {
//		svc.GetRankedKeywordsURL(ctx, url, opts, done)
//	})
func Await[T any](start func(done func(Result[T]))) (T, error) {
	ch := make(chan Result[T], 1)
	start(func(r Result[T]) { ch <- r })
	return (<-ch).Unwrap()
}
