package coro

import (
	"errors"
	"fmt"
)

// ErrCompleted is returned when resuming a coroutine whose body has already
// returned or failed.
var ErrCompleted = errors.New("coro: already completed")

// Body is the coroutine function. It receives a Yielder bound to this
// coroutine together with the arguments of the first Resume call, and its
// return values become the final Resume outcome.
type Body func(y *Yielder, args []interface{}) []interface{}

type outcome struct {
	values []interface{}
	done   bool
	err    error
}

// Coro is a suspendable execution. The zero value is not usable; create
// instances with New. A Coro must only ever be resumed from one logical
// thread of control at a time.
type Coro struct {
	body    Body
	in      chan []interface{}
	out     chan outcome
	started bool
	done    bool
}

// New creates a coroutine around body. The body goroutine starts lazily on
// the first Resume.
func New(body Body) *Coro {
	return &Coro{
		body: body,
		in:   make(chan []interface{}),
		out:  make(chan outcome),
	}
}

// Done reports whether the body has terminated.
func (c *Coro) Done() bool { return c.done }

// Resume transfers control to the body, handing it args, and blocks until
// the body yields, returns, or panics. A recovered panic surfaces as err
// with done=true; the panic payload is preserved when it is an error.
func (c *Coro) Resume(args ...interface{}) ([]interface{}, bool, error) {
	if c.done {
		return nil, true, ErrCompleted
	}
	if !c.started {
		c.started = true
		go c.run()
	}
	c.in <- args
	result := <-c.out
	if result.done {
		c.done = true
	}
	return result.values, result.done, result.err
}

func (c *Coro) run() {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("coro: body panic: %v", r)
			}
			c.out <- outcome{done: true, err: err}
		}
	}()
	args := <-c.in
	values := c.body(&Yielder{coro: c}, args)
	c.out <- outcome{values: values, done: true}
}

// Yielder is handed to the body and is only valid for the lifetime of that
// body invocation.
type Yielder struct {
	coro *Coro
}

// Yield suspends the body, delivering values to the pending Resume call,
// and blocks until the next Resume; its arguments become Yield's return
// value.
func (y *Yielder) Yield(values ...interface{}) []interface{} {
	y.coro.out <- outcome{values: values}
	return <-y.coro.in
}
