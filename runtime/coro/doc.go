// Package coro implements a resumable execution primitive on top of a
// goroutine and unbuffered channel handoff: exactly one side - resumer or
// body - runs at any instant, which preserves the scheduler's cooperative,
// single logical thread of control.
package coro
