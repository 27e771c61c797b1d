package coro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoro_ResumeYield(t *testing.T) {
	c := New(func(y *Yielder, args []interface{}) []interface{} {
		next := y.Yield(args[0], args[1])
		return []interface{}{next[0].(int) * 2}
	})

	values, done, err := c.Resume(1, 2)
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []interface{}{1, 2}, values)

	values, done, err = c.Resume(21)
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []interface{}{42}, values)
	assert.True(t, c.Done())
}

func TestCoro_ResumeAfterCompletion(t *testing.T) {
	c := New(func(y *Yielder, args []interface{}) []interface{} {
		return nil
	})
	_, done, err := c.Resume()
	assert.True(t, done)
	assert.NoError(t, err)

	_, done, err = c.Resume()
	assert.True(t, done)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestCoro_BodyPanic(t *testing.T) {
	testCases := []struct {
		name     string
		payload  interface{}
		expected string
	}{
		{
			name:     "error payload preserved",
			payload:  errors.New("boom"),
			expected: "boom",
		},
		{
			name:     "non-error payload wrapped",
			payload:  "broken",
			expected: "coro: body panic: broken",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(func(y *Yielder, args []interface{}) []interface{} {
				panic(tc.payload)
			})
			values, done, err := c.Resume()
			assert.Nil(t, values)
			assert.True(t, done)
			assert.EqualError(t, err, tc.expected)
		})
	}
}

func TestCoro_PanicAfterYield(t *testing.T) {
	c := New(func(y *Yielder, args []interface{}) []interface{} {
		y.Yield("first")
		panic(errors.New("late failure"))
	})

	values, done, err := c.Resume()
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []interface{}{"first"}, values)

	_, done, err = c.Resume()
	assert.True(t, done)
	assert.EqualError(t, err, "late failure")
}

func TestCoro_NoArguments(t *testing.T) {
	c := New(func(y *Yielder, args []interface{}) []interface{} {
		assert.Empty(t, args)
		return []interface{}{"ok"}
	})
	values, done, err := c.Resume()
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []interface{}{"ok"}, values)
}
