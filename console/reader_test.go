package console

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/lazharichir/drawpoker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadsTrimmedLines(t *testing.T) {
	lr := NewLineReader(strings.NewReader("  hello \nworld\n"))

	line, err := lr.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = lr.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "world", line)

	_, err = lr.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_TimeoutKeepsLaterLine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	lr := NewLineReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := lr.ReadLine(ctx)
	assert.ErrorIs(t, err, domain.ErrTimeout)

	go func() { _, _ = pw.Write([]byte("late\n")) }()

	line, err := lr.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", line)
}

func TestLineReader_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	lr := NewLineReader(pr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lr.ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineReader_Drain(t *testing.T) {
	pr, pw := io.Pipe()
	lr := NewLineReader(pr)

	_, err := pw.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(lr.lines) == 2 }, time.Second, time.Millisecond)

	assert.Equal(t, 2, lr.Drain())
	assert.Equal(t, 0, lr.Drain())

	require.NoError(t, pw.Close())
	_, err = lr.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}
