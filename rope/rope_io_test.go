package rope

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIO(t *testing.T) {
	r := FromString("Hello, wörld! ✓ done", 3)
	w := Writer(4)

	n, err := io.Copy(w, r.Reader())
	require.NoError(t, err)
	assert.Equal(t, int64(len(r.Collect())), n)

	r2 := w.Rope()
	assert.Equal(t, r.Collect(), r2.Collect())
	assert.NoError(t, r2.Check())
	for _, l := range leavesOf(r2) {
		assert.LessOrEqual(t, l.Len(), 4)
	}
}

func TestReaderSmallBuffer(t *testing.T) {
	r := FromString("añb€c", 2)
	reader := r.Reader()

	var out bytes.Buffer
	buf := make([]byte, 1)
	for {
		n, err := reader.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, "añb€c", out.String())

	var empty *Node
	n, err := empty.Reader().Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriterSplitRunes(t *testing.T) {
	text := []byte("日本語テキスト")
	w := Writer(0)
	for _, b := range text {
		_, err := w.Write([]byte{b})
		require.NoError(t, err)
	}
	assert.Equal(t, string(text), w.Rope().Collect())
}

func TestWriterTruncatedInput(t *testing.T) {
	w := Writer(8)
	_, err := io.WriteString(w, "ok")
	require.NoError(t, err)
	_, err = w.Write([]byte{0xe2, 0x82})
	require.NoError(t, err)

	r := w.Rope()
	assert.Equal(t, 4, r.Len())
	assert.True(t, strings.HasPrefix(r.Collect(), "ok"))
	c, _ := r.CharAt(3)
	assert.Equal(t, '�', c)
}
