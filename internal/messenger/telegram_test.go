package messenger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_Short(t *testing.T) {
	parts := splitMessage("hola", maxMessageLen)
	assert.Equal(t, []string{"hola"}, parts)
}

func TestSplitMessage_ExactBoundary(t *testing.T) {
	text := strings.Repeat("a", maxMessageLen)
	parts := splitMessage(text, maxMessageLen)
	require.Len(t, parts, 1)
	assert.Equal(t, text, parts[0])
}

func TestSplitMessage_NoNewlines(t *testing.T) {
	// 9001 characters with no newline anywhere force hard cuts.
	text := strings.Repeat("a", 9001)
	parts := splitMessage(text, maxMessageLen)

	require.Len(t, parts, 3)
	assert.Len(t, parts[0], maxMessageLen)
	assert.Len(t, parts[1], maxMessageLen)
	assert.Len(t, parts[2], 1001)
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessage_PrefersNewline(t *testing.T) {
	// A newline just before the boundary becomes the cut point.
	text := strings.Repeat("a", 3990) + "\n" + strings.Repeat("b", 4009)
	parts := splitMessage(text, maxMessageLen)

	require.GreaterOrEqual(t, len(parts), 2)
	assert.Equal(t, strings.Repeat("a", 3990), parts[0])
	for _, part := range parts {
		assert.LessOrEqual(t, len(part), maxMessageLen)
	}
}

func TestSplitMessage_HardCutKeepsRunesWhole(t *testing.T) {
	// A multi-byte rune straddling the byte boundary must not be severed;
	// Telegram rejects parts that are not valid UTF-8.
	text := strings.Repeat("a", 3999) + "é" + strings.Repeat("b", 200)
	parts := splitMessage(text, maxMessageLen)

	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 3999), parts[0])
	assert.Equal(t, "é"+strings.Repeat("b", 200), parts[1])
	for i, part := range parts {
		assert.True(t, utf8.ValidString(part), "part %d is not valid UTF-8", i)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessage_MultibyteOnly(t *testing.T) {
	// 2000 three-byte runes: the 4000-byte boundary falls mid-rune.
	text := strings.Repeat("€", 2000)
	parts := splitMessage(text, maxMessageLen)

	require.Greater(t, len(parts), 1)
	for i, part := range parts {
		assert.LessOrEqual(t, len(part), maxMessageLen)
		assert.True(t, utf8.ValidString(part), "part %d is not valid UTF-8", i)
	}
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessage_DropsLeadingWhitespace(t *testing.T) {
	text := strings.Repeat("a", 3999) + "\n   " + strings.Repeat("b", 100)
	parts := splitMessage(text, maxMessageLen)

	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("b", 100), parts[1])
}

func TestSplitMessage_CoversAllContent(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("línea de resumen con algo de contenido útil\n")
	}
	text := b.String()

	parts := splitMessage(text, maxMessageLen)
	require.Greater(t, len(parts), 1)
	for _, part := range parts {
		assert.LessOrEqual(t, len(part), maxMessageLen)
		assert.NotEmpty(t, part)
	}

	// Nothing but separator whitespace may be lost in the split.
	joined := strings.Join(parts, "\n")
	assert.Equal(t,
		strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", ""),
		strings.ReplaceAll(joined, "\n", ""))
}
