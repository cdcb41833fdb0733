package classify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PlainText(t *testing.T) {
	data := []byte("hello, vault\nsecond line\n")

	text, ok := Classify(data)
	require.True(t, ok)
	assert.Equal(t, string(data), text)
}

func TestClassify_MultibyteText(t *testing.T) {
	data := []byte("naïve café — 日本語テキスト")

	text, ok := Classify(data)
	require.True(t, ok)
	assert.Equal(t, data, []byte(text))
}

func TestClassify_EmptyIsBinary(t *testing.T) {
	_, ok := Classify(nil)
	assert.False(t, ok)

	_, ok = Classify([]byte{})
	assert.False(t, ok)
}

func TestClassify_AllNullsIsBinary(t *testing.T) {
	_, ok := Classify(make([]byte, 128))
	assert.False(t, ok)
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name  string
		nulls int
		want  bool
	}{
		{"one null in a hundred", 1, true},
		{"four nulls in a hundred", 4, true},
		{"five nulls in a hundred", 5, false},
		{"twenty nulls in a hundred", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte("a"), 100)
			for i := 0; i < tt.nulls; i++ {
				data[i*3] = 0
			}
			_, ok := Classify(data)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClassify_InvalidSequencesCountAsSuspect(t *testing.T) {
	// 99 ASCII bytes plus one stray continuation byte: one replacement rune.
	data := append(bytes.Repeat([]byte("x"), 99), 0x80)

	text, ok := Classify(data)
	require.True(t, ok)
	assert.Equal(t, data, []byte(text), "text must round-trip byte for byte")

	// Mostly invalid bytes.
	binary := bytes.Repeat([]byte{0xff, 0xfe, 'a'}, 40)
	_, ok = Classify(binary)
	assert.False(t, ok)
}

func TestClassify_ByteRangeIsBinary(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	_, ok := Classify(data)
	assert.False(t, ok)
}

func TestClassify_Deterministic(t *testing.T) {
	inputs := [][]byte{
		[]byte("plain"),
		{0, 1, 2, 3},
		append([]byte("mostly text"), 0xc3),
	}

	for _, in := range inputs {
		text1, ok1 := Classify(in)
		text2, ok2 := Classify(in)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, text1, text2)
		if ok1 {
			assert.Equal(t, in, []byte(text1))
		}
	}
}

func TestNew_ValidatesThreshold(t *testing.T) {
	for _, bad := range []float64{0, -0.1, 1.5} {
		_, err := New(bad)
		assert.Error(t, err, "threshold %v", bad)
	}

	c, err := New(1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Threshold)
}

func TestClassifier_CustomThreshold(t *testing.T) {
	data := bytes.Repeat([]byte("b"), 100)
	for i := 0; i < 10; i++ {
		data[i] = 0
	}

	_, ok := Default().Classify(data)
	assert.False(t, ok)

	loose, err := New(0.5)
	require.NoError(t, err)
	_, ok = loose.Classify(data)
	assert.True(t, ok)
}

func TestClassifier_ZeroValueUsesDefault(t *testing.T) {
	var c Classifier
	_, ok := c.Classify([]byte("zero value classifier"))
	assert.True(t, ok)
}
