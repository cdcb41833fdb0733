// Package classify decides whether a byte buffer is displayable text.
//
// The check decodes the buffer as UTF-8 and inspects the decoded runes instead
// of sniffing magic numbers. It is approximate: buffers close to the threshold
// may land on either side, and that is accepted behavior.
package classify

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DefaultThreshold is the fraction of suspect runes at or above which a
// buffer is treated as binary.
const DefaultThreshold = 0.05

// Classifier classifies buffers with a fixed suspect-rune threshold.
type Classifier struct {
	Threshold float64
}

// New returns a Classifier using the given threshold.
// The threshold must be in (0, 1].
func New(threshold float64) (*Classifier, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("classifier threshold %v out of range (0, 1]", threshold)
	}
	return &Classifier{Threshold: threshold}, nil
}

// Default returns a Classifier using DefaultThreshold.
func Default() *Classifier {
	return &Classifier{Threshold: DefaultThreshold}
}

// Classify reports whether data is text under DefaultThreshold.
func Classify(data []byte) (string, bool) {
	return Default().Classify(data)
}

// Classify reports whether data is text. When it is, the returned string
// holds data unchanged, so converting it back to bytes reproduces data
// exactly even if it contains a few invalid sequences.
//
// An empty buffer is binary.
func (c *Classifier) Classify(data []byte) (string, bool) {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	runes, suspect := inspect(data)
	if float64(suspect) >= float64(runes)*threshold {
		return "", false
	}
	return string(data), true
}

// inspect decodes data and counts all runes and the null or replacement runes
// among them. The UTF-8 decoder never fails; invalid input becomes U+FFFD.
func inspect(data []byte) (runes, suspect int) {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for the UTF-8 decoder; count everything as suspect.
		return len(data), len(data)
	}

	for _, r := range string(decoded) {
		runes++
		if r == 0 || r == utf8.RuneError {
			suspect++
		}
	}
	return runes, suspect
}
