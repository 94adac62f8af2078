package chunking

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter reports the number of tokens in a piece of text. Token counts
// are informational metadata on chunks; they do not affect where cuts fall.
type TokenCounter func(text string) int

// WhitespaceTokenCounter counts whitespace-delimited tokens.
// This is the default counter and needs no external data.
func WhitespaceTokenCounter(text string) int {
	return len(strings.Fields(text))
}

// NewTiktokenCounter returns a TokenCounter backed by the named tiktoken
// encoding (e.g. "cl100k_base"). Loading an encoding may fetch BPE data on
// first use, so construction can fail in offline environments; callers
// should fall back to WhitespaceTokenCounter in that case.
func NewTiktokenCounter(encoding string) (TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}, nil
}
