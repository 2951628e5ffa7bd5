package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextTypography(t *testing.T) {
	assert.Equal(t, "'quoted'", CleanText("‘quoted’"))
	assert.Equal(t, `"double"`, CleanText("“double”"))
	assert.Equal(t, "a - b -- c...", CleanText("a – b — c…"))
	assert.Equal(t, "90 degrees", CleanText("90°"))
	assert.Equal(t, "(c) 2024 (R) TM", CleanText("© 2024 ® ™"))
}

func TestCleanTextUnknownRunesBecomePlaceholder(t *testing.T) {
	assert.Equal(t, "sum ? of ??", CleanText("sum ∑ of 日本"))
}

func TestCleanTextKeepsLatin1(t *testing.T) {
	assert.Equal(t, "café naïve", CleanText("café naïve"))
	assert.Equal(t, "plain ASCII stays", CleanText("plain ASCII stays"))
}

func TestCleanTextDeterministic(t *testing.T) {
	in := "mixed ‘text’ with ∑ symbols"
	assert.Equal(t, CleanText(in), CleanText(in))
}
