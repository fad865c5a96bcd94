package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinkStripsFormatting(t *testing.T) {
	b := NewDeepLinkBuilder()

	link, err := b.BuildLink("+62 812-3456-7890", "hello")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/6281234567890?text=hello", link)
}

func TestBuildLinkEscapesBody(t *testing.T) {
	b := NewDeepLinkBuilder()

	link, err := b.BuildLink("15550001", "50% off today & tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/15550001?text=50%25+off+today+%26+tomorrow", link)
}

func TestBuildLinkRejectsDigitlessPhone(t *testing.T) {
	b := NewDeepLinkBuilder()

	_, err := b.BuildLink("not a phone", "hello")
	assert.Error(t, err)
}
