package schema

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.BoolP("force", "f", false, "")
	fs.String("output", "a.out", "")
	fs.Int("level", 3, "")
	fs.CountP("verbose", "v", "")
	fs.StringSlice("tag", nil, "")

	s, err := FromFlagSet(fs)
	require.NoError(t, err)

	assert.Equal(t, KindFlag, s["force"].Type)
	assert.Equal(t, KindCount, s["verbose"].Type)
	assert.Equal(t, KindList, s["tag"].Type)

	require.NotNil(t, s["output"].TextDefault)
	assert.Equal(t, "a.out", *s["output"].TextDefault)
	require.NotNil(t, s["level"].IntDefault)
	assert.Equal(t, 3, *s["level"].IntDefault)

	// shorthands become aliases onto the long name
	assert.Equal(t, KindAlias, s["f"].Type)
	assert.Equal(t, "force", s["f"].Target)
	assert.Equal(t, "verbose", s["v"].Target)

	require.NoError(t, s.Validate())
}

func TestFromFlagSetNil(t *testing.T) {
	_, err := FromFlagSet(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be nil")
}

func TestFromFlagSetUnsupportedType(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration("timeout", 0, "")

	_, err := FromFlagSet(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no option kind mapping")
}
