package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"ClawDeploy":             "clawdeploy",
		"Paw Metrics Pro":        "paw-metrics-pro",
		"  spaced   out  ":       "spaced-out",
		"C++ Tools & More!":      "c-tools-more",
		"already-a-slug":         "already-a-slug",
		"--weird---input--":      "weird-input",
		"Ünïcode Náme":           "ünïcode-náme",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyLength(t *testing.T) {
	long := Slugify(strings.Repeat("platform ", 20))
	assert.LessOrEqual(t, len(long), 64)
	assert.False(t, strings.HasSuffix(long, "-"))
}
