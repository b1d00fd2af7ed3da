package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/vlist/pkg/version"
)

func TestGetVersion(t *testing.T) {
	v := version.GetVersion()

	assert.NotEmpty(t, v)
	assert.True(t, version.IsValid(v))
	assert.NotEmpty(t, version.GetGitCommit())
	assert.NotEmpty(t, version.GetBuildDate())
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "1.2.3", want: true},
		{in: "v0.4.0", want: true},
		{in: "0.0.0-dev", want: true},
		{in: "1.0.0-rc.1+build.5", want: true},
		{in: "", want: false},
		{in: "latest", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, version.IsValid(tt.in))
		})
	}
}
