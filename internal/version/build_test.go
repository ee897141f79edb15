package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_CreatedBy(t *testing.T) {
	tests := []struct {
		version  string
		expected string
	}{
		{version: valueNotProvided, expected: "srcjar"},
		{version: "v0.4.1", expected: "srcjar 0.4.1"},
		{version: "1.0.0", expected: "srcjar 1.0.0"},
	}

	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			assert.Equal(t, test.expected, Version{Version: test.version}.CreatedBy("srcjar"))
		})
	}
}
