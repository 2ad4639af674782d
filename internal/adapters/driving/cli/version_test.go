package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	setupCLITest(t)

	originalVersion := version
	SetVersion("test-version-1.0.0")
	defer func() { version = originalVersion }()

	out, _, err := execute(t, nil, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "sectrack version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	setupCLITest(t)

	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, _, err := execute(t, nil, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "sectrack version dev")
}
