package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "dev", String())

	old := GitCommit
	GitCommit = "abc1234"
	defer func() { GitCommit = old }()
	assert.Equal(t, "dev (abc1234)", String())
}
