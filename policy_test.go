package winnow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultShardSize(t *testing.T) {
	var shardSizeTests = []struct {
		requiredSize int
		expected     int
	}{
		{1, 11},
		{10, 25},
		{100, 160},
	}

	for _, test := range shardSizeTests {
		assert.Equal(t, test.expected, DefaultShardSize(test.requiredSize))
		assert.True(t, DefaultShardSize(test.requiredSize) >= test.requiredSize)
	}
}

func TestPolicyValidation(t *testing.T) {
	valid := SelectionPolicy{Order: CountDesc, RequiredSize: 10, ShardSize: 25}
	assert.Nil(t, valid.validate())

	noSize := SelectionPolicy{Order: CountDesc, ShardSize: 25}
	assert.NotNil(t, noSize.validate())

	shardTooSmall := SelectionPolicy{Order: CountDesc, RequiredSize: 10, ShardSize: 5}
	assert.NotNil(t, shardTooSmall.validate())

	noOrder := SelectionPolicy{RequiredSize: 10, ShardSize: 25}
	assert.NotNil(t, noOrder.validate())
}
