package winnow

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	loadConfig()

	assert.Equal(t, 10, viper.GetInt("required_size"))
	assert.Equal(t, 0, viper.GetInt("shard_size"))
	assert.Equal(t, 1, viper.GetInt("min_doc_count"))
	assert.Equal(t, ".", viper.GetString("working_location"))
	assert.False(t, viper.GetBool("verbose"))
}

func TestConfigAliases(t *testing.T) {
	loadConfig()

	viper.Set("o", "output")
	assert.Equal(t, "output", viper.GetString("working_location"))

	viper.Set("o", ".")
}
