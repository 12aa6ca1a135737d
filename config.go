package winnow

import (
	"github.com/spf13/viper"
)

func loadConfig() {
	viper.SetConfigName("winnowrc")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.winnow")

	setupDefaults()

	viper.ReadInConfig()

	viper.SetEnvPrefix("winnow")
	viper.AutomaticEnv()
}

func setupDefaults() {
	defaultSettings := map[string]interface{}{
		"required_size":    10,
		"shard_size":       0, // 0 derives the shard size from required_size
		"min_doc_count":    1,
		"max_concurrency":  16, // Maximum number of concurrent shard reductions
		"dict_cache_size":  8,  // Number of dictionaries kept resident
		"working_location": ".",
		"verbose":          false,
	}
	for key, value := range defaultSettings {
		viper.SetDefault(key, value)
	}

	aliases := map[string]string{
		"verbose":          "v",
		"working_location": "o",
	}
	for key, alias := range aliases {
		viper.RegisterAlias(alias, key)
	}
}
