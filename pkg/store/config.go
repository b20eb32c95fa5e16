package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// LoadConfig resolves the data directory. Precedence: STARLIGHT_* env vars,
// a .starlight config file in STARLIGHT_CONFIG_PATH or the working
// directory, then the default ~/.starlight.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.starlight")
	viper.SetConfigName(".starlight") // .yaml is implicit
	viper.SetEnvPrefix("STARLIGHT")
	viper.AutomaticEnv()

	if override := os.Getenv("STARLIGHT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
