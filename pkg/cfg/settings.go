package cfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by LoadSettings.
const EnvPrefix = "OTDCONVERT"

// Settings are the runtime options of the command line tool.
type Settings struct {
	Machine     MachineConfig
	LogLevel    string
	LogFormat   string
	LogOutput   string
	MetricsFile string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("machine", 130)
	v.SetDefault("linear_tool", DefaultLinearTool)
	v.SetDefault("shaped_tool", DefaultShapedTool)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "")
	v.SetDefault("metrics_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads settings from defaults, an optional config file and
// OTDCONVERT_* environment variables. With an empty path, otdconvert.yaml in
// the working directory is used if present.
func LoadSettings(path string) (Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("otdconvert")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	return Settings{
		Machine: MachineConfig{
			Number:     v.GetInt("machine"),
			LinearTool: v.GetInt("linear_tool"),
			ShapedTool: v.GetInt("shaped_tool"),
		},
		LogLevel:    v.GetString("log.level"),
		LogFormat:   v.GetString("log.format"),
		LogOutput:   v.GetString("log.output"),
		MetricsFile: v.GetString("metrics_file"),
	}, nil
}
