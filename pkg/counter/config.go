package counter

import (
	"encoding/json"
	"io/fs"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const ConfigEnvironmentVariable = "APPROXMC_CONFIG"

// Config is read from config.json; keys missing from the file keep their defaults
type Config struct {
	ApproxmcPath string `mapstructure:"approxmcPath"`
	Backend      string `mapstructure:"backend"`
}

func DefaultConfig() Config {
	return Config{
		ApproxmcPath: "approxmc",
		Backend:      ApproxMC,
	}
}

// LoadConfig decodes the JSON file at path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config file %q", path)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	if err := mapstructure.Decode(inputJson, &config); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config file %q", path)
	}
	return config, nil
}
