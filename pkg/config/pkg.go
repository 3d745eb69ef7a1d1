package config

import (
	"os"

	"github.com/apex/log"
)

var configer Configer = &DotenvConfig{}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// MustLoadFromRosterDotenv loads the dotenv file pointed at by
// ROSTER_DOTENV_PATH and makes it the package default Configer. The server
// can't run without its configuration, so a missing or unloadable file is
// fatal.
func MustLoadFromRosterDotenv() Configer {
	dotenvFilePath := os.Getenv("ROSTER_DOTENV_PATH")
	if dotenvFilePath == "" {
		log.Fatalf("ROSTER_DOTENV_PATH not set or blank")
	}

	c := NewDotenvConfig(dotenvFilePath)
	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading configuration file %s: %s", dotenvFilePath, err)
	}

	SetConfig(c)

	return c
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}
