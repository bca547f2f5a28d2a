package config

import "os"

func IsDebug() bool {
	return os.Getenv("BRIEFBOT_DEBUG") == "1"
}
