package config

import "os"

func IsDebug() bool {
	return os.Getenv("AIDEN_DEBUG") == "1"
}
