package config

import (
	"os"
	"sync"
)

type GoogleConfig struct {
	FormID             string
	ServiceAccountFile string
}

var (
	googleConfig *GoogleConfig
	googleOnce   sync.Once
)

func LoadGoogleConfig() *GoogleConfig {
	googleOnce.Do(func() {
		googleConfig = &GoogleConfig{
			FormID:             os.Getenv("FORM_ID"),
			ServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
		}
	})
	return googleConfig
}
