package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

// defaultRecruitingStepID is the "Applied" step every synced applicant lands
// on; overridable via RECRUITING_STEP_ID.
const defaultRecruitingStepID = 6960371

type PipelineConfig struct {
	APIKey           string
	AppKey           string
	BaseURL          string
	RecruitingStepID int64
}

var (
	pipelineConfig *PipelineConfig
	pipelineOnce   sync.Once
)

func LoadPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		baseURL := os.Getenv("PIPELINE_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api.pipelinecrm.com/api/v3"
		}

		stepID := int64(defaultRecruitingStepID)
		if raw := os.Getenv("RECRUITING_STEP_ID"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Printf("Warning: invalid RECRUITING_STEP_ID %q, defaulting to %d", raw, stepID)
			} else {
				stepID = parsed
			}
		}

		pipelineConfig = &PipelineConfig{
			APIKey:           os.Getenv("PIPELINE_API_KEY"),
			AppKey:           os.Getenv("PIPELINE_APP_KEY"),
			BaseURL:          baseURL,
			RecruitingStepID: stepID,
		}
	})
	return pipelineConfig
}
