package tlenv

import (
	"fmt"
	"os"

	"github.com/function61/gokit/encoding/jsonfile"
)

// runtime configuration stored in the environment's config.json. decoded
// strictly so typos do not silently disable features.
type Config struct {
	Listen         string `json:"listen"`
	DepartmentName string `json:"department_name"`
	AcademicYear   string `json:"academic_year"`
	MQTTAddress    string `json:"mqtt_address,omitempty"` // tcp://host:port, empty = notifications off
	S3Bucket       string `json:"s3_bucket,omitempty"`    // empty = report archival off
	S3Region       string `json:"s3_region,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Listen:         "127.0.0.1:8501",
		DepartmentName: "Ақпараттық технологиялар",
		AcademicYear:   "2024-2025",
	}
}

func (e *Env) LoadConfig() (*Config, error) {
	file, err := os.Open(e.ConfigPath())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := &Config{}
	if err := jsonfile.UnmarshalDisallowUnknownFields(file, config); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return config, nil
}
