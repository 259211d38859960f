package bigquery

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds BigQuery-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Location of the jobs (e.g. "EU", "us-central1"). Empty lets BigQuery decide.
	Location string `mapstructure:"location"`

	// CredentialsFile is a service account key file. Empty uses application
	// default credentials.
	CredentialsFile string `mapstructure:"credentials_file"`

	// Labels are attached to every job.
	Labels map[string]string `mapstructure:"labels"`

	// MaxBytesBilled caps catalog queries. Zero means no cap.
	MaxBytesBilled int64 `mapstructure:"max_bytes_billed"`
}

func parseParams(raw map[string]any) (*Params, error) {
	p := &Params{}
	if len(raw) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid bigquery params: %w", err)
	}
	return p, nil
}
