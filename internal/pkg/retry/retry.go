package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig describes a fixed-delay retry budget. The ingestion tool uses
// it for the upload operation poll loop: one attempt per poll cycle, a fixed
// delay between cycles.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"5"`
	Delay    time.Duration `env:"DELAY" envDefault:"5s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
}
