package marketdata

import "github.com/rs/zerolog"

// RefreshJob periodically re-quotes held symbols. Registered with the
// scheduler from main.
type RefreshJob struct {
	service *Service
	log     zerolog.Logger
}

// NewRefreshJob creates a new price refresh job
func NewRefreshJob(service *Service, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		service: service,
		log:     log.With().Str("job", "price_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "price_refresh"
}

// Run refreshes every held symbol
func (j *RefreshJob) Run() error {
	refreshed, err := j.service.RefreshAll()
	if err != nil {
		return err
	}

	j.log.Debug().Int("refreshed", refreshed).Msg("Price refresh cycle complete")
	return nil
}
