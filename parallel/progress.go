package parallel

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress advances once per completed item.
type progress interface {
	Add(n int) error
	Finish() error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }
func (noProgress) Finish() error { return nil }

func newProgress(cfg *config, total int, name string) progress {
	if cfg.noProgress {
		return noProgress{}
	}
	if cfg.bar != nil {
		return cfg.bar
	}

	desc := cfg.progressDesc
	if desc == "" {
		desc = name
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(cfg.progress),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
