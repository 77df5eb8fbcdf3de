package pipeline

import (
	"errors"
	"io/fs"
	"time"

	"corridor-report/internal/config"
	"corridor-report/internal/data"
	"corridor-report/internal/report"

	"go.uber.org/zap"
)

// Pipeline downloads the two source reports, normalizes them and joins them
// into one table. Stages run strictly in sequence; a failure aborts the rest
// of the run and leaves any already-written artifacts in place.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// RunParams are the per-invocation knobs. Zero values mean defaults: the key
// file from config, a trailing window ending now, the configured output path.
type RunParams struct {
	APIKey string // overrides key-file loading when set
	Start  time.Time
	End    time.Time
	Out    string

	PSE       report.PSEOptions
	Collision report.CollisionPolicy
}

func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes fetch -> normalize for both sources, then the join, and
// persists every intermediate artifact along the way. The joined table is
// returned even when persisting the final CSV fails.
func (p *Pipeline) Run(params RunParams) (*report.Table, error) {
	end := params.End
	if end.IsZero() {
		end = time.Now()
	}
	start := params.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -p.cfg.WindowDays)
	}
	out := params.Out
	if out == "" {
		out = p.cfg.JoinedPath()
	}

	if err := p.cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	apiKey := params.APIKey
	if apiKey == "" {
		var err error
		apiKey, err = data.LoadAPIKey(p.cfg.JAO.APIKeyFile)
		if err != nil {
			return nil, err
		}
	}

	jao := data.NewJAOClient(apiKey, p.cfg.JAO.BaseURL, p.cfg.JAO.Corridor, p.cfg.JAO.Horizon, p.log)
	rawJAO, err := jao.DownloadAuctions(start, end, p.cfg.RawJAOPath())
	if err != nil {
		return nil, err
	}
	auctions, err := report.NormalizeJAO(rawJAO)
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSV(p.cfg.JAOModifiedPath(), auctions); err != nil {
		return nil, err
	}
	p.log.Info("normalized JAO auctions", zap.Int("rows", len(auctions.Rows)))

	pse := data.NewPSEClient(p.cfg.PSE.BaseURL, p.cfg.PSE.Report, p.log)
	rawPSE, err := pse.DownloadReport(start, end, p.cfg.RawPSEPath())
	if err != nil {
		return nil, err
	}
	schedule, err := report.NormalizePSE(rawPSE, params.PSE)
	if err != nil {
		return nil, err
	}
	if err := report.WriteCSV(p.cfg.PSEModifiedPath(), schedule); err != nil {
		return nil, err
	}
	p.log.Info("normalized PSE schedule", zap.Int("rows", len(schedule.Rows)))

	joined, err := report.Join(schedule, auctions, params.Collision)
	if err != nil {
		return nil, err
	}
	if len(joined.Rows) == 0 {
		// A valid outcome, but worth telling apart from "no data at all".
		p.log.Warn("joined report is empty, sources have no overlapping hours",
			zap.Int("pse_rows", len(schedule.Rows)),
			zap.Int("jao_rows", len(auctions.Rows)))
	}

	if err := report.WriteCSV(out, joined); err != nil {
		p.log.Warn("failed to persist joined report", zap.String("path", out), zap.Error(err))
	} else {
		p.log.Info("saved joined report table", zap.String("path", out), zap.Int("rows", len(joined.Rows)))
	}
	return joined, nil
}

// IsExpected reports whether err belongs to the failure kinds the pipeline
// boundary reports as a single terminal line: credential problems, missing
// files and failed downloads. Parse failures and anything unanticipated are
// not expected and should propagate as fatal.
func IsExpected(err error) bool {
	var fetchErr *data.FetchError
	return errors.Is(err, data.ErrAPIKeyMissing) ||
		errors.Is(err, data.ErrAPIKeyEmpty) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.As(err, &fetchErr)
}
