package batch

import (
	"log/slog"

	"shotline/internal/pipeline"
	"shotline/internal/shot"
	"shotline/internal/stages"
)

// StandardPipelineName identifies the built-in plate ingest pipeline.
const StandardPipelineName = "standard-ingest"

// StandardPipeline assembles the built-in six stage plate ingest:
// convert, transform, proxy (conditional), organize, register (conditional),
// cleanup. Proxy and register are skipped per run based on configuration.
func StandardPipeline(svcs *Services, logger *slog.Logger) (*pipeline.Pipeline, error) {
	proxyDisabled := func(_ *shot.Record, cfg pipeline.Config) bool {
		return !cfg.Bool(pipeline.KeyProxyEnabled, false)
	}
	trackerDisabled := func(_ *shot.Record, cfg pipeline.Config) bool {
		return !cfg.Bool(pipeline.KeyTrackerEnabled, false)
	}

	return pipeline.NewBuilder(StandardPipelineName).
		WithLogger(logger).
		AddStage(stages.NewConvert(svcs.Decoder, logger)).
		AddStage(stages.NewTransform(svcs.Transformer, logger)).
		AddConditionalStage(stages.NewProxy(svcs.Encoder, logger), proxyDisabled).
		AddStage(stages.NewOrganize(logger)).
		AddConditionalStage(stages.NewRegister(svcs.Tracker, logger), trackerDisabled).
		AddStage(stages.NewCleanup(logger)).
		Build()
}
