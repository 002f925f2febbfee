package stages

import (
	"context"
	"fmt"
	"log/slog"

	"shotline/internal/logging"
	"shotline/internal/naming"
	"shotline/internal/pipeline"
	"shotline/internal/services"
	"shotline/internal/services/tracker"
	"shotline/internal/shot"
)

// Register publishes the organized plate as a new version on the production
// tracker. The stage is conditional: pipelines skip it when the tracker is
// disabled in configuration.
type Register struct {
	service tracker.Service
	logger  *slog.Logger
}

// NewRegister constructs the register stage.
func NewRegister(service tracker.Service, logger *slog.Logger) *Register {
	return &Register{service: service, logger: logging.NewComponentLogger(logger, "stage-register")}
}

func (s *Register) Name() string { return StageRegister }

func (s *Register) InputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Register) OutputType() pipeline.ArtifactType { return pipeline.ArtifactShotRecord }

func (s *Register) Validate(_ context.Context, record *shot.Record, _ pipeline.Artifact) error {
	if s.service == nil {
		return services.Wrap(services.ErrConfiguration, StageRegister, "validate", "no tracker client configured", nil)
	}
	if record.PlatePath == "" {
		return services.Wrap(services.ErrValidation, StageRegister, "validate", "plate not organized yet", nil)
	}
	return nil
}

func (s *Register) Process(ctx context.Context, record *shot.Record, _ pipeline.Artifact, _ pipeline.Config) (*pipeline.Result, error) {
	res := pipeline.NewResult(StageRegister)

	found, err := s.service.FindShot(ctx, record.Project, record.ShotName())
	if err != nil {
		return res, services.Wrap(services.ErrTransient, StageRegister, "find shot", record.ShotName(), err)
	}

	versionName := naming.VersionContainer(record.ShotName(), record.TaskType, record.Element, record.Version)
	version, err := s.service.PublishVersion(ctx, tracker.PublishRequest{
		ShotID:     found.ID,
		Name:       versionName,
		TaskType:   record.TaskType,
		FirstFrame: record.FirstFrame,
		LastFrame:  record.LastFrame,
		PlatePath:  record.PlatePath,
		ProxyPath:  record.ProxyPath,
	})
	if err != nil {
		return res, services.Wrap(services.ErrTransient, StageRegister, "publish version", versionName, err)
	}
	if record.ProxyPath == "" {
		res.AddWarning("no proxy attached to published version")
	}

	s.logger.Info("version published",
		logging.String(logging.FieldShot, record.ShotName()),
		logging.String("version", versionName),
		logging.String("version_id", version.ID))

	res.Data[pipeline.DataVersionID] = version.ID
	res.Message = fmt.Sprintf("published %s as version %s", versionName, version.ID)
	return res, nil
}
