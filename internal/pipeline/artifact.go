package pipeline

// ArtifactType identifies the kind of artifact a stage consumes or produces.
// The builder matches these across adjacent stages once, at build time.
type ArtifactType string

const (
	// ArtifactShotRecord marks stages that work directly from the shot
	// record without a prior-stage artifact. It is also the implicit input
	// of the first stage in every pipeline.
	ArtifactShotRecord ArtifactType = "shot-record"

	// ArtifactDPXSequence is a camera-decoded DPX image sequence.
	ArtifactDPXSequence ArtifactType = "dpx-sequence"

	// ArtifactEXRSequence is a color-managed EXR image sequence.
	ArtifactEXRSequence ArtifactType = "exr-sequence"

	// ArtifactMovieFile is a single-file movie rendition.
	ArtifactMovieFile ArtifactType = "movie-file"
)

// Artifact is the value handed from one stage to the next. Sequence
// artifacts are *shot.Sequence values; shot-record stages receive the record
// they already hold and may ignore the artifact entirely.
type Artifact any

// Reserved keys in Result.Data.
const (
	// DataOutput holds the artifact threaded into the next stage. Stages
	// whose output type matches their input type may omit it to pass the
	// incoming artifact through unchanged.
	DataOutput = "output"

	// DataProxyFile holds the path of an encoded proxy movie.
	DataProxyFile = "proxy_file"

	// DataPlateDir holds the final plate sequence directory.
	DataPlateDir = "plate_dir"

	// DataVersionID holds the asset tracker version identifier.
	DataVersionID = "version_id"

	// DataFramesProcessed holds the number of frames a stage wrote.
	DataFramesProcessed = "frames_processed"
)
