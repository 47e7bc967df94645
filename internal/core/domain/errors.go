package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateUnit is returned when the compiler reports two units with the same id in one cycle.
	ErrDuplicateUnit = zerr.New("duplicate source unit")

	// ErrUnknownModule is returned when a requested module id is not part of the current graph.
	ErrUnknownModule = zerr.New("unknown module")

	// ErrBuildFailed is returned when the compiler build step fails.
	ErrBuildFailed = zerr.New("build failed")

	// ErrBuildInProgress is returned when a build is started while another one is running.
	ErrBuildInProgress = zerr.New("build already in progress")

	// ErrManifestReadFailed is returned when the compiler manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read compiler manifest")

	// ErrManifestParseFailed is returned when the compiler manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse compiler manifest")

	// ErrNoBuildCommand is returned when no build command is configured.
	ErrNoBuildCommand = zerr.New("no build command configured")

	// ErrConfigNotFound is returned when no configuration file can be found.
	ErrConfigNotFound = zerr.New("could not find hotload.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidDuration is returned when a duration field in the config cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrUnsupportedVersion is returned when the config declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported config version")

	// ErrStoreReadFailed is returned when the watermark store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read watermark store")

	// ErrStoreWriteFailed is returned when the watermark store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write watermark store")

	// ErrStatFailed is returned when a unit's origin cannot be inspected.
	ErrStatFailed = zerr.New("failed to stat origin")

	// ErrEvaluationFailed is returned when the client runtime rejects or fails evaluating a payload.
	ErrEvaluationFailed = zerr.New("remote evaluation failed")

	// ErrNoClient is returned when no client runtime is connected to the evaluation channel.
	ErrNoClient = zerr.New("no client runtime connected")

	// ErrConnectionClosed is returned when the evaluation channel closes mid-request.
	ErrConnectionClosed = zerr.New("evaluation channel closed")

	// ErrMalformedPayload is returned by the client when a payload cannot be parsed.
	ErrMalformedPayload = zerr.New("malformed payload")

	// ErrUnknownEntryPoint is returned by the client for a call to an unregistered entry point.
	ErrUnknownEntryPoint = zerr.New("unknown entry point")

	// ErrReloadFailed is returned when re-requiring a module throws in the client.
	ErrReloadFailed = zerr.New("module reload failed")

	// ErrModuleNotFound is returned by a client loader when a module's artifact is missing.
	ErrModuleNotFound = zerr.New("module artifact not found")
)
