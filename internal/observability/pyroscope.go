package observability

import (
	"fmt"
	"strconv"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/afcon-extractor/internal/config"
	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

// profilerLogger routes the profiler's own diagnostics into the run log.
type profilerLogger struct {
	logger *logging.Logger
}

func (l profilerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "pyroscope")
}

func (l profilerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "pyroscope")
}

func (l profilerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "pyroscope")
}

func profileTags(cfg config.Config) map[string]string {
	return map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"league":  strconv.Itoa(cfg.LeagueID),
		"season":  strconv.Itoa(cfg.Season),
	}
}

// InitPyroscope starts continuous profiling when enabled. An extraction run
// is short, so the returned stop func uploads the pending profile before
// shutting the profiler down.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Logger:            profilerLogger{logger: logger},
		Tags:              profileTags(cfg),
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"upload_rate", cfg.PyroscopeUploadRate,
	)

	return func() error {
		profiler.Flush(true)
		return profiler.Stop()
	}, nil
}
