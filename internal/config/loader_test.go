package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pfrederiksen/pbp-scores/internal/config"
)

// clearConfigEnvVars unsets every PBP_ variable for the duration of the test
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, config.EnvPrefix) {
			continue
		}
		_ = os.Unsetenv(key)
		t.Cleanup(func() { _ = os.Setenv(key, value) })
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pbp.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const tournamentYAML = `
scoreboard_url: http://example.com/ncb/scoreboard
workers: 2
format: json
output: out/pbp.json
checkpoints:
  step: 1
  end: 45
schedule:
  - date: "20150319"
    round: 2
  - date: "2015-03-21"
    round: 3
`

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then it should reproduce the 2014 tournament run", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ScoreboardURL, convey.ShouldEqual, config.DefaultScoreboardURL)
				convey.So(cfg.Timeout, convey.ShouldEqual, 30*time.Second)
				convey.So(cfg.Workers, convey.ShouldEqual, 1)
				convey.So(cfg.Format, convey.ShouldEqual, "csv")
				convey.So(cfg.Output, convey.ShouldEqual, config.DefaultOutput)
				convey.So(cfg.Checkpoints.Enabled, convey.ShouldBeTrue)
				convey.So(cfg.Checkpoints.Step, convey.ShouldEqual, 0.25)
				convey.So(cfg.Checkpoints.End, convey.ShouldEqual, 40.75)
				convey.So(len(cfg.Schedule), convey.ShouldEqual, 8)
				convey.So(cfg.Schedule[0].Date, convey.ShouldEqual, "20140320")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			cfg, err := config.Load(writeYAML(t, tournamentYAML))

			convey.Convey("Then file values replace the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ScoreboardURL, convey.ShouldEqual, "http://example.com/ncb/scoreboard")
				convey.So(cfg.Workers, convey.ShouldEqual, 2)
				convey.So(cfg.Format, convey.ShouldEqual, "json")
				convey.So(cfg.Checkpoints.Step, convey.ShouldEqual, 1.0)
				convey.So(cfg.Checkpoints.End, convey.ShouldEqual, 45.0)
				convey.So(cfg.Checkpoints.Enabled, convey.ShouldBeTrue)
				convey.So(len(cfg.Schedule), convey.ShouldEqual, 2)
				convey.So(cfg.Schedule[1].Round, convey.ShouldEqual, 3)
			})

			convey.Convey("Then unset keys keep their defaults", func() {
				convey.So(cfg.Retries, convey.ShouldEqual, 3)
				convey.So(cfg.UserAgent, convey.ShouldEqual, config.DefaultUserAgent)
			})
		})

		convey.Convey("When the file is named by PBP_CONFIG", func() {
			_ = os.Setenv("PBP_CONFIG", writeYAML(t, tournamentYAML))
			defer os.Unsetenv("PBP_CONFIG")

			cfg, err := config.Load("")

			convey.Convey("Then it is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Workers, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PBP_WORKERS", "4")
			_ = os.Setenv("PBP_TIMEOUT", "5s")
			_ = os.Setenv("PBP_LOG_LEVEL", "debug")
			_ = os.Setenv("PBP_CHECKPOINTS__STEP", "0.5")
			_ = os.Setenv("PBP_CHECKPOINTS__ENABLED", "false")
			defer func() {
				for _, k := range []string{"PBP_WORKERS", "PBP_TIMEOUT", "PBP_LOG_LEVEL", "PBP_CHECKPOINTS__STEP", "PBP_CHECKPOINTS__ENABLED"} {
					_ = os.Unsetenv(k)
				}
			}()

			cfg, err := config.Load(writeYAML(t, tournamentYAML))

			convey.Convey("Then env vars win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Workers, convey.ShouldEqual, 4)
				convey.So(cfg.Timeout, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Checkpoints.Step, convey.ShouldEqual, 0.5)
				convey.So(cfg.Checkpoints.Enabled, convey.ShouldBeFalse)
				convey.So(cfg.Checkpoints.End, convey.ShouldEqual, 45.0)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value is out of range", func() {
			_ = os.Setenv("PBP_WORKERS", "0")
			defer os.Unsetenv("PBP_WORKERS")

			_, err := config.Load("")

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the schedule has a bad date", func() {
			_, err := config.Load(writeYAML(t, "schedule:\n  - date: someday\n    round: 1\n"))

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
