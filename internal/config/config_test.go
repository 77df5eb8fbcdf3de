package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frankban/quicktest"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := quicktest.New(t)
	cfg := Default()
	c.Assert(cfg.JAO.Corridor, quicktest.Equals, "PL-UA")
	c.Assert(cfg.JAO.Horizon, quicktest.Equals, "daily")
	c.Assert(cfg.JAO.APIKeyFile, quicktest.Equals, ".JAO_API_KEY")
	c.Assert(cfg.PSE.Report, quicktest.Equals, "PL_BPKD")
	c.Assert(cfg.WindowDays, quicktest.Equals, 30)
	c.Assert(cfg.Validate(), quicktest.IsNil)
}

func TestLoad_PartialOverride(t *testing.T) {
	c := quicktest.New(t)
	path := writeConfig(t, `
jao:
  corridor: PL-LT
window_days: 7
`)
	cfg, err := Load(path)
	c.Assert(err, quicktest.IsNil)
	c.Assert(cfg.JAO.Corridor, quicktest.Equals, "PL-LT")
	c.Assert(cfg.WindowDays, quicktest.Equals, 7)
	// Untouched fields keep their defaults.
	c.Assert(cfg.JAO.Horizon, quicktest.Equals, "daily")
	c.Assert(cfg.PSE.Report, quicktest.Equals, "PL_BPKD")
	c.Assert(cfg.DownloadDir, quicktest.Equals, "downloads")
}

func TestLoad_RejectsOversizedWindow(t *testing.T) {
	c := quicktest.New(t)
	path := writeConfig(t, "window_days: 45\n")
	_, err := Load(path)
	c.Assert(err, quicktest.ErrorMatches, ".*window_days must be between 1 and 31.*")
}

func TestLoad_RejectsUnknownHorizon(t *testing.T) {
	c := quicktest.New(t)
	path := writeConfig(t, "jao:\n  horizon: hourly\n")
	_, err := Load(path)
	c.Assert(err, quicktest.ErrorMatches, ".*horizon must be daily, monthly or yearly.*")
}

func TestLoad_MissingFile(t *testing.T) {
	c := quicktest.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	c.Assert(os.IsNotExist(err), quicktest.IsTrue)
}

func TestArtifactPaths(t *testing.T) {
	c := quicktest.New(t)
	cfg := Default()
	cfg.DownloadDir = "dl"
	cfg.ResultsDir = "res"
	c.Assert(cfg.RawJAOPath(), quicktest.Equals, filepath.Join("dl", "JAO.json"))
	c.Assert(cfg.RawPSEPath(), quicktest.Equals, filepath.Join("dl", "PSE.csv"))
	c.Assert(cfg.JAOModifiedPath(), quicktest.Equals, filepath.Join("dl", "JAO_modified.csv"))
	c.Assert(cfg.PSEModifiedPath(), quicktest.Equals, filepath.Join("dl", "PSE_modified.csv"))
	c.Assert(cfg.JoinedPath(), quicktest.Equals, filepath.Join("res", "JOINED.csv"))
}
