package bust

import (
	"time"

	"gopkg.in/yaml.v2"
)

// A Manifest records what a pass touched, for deploy scripts that want to
// know more than the exit code
type Manifest struct {
	Version string   `yaml:"version"` // Explicit token, or "mtime"
	Scanned int      `yaml:"scanned"`
	Changed []string `yaml:"changed"`
	Took    string   `yaml:"took"`
}

// WriteManifest dumps the results of a pass to a YAML file at path
func (b *Bust) WriteManifest(path string, stats Stats) error {
	m := Manifest{
		Version: b.Version,
		Scanned: stats.Scanned,
		Changed: stats.Changed,
		Took:    stats.Duration.String(),
	}

	if m.Version == "" {
		m.Version = "mtime"
	}

	if stats.Duration > time.Millisecond {
		d := stats.Duration
		d /= time.Millisecond
		d *= time.Millisecond
		m.Took = d.String()
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return writeFile(path, out)
}
