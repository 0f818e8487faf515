package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rpncalc/internal/paths"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Precision       int    `yaml:"precision"`
	SegmentCapacity int    `yaml:"segment_capacity"`
	Journal         bool   `yaml:"journal"`
	History         bool   `yaml:"history"`
	DataDir         string `yaml:"data_dir,omitempty"`
}

func newInitCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the journal",
		Long: `Create the configuration directory with a default config.yaml, then create the
data directory and initialize the journal database. Existing files are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, o.settings)
		},
	}
}

func runInit(cmd *cobra.Command, st settings) error {
	if err := os.MkdirAll(st.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := paths.ConfigFile(st.configDir)
	created, err := writeConfigIfMissing(configPath, configFile{
		Precision:       st.precision,
		SegmentCapacity: st.segmentCapacity,
		Journal:         st.journal,
		History:         st.history,
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	j, err := openJournal(st)
	if err != nil {
		return sysError(err)
	}
	if err := j.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize journal: %w", err))
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "wrote %s\n", configPath)
	} else {
		fmt.Fprintf(out, "kept %s\n", configPath)
	}
	fmt.Fprintf(out, "journal ready in %s\n", st.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
