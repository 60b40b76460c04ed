// Package config provides configuration management for the asset decoder
// and session protocol CLI tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pixelbound/equilibre/pkg/infrastructure/logger"
	"github.com/pixelbound/equilibre/pkg/wld"
)

// Settings holds the configuration options loaded from a YAML file.
type Settings struct {
	// EverQuestDirectory is the OS path to the EverQuest install.
	// cmd/equilibre does not read it; archive paths given to the CLI are
	// used as given.
	EverQuestDirectory string `yaml:"everquest_directory"`

	// LoginHost and LoginPort name a login server. cmd/equilibre does not
	// read them; its login command defaults to 127.0.0.1:5998 when
	// --host/--port are not given.
	LoginHost string `yaml:"login_host"`
	LoginPort int    `yaml:"login_port"`

	// CrcKey is a CRC-32 key for the session protocol's packet trailer.
	// Nothing in this repository reads it; packet-info takes its key
	// from the -c flag.
	CrcKey uint32 `yaml:"crc_key"`

	// PacketDumpDirectory names a directory for captured datagrams.
	// Nothing in this repository reads it, and --dump-packets writes no
	// files.
	PacketDumpDirectory string `yaml:"packet_dump_directory"`

	// LoggerVerbosity sets the verbosity level of the logger.
	LoggerVerbosity logger.Verbosity `yaml:"logger_verbosity"`

	// ModelExportFormat is kept for forward compatibility with the asset
	// exporters; nothing in this repo reads it.
	ModelExportFormat wld.ModelExportFormat `yaml:"model_export_format"`
}

// NewSettings returns Settings populated with defaults.
func NewSettings() *Settings {
	return &Settings{
		EverQuestDirectory:  "/opt/EverQuest/",
		LoginHost:           "127.0.0.1",
		LoginPort:           5998,
		CrcKey:              0,
		PacketDumpDirectory: "./packet-dumps",
		LoggerVerbosity:     logger.VerbosityInfo,
	}
}

// Load reads Settings from a YAML file at path, starting from defaults.
func Load(path string) (*Settings, error) {
	s := NewSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	s.EverQuestDirectory = filepath.Clean(s.EverQuestDirectory) + string(filepath.Separator)

	return s, nil
}
