package config

import (
	"os"
	"path/filepath"

	"github.com/sigconform/sigconform/internal/constants"
	"github.com/sigconform/sigconform/internal/errors"
)

// HomeDir returns the sigconform home directory path.
// If the SIGCONFORM_HOME environment variable is set, it is used.
// Otherwise, it defaults to ~/.sigconform.
func HomeDir() (string, error) {
	if home := os.Getenv(constants.HomeEnvVar); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	return filepath.Join(home, constants.SigconformHome), nil
}

// GlobalConfigPath returns the path of the global configuration file.
func GlobalConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the path of the project configuration file,
// relative to the current working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.ProjectConfigDir, constants.GlobalConfigName)
}
