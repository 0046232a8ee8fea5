package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const (
	EnvData        = "PCAL_DATA"
	EnvDB          = "PCAL_DB"
	EnvLang        = "PCAL_LANG"
	EnvRecordsPath = "PCAL_RECORDS_PATH"
	EnvVerbose     = "PCAL_VERBOSE"
)

// extensionEnv is the environment of an extension: the resolved configuration
// is passed as PCAL_* variables so that global flags reach it too.
func extensionEnv(cfg Config) []string {
	return append(os.Environ(),
		EnvData+"="+strings.Join(cfg.DataFiles, ","),
		EnvDB+"="+cfg.DBPath,
		EnvLang+"="+cfg.Lang,
		EnvRecordsPath+"="+cfg.RecordsPath,
		EnvVerbose+"="+strconv.FormatBool(cfg.Verbose),
	)
}

// RunExtension attempts to find and execute an external pcal-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "pcal-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return true, 1
	}
	logger := newLogger(cfg.Verbose)
	logger.Debug().Str("path", lp).Strs("args", args).Msg("running extension")

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = extensionEnv(cfg)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
