// Package hooks provides user-configured commands run for catalog entries:
// a copy command receiving a short URL (the CLI stand-in for a copy-to-
// clipboard button) and a post-download command receiving the saved file.
package hooks

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-andiamo/splitter"
)

// Hooks holds the configured hook commands. %URL% in the copy command is
// replaced by the entry's short URL; %FILE% in the post-download command is
// replaced by the path of the downloaded file.
type Hooks struct {
	Copy         string `env:"COPYCMD"         env-default:"" yaml:"copy"`
	PostDownload string `env:"POSTDOWNLOADCMD" env-default:"" yaml:"postdownload"`
}

// GenerateCopyCmd generates the copy command for the given URL.
func (h *Hooks) GenerateCopyCmd(url string) string {
	return strings.ReplaceAll(h.Copy, "%URL%", url)
}

// GeneratePostDownloadCmd generates the post-download command for the given file.
func (h *Hooks) GeneratePostDownloadCmd(file string) string {
	return strings.ReplaceAll(h.PostDownload, "%FILE%", file)
}

// HasCopy returns true if a copy command is defined.
func (h *Hooks) HasCopy() bool {
	return h.Copy != ""
}

// HasPostDownload returns true if a post-download command is defined.
func (h *Hooks) HasPostDownload() bool {
	return h.PostDownload != ""
}

// ExecuteCopy executes the copy command for the given URL.
func (h *Hooks) ExecuteCopy(url string) error {
	return execute(h.GenerateCopyCmd(url))
}

// ExecutePostDownload executes the post-download command for the given file.
func (h *Hooks) ExecutePostDownload(file string) error {
	return execute(h.GeneratePostDownloadCmd(file))
}

// execute executes the given command.
func execute(command string) error {
	if command == "" {
		return nil
	}
	commandSplitter, err := splitter.NewSplitter(' ', splitter.SingleQuotes, splitter.DoubleQuotes)
	if err != nil {
		return fmt.Errorf("failed to create command splitter: %w", err)
	}
	trimmer := splitter.Trim("'\"")
	splitCmd, err := commandSplitter.Split(command, trimmer)
	if err != nil {
		return fmt.Errorf("failed to parse command '%s': %w", command, err)
	}
	if len(splitCmd) == 0 {
		return nil
	}
	//nolint:gosec,noctx // G204: Command execution with user input is intentional for hook functionality
	_, err = exec.Command(splitCmd[0], splitCmd[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w", command, err)
	}
	return nil
}
