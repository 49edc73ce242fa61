package templation

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/apex/log"
	"github.com/mattn/go-shellwords"
)

// ScriptExecutor runs post-generation commands in the generated project.
type ScriptExecutor struct {
	// Dir is the working directory of every command.
	Dir string
	// Commands are command lines to run in order.
	Commands []string
	// Stdout and Stderr receive the command output.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandsFor selects the script commands of the platform.
func (script ScriptConfig) CommandsFor(goos string) []string {
	switch goos {
	case "windows":
		return script.Windows
	case "linux", "darwin":
		return script.Linux
	}
	return nil
}

// NewScriptExecutor creates an executor of the current platform commands.
func NewScriptExecutor(script ScriptConfig, dir string) *ScriptExecutor {
	return &ScriptExecutor{
		Dir:      dir,
		Commands: script.CommandsFor(runtime.GOOS),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// run executes a single command line.
func (executor *ScriptExecutor) run(ctx context.Context, command string) error {
	args, err := shellwords.Parse(command)
	if err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	if len(args) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = executor.Dir
	cmd.Stdout = executor.Stdout
	cmd.Stderr = executor.Stderr
	return cmd.Run()
}

// Execute runs all commands. A failed command is reported and the next one is
// run anyway. The number of failed commands is returned.
func (executor *ScriptExecutor) Execute(ctx context.Context) int {
	failed := 0
	for _, command := range executor.Commands {
		log.Debugf("Trying to execute the command %q", command)
		if err := executor.run(ctx, command); err != nil {
			log.Warnf("Failed to execute the command %q: %s", command, err)
			failed++
		}
	}
	return failed
}
