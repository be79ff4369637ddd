// Package shell generates the snippets that bind a key in the user's shell
// to open the clipboard picker.
package shell

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// ShellType identifies a supported shell.
type ShellType string

const (
	Bash ShellType = "bash"
	Zsh  ShellType = "zsh"
	Fish ShellType = "fish"
)

// DefaultBinding is the chord bound by the generated snippets: ctrl+x
// followed by ctrl+v.
const DefaultBinding = `\C-x\C-v`

// Parse maps a user-supplied name to a ShellType. "auto" and "" detect.
func Parse(name string) (ShellType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Detect(), nil
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	default:
		return "", fmt.Errorf("shell: unsupported shell %q (supported: bash, zsh, fish)", name)
	}
}

// Integration returns the snippet for sh that runs bin on ctrl+x ctrl+v and
// redraws the prompt afterwards.
func Integration(sh ShellType, bin string) string {
	q := strconv.Quote(bin)
	switch sh {
	case Zsh:
		return fmt.Sprintf(`# recopy: open the clipboard picker with ctrl+x ctrl+v
recopy-picker() {
  %s </dev/tty
  zle reset-prompt
}
zle -N recopy-picker
bindkey '^X^V' recopy-picker
`, q)
	case Fish:
		return fmt.Sprintf(`# recopy: open the clipboard picker with ctrl+x ctrl+v
bind \cx\cv '%s; commandline -f repaint'
`, strings.ReplaceAll(bin, "'", `\'`))
	default:
		return fmt.Sprintf(`# recopy: open the clipboard picker with ctrl+x ctrl+v
bind -x '"%s": %s'
`, DefaultBinding, q)
	}
}

// Detect returns the current shell by examining $SHELL and then the parent
// process, falling back to Bash.
func Detect() ShellType {
	if sh := parseName(filepath.Base(os.Getenv("SHELL"))); sh != "" {
		return sh
	}
	if sh := detectParent(); sh != "" {
		return sh
	}
	return Bash
}

func detectParent() ShellType {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	switch runtime.GOOS {
	case "linux":
		data, err := os.ReadFile("/proc/" + strconv.Itoa(ppid) + "/comm")
		if err != nil {
			return ""
		}
		return parseName(strings.TrimSpace(string(data)))
	case "darwin":
		out, err := exec.Command("ps", "-p", strconv.Itoa(ppid), "-o", "comm=").Output()
		if err != nil {
			return ""
		}
		return parseName(filepath.Base(strings.TrimSpace(string(out))))
	}
	return ""
}

// parseName maps a shell binary name such as "-zsh" to a ShellType, or ""
// when unrecognized.
func parseName(name string) ShellType {
	switch strings.ToLower(strings.TrimPrefix(name, "-")) {
	case "bash":
		return Bash
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	}
	return ""
}
