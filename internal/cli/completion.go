package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/ecodash/internal/config"
)

// FlagCompletion describes a flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values; nil means free-form or boolean
	ValueName string   // value label, empty for boolean flags
	IsFile    bool     // the flag takes a file path
}

// flagRegistry lists every flag accepted by config.ParseConfig.
var flagRegistry = []FlagCompletion{
	{Name: "mode", Help: "Run mode", Values: modes, ValueName: "mode"},
	{Name: "addr", Help: "HTTP listen address", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Name: "delay", Help: "Delay before the animation starts", Values: []string{"0s", "300ms", "1s"}, ValueName: "duration"},
	{Name: "frame", Help: "Display refresh interval", Values: []string{"16ms", "33ms", "50ms"}, ValueName: "duration"},
	{Name: "duration", Help: "Override every animation duration", Values: []string{"500ms", "1500ms", "3s"}, ValueName: "duration"},
	{Name: "targets", Help: "YAML file with dashboard targets", IsFile: true, ValueName: "file"},
	{Name: "timeout", Help: "Maximum run time in play mode", Values: []string{"10s", "30s", "1m"}, ValueName: "duration"},
	{Name: "theme", Help: "Terminal color theme", Values: []string{"green", "light"}, ValueName: "theme"},
	{Name: "cors-origins", Help: "Origins allowed by the HTTP surface", Values: []string{"*"}, ValueName: "origins"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "verbose", Help: "Debug logging"},
	{Name: "v", Help: "Debug logging"},
	{Name: "version", Help: "Show version information"},
	{Name: "completion", Help: "Print a completion script", Values: shells, ValueName: "shell"},
}

var (
	modes  = []string{config.ModeServe, config.ModeTUI, config.ModePlay}
	shells = []string{"bash", "zsh", "fish"}
)

// GenerateCompletion writes the completion script for shell to out.
func GenerateCompletion(out io.Writer, shell, program string) error {
	var script string
	switch strings.ToLower(shell) {
	case "bash":
		script = bashCompletion(program)
	case "zsh":
		script = zshCompletion(program)
	case "fish":
		script = fishCompletion(program)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion(program string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		switch {
		case f.IsFile:
			fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.Name)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Name, strings.Join(f.Values, " "))
		}
	}
	fn := "_" + strings.ReplaceAll(program, "-", "_") + "_completions"

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
%[3]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "%[4]s" -- "${cur}") )
    else
        COMPREPLY=( $(compgen -W "%[5]s" -- "${cur}") )
    fi
    return 0
}

complete -F %[2]s %[1]s
`, program, fn, cases.String(), strings.Join(opts, " "), strings.Join(modes, " "))
}

func zshCompletion(program string) string {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		entry := fmt.Sprintf("'-%s[%s]", f.Name, f.Help)
		switch {
		case f.IsFile:
			entry += fmt.Sprintf(":%s:_files'", f.ValueName)
		case len(f.Values) > 0:
			entry += fmt.Sprintf(":%s:(%s)'", f.ValueName, strings.Join(f.Values, " "))
		default:
			entry += "'"
		}
		args = append(args, "        "+entry)
	}
	args = append(args, fmt.Sprintf("        '1:mode:(%s)'", strings.Join(modes, " ")))

	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place this file in a directory listed in $fpath

_%[1]s() {
    _arguments -s \
%[2]s
}

_%[1]s "$@"
`, program, strings.Join(args, " \\\n"))
}

func fishCompletion(program string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Fish completion script for %s\n# Save as ~/.config/fish/completions/%s.fish\n\n", program, program)
	fmt.Fprintf(&b, "complete -c %s -f -n '__fish_is_first_arg' -a '%s'\n", program, strings.Join(modes, " "))
	for _, f := range flagRegistry {
		line := fmt.Sprintf("complete -c %s -o %s -d '%s'", program, f.Name, f.Help)
		switch {
		case f.IsFile:
			line += " -r -F"
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
