package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nbmd/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType says how a flag's value is completed.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef is one flag as the completion scripts see it.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef is one subcommand with its flags and positional values.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values, e.g. shell names
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.ipynb,*.md")
}

// completionMeta adds what a FlagSet cannot express: allowed values,
// file globs, and directory-only flags.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// inputGlob matches the files convert accepts.
const inputGlob = "*.ipynb,*.md"

// flagCompletionMeta returns completion metadata keyed by flag name.
func flagCompletionMeta() map[string]completionMeta {
	styles := append(assets.NewEmbeddedLoader().Styles(), assets.NoStyle)
	return map[string]completionMeta{
		"from":   {Values: []string{"ipynb", "md"}},
		"style":  {Values: styles},
		"config": {FileGlob: "*.yaml,*.yml"},
		"output": {IsDir: true},
	}
}

// extractFlagsFromFlagSet turns every flag of fs into a flagDef.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the FlagSets the commands parse with.
func getCommands() []commandDef {
	configFlags := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(configFlags, &commonFlags{})

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert notebooks to Markdown and back",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: inputGlob,
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(configFlags),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"convert", "config", "version", "completion"},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	case ShellPowerShell:
		return generatePowerShell(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion prints usage without arguments, else the named script.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", ErrUsage)
	}

	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return errUsage(err)
	}
	return nil
}

// shellInstall pairs each shell with the line that loads its script.
var shellInstall = []struct {
	shell   Shell
	where   string
	command string
}{
	{ShellBash, "add to ~/.bashrc", `eval "$(nbmd completion bash)"`},
	{ShellZsh, "add to ~/.zshrc after compinit", `eval "$(nbmd completion zsh)"`},
	{ShellFish, "run once", "nbmd completion fish > ~/.config/fish/completions/nbmd.fish"},
	{ShellPowerShell, "add to $PROFILE", "nbmd completion powershell | Out-String | Invoke-Expression"},
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbmd completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a completion script for bash, zsh, fish, or powershell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Setup:")
	for _, s := range shellInstall {
		fmt.Fprintf(w, "  %-11s %s:\n", s.shell, s.where)
		fmt.Fprintf(w, "  %-11s   %s\n", "", s.command)
	}
}
