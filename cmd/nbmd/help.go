package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert notebooks to Markdown and back")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A file or directory given without a command is converted.")
	fmt.Fprintln(w, "Run 'nbmd help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbmd convert <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a .ipynb notebook to Markdown, or a .md file back to a notebook")
	fmt.Fprintln(w, "plus a runnable Python script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     .ipynb or .md file, or a directory to convert in batch")
	fmt.Fprintln(w, "  output    Output file, or directory (default: next to the input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --from <fmt>             Directory input format: ipynb, md (default ipynb)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notebook to Markdown:")
	fmt.Fprintln(w, "      --no-outputs             Omit code cell outputs")
	fmt.Fprintln(w, "      --html                   Also write an HTML preview")
	fmt.Fprintln(w, "      --style <s>              Preview style: default, dark, none, or a .css path")
	fmt.Fprintln(w, "      --image-placeholder <s>  Text that replaces embedded images")
	fmt.Fprintln(w, "      --language <s>           Fence language when the notebook names none")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown to notebook:")
	fmt.Fprintln(w, "      --no-script              Do not write the .py script")
	fmt.Fprintln(w, "      --suffix <s>             Suffix for rebuilt notebooks (default \"_from_md\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show statistics, timing, and diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NBMD_CONFIG, NBMD_OUTPUT_DIR, NBMD_WORKERS, NBMD_FROM, NBMD_SUFFIX,")
	fmt.Fprintln(w, "  NBMD_IMAGE_PLACEHOLDER, NBMD_LANGUAGE, NBMD_STYLE, NBMD_INCLUDE_OUTPUTS,")
	fmt.Fprintln(w, "  NBMD_HTML, NBMD_SCRIPT. Flags override variables, variables override")
	fmt.Fprintln(w, "  the config file.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbmd config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration convert would use, as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbmd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbmd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}
	return nil
}
