package main

import (
	"fmt"
	"io"
	"strings"
)

// Script generators write into a strings.Builder and flush once, so a
// failing writer never receives a partial script.

// globExts turns "*.ipynb,*.md" into ["ipynb", "md"].
func globExts(glob string) []string {
	var exts []string
	for _, part := range strings.Split(glob, ",") {
		part = strings.TrimPrefix(strings.TrimSpace(part), "*.")
		if part != "" {
			exts = append(exts, part)
		}
	}
	return exts
}

func commandNames(cmds []commandDef) string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return strings.Join(names, " ")
}

// flagNames returns every spelling of the command's flags.
func flagNames(c commandDef) []string {
	var names []string
	for _, f := range c.Flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func bashFilePattern(glob string) string {
	return "'!*.@(" + strings.Join(globExts(glob), "|") + ")'"
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for nbmd\n")
	b.WriteString("_nbmd_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") $(compgen -f -X %s -- \"$cur\") $(compgen -d -- \"$cur\") )\n",
		commandNames(cmds), bashFilePattern(inputGlob))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		if len(c.Flags) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range c.Flags {
				if f.Type == flagBool {
					continue
				}
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern = "-" + f.Short + "|" + pattern
				}
				fmt.Fprintf(&b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -f -X %s -- \"$cur\") $(compgen -d -- \"$cur\") )\n", bashFilePattern(f.FileGlob))
				case flagDir:
					b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
				}
				b.WriteString("            return 0\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flagNames(c), " "))
			b.WriteString("            return 0\n")
			b.WriteString("        fi\n")
		}

		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X %s -- \"$cur\") $(compgen -d -- \"$cur\") )\n", bashFilePattern(c.FilePattern))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(c.Args, " "))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _nbmd_completions nbmd\n")

	return flush(w, &b)
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

var zshEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

// zshGlob turns "*.ipynb,*.md" into *.(ipynb|md).
func zshGlob(glob string) string {
	return "*.(" + strings.Join(globExts(glob), "|") + ")"
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = `:file:_files -g "` + zshGlob(f.FileGlob) + `"`
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value: "
	}

	if f.Short == "" {
		return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef nbmd\n\n")
	b.WriteString("_nbmd() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscaper.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	fmt.Fprintf(&b, "        _files -g '%s'\n", zshGlob(inputGlob))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        shift words\n")
		b.WriteString("        (( CURRENT-- ))\n")
		b.WriteString("        _arguments")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n            %s", zshFlagSpec(f))
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", zshGlob(c.FilePattern))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Args, " "))
		}
		b.WriteString("\n        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("if [ \"$funcstack[1]\" = \"_nbmd\" ]; then\n")
	b.WriteString("    _nbmd \"$@\"\n")
	b.WriteString("else\n")
	b.WriteString("    compdef _nbmd nbmd\n")
	b.WriteString("fi\n")

	return flush(w, &b)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

var fishEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for nbmd\n\n")
	b.WriteString("function __fish_nbmd_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_nbmd_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\n")
	b.WriteString("end\n\n")

	b.WriteString("complete -c nbmd -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c nbmd -n __fish_nbmd_needs_command -a %s -d '%s'\n", c.Name, fishEscaper.Replace(c.Desc))
	}
	for _, ext := range globExts(inputGlob) {
		fmt.Fprintf(&b, "complete -c nbmd -n __fish_nbmd_needs_command -k -a '(__fish_complete_suffix .%s)'\n", ext)
	}

	for _, c := range cmds {
		b.WriteString("\n")
		cond := fmt.Sprintf("-n '__fish_nbmd_using_command %s'", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c nbmd %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscaper.Replace(f.Desc))
		}
		switch {
		case c.TakesFiles:
			for _, ext := range globExts(c.FilePattern) {
				fmt.Fprintf(&b, "complete -c nbmd %s -k -a '(__fish_complete_suffix .%s)'\n", cond, ext)
			}
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c nbmd %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}

	return flush(w, &b)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

var psEscaper = strings.NewReplacer("'", "''")

func psList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, "'"+psEscaper.Replace(it)+"'")
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# PowerShell completion for nbmd\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName nbmd -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscaper.Replace(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        '%s' = %s\n", c.Name, psList(flagNames(c)))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $values = @{\n")
	seen := make(map[string]bool)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        '--%s' = %s\n", f.Long, psList(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        '-%s' = %s\n", f.Short, psList(f.Values))
			}
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        '%s' = %s\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $cmd = $words[1]
    $prev = if ($wordToComplete -ne '') { $words[-2] } else { $words[-1] }

    if ($values.ContainsKey($prev)) {
        $values[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {
        $flags[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
        return
    }

    if ($positional.ContainsKey($cmd)) {
        $positional[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
}
`)

	return flush(w, &b)
}
