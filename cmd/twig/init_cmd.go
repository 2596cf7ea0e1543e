package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twig-cli/twig/internal/output"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init <shell>",
		Short:   "Output shell integration script",
		GroupID: GroupUtility,
		Args:    cobra.ExactArgs(1),
		Long: `Output the shell integration script: a twig wrapper function and
the completion hook.

Without the wrapper, switch and add only print paths (a subprocess
cannot change the parent shell's directory). The wrapper runs the real
binary and changes into any directory it prints. The completion hook
answers tab presses through the binary itself, so candidates are
always live branch, worktree and repository names.`,
		Example: `  eval "$(twig init bash)"                          # add to ~/.bashrc
  eval "$(twig init zsh)"                           # add to ~/.zshrc
  twig init powershell | Out-String | iex           # add to $PROFILE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			switch args[0] {
			case "bash":
				out.Raw(bashInit)
			case "zsh":
				out.Raw(zshInit)
			case "powershell":
				out.Raw(powershellInit)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, powershell)", args[0])
			}
			return nil
		},
	}

	// Completions
	cmd.ValidArgsFunction = completeShellArg

	return cmd
}

const bashInit = `# twig shell integration
# Install: eval "$(twig init bash)"

twig() {
    local out
    out="$(command twig "$@")" || return $?
    if [[ -n "$out" && -d "$out" ]]; then
        cd "$out" || return 1
    elif [[ -n "$out" ]]; then
        printf '%s\n' "$out"
    fi
}

_twig_completion() {
    local IFS=$'\n'
    local response
    response=$(env COMP_WORDS="${COMP_WORDS[*]}" COMP_CWORD="$COMP_CWORD" _TWIG_COMPLETE=bash_complete command twig)

    local completion type value
    for completion in $response; do
        IFS=',' read type value <<< "$completion"
        case "$type" in
        dir)
            COMPREPLY=()
            compopt -o dirnames
            ;;
        file)
            COMPREPLY=()
            compopt -o default
            ;;
        plain)
            COMPREPLY+=("$value")
            ;;
        esac
    done

    return 0
}

complete -o nosort -F _twig_completion twig
`

const zshInit = `# twig shell integration
# Install: eval "$(twig init zsh)"

twig() {
    local out
    out="$(command twig "$@")" || return $?
    if [[ -n "$out" && -d "$out" ]]; then
        cd "$out" || return 1
    elif [[ -n "$out" ]]; then
        printf '%s\n' "$out"
    fi
}

_twig_completion() {
    local -a completions
    local -a completions_with_descriptions
    local -a response
    (( ! $+commands[twig] )) && return 1

    response=("${(@f)$(env COMP_WORDS="${words[*]}" COMP_CWORD=$((CURRENT-1)) _TWIG_COMPLETE=zsh_complete command twig)}")

    local type key descr
    for type key descr in ${response}; do
        if [[ "$type" == "plain" ]]; then
            if [[ "$descr" == "_" ]]; then
                completions+=("$key")
            else
                completions_with_descriptions+=("$key:$descr")
            fi
        elif [[ "$type" == "dir" ]]; then
            _path_files -/
        elif [[ "$type" == "file" ]]; then
            _path_files -f
        fi
    done

    if [ -n "$completions_with_descriptions" ]; then
        _describe -V unsorted completions_with_descriptions -U
    fi
    if [ -n "$completions" ]; then
        compadd -U -V unsorted -a completions
    fi
}

compdef _twig_completion twig
`

const powershellInit = `# twig shell integration
# Install: twig init powershell | Out-String | Invoke-Expression

function twig {
    $twigBin = (Get-Command -CommandType Application twig | Select-Object -First 1).Source
    $output = & $twigBin @args
    if ($LASTEXITCODE -eq 0 -and $output -is [string] -and (Test-Path -PathType Container $output)) {
        Set-Location $output
    }
    elseif ($null -ne $output) {
        $output
    }
}

Register-ArgumentCompleter -Native -CommandName twig -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $env:_TWIG_COMPLETE = "powershell_complete"
    $env:COMP_WORDS = $commandAst.ToString()
    $env:COMP_CPOS = $cursorPosition

    try {
        $twigBin = (Get-Command -CommandType Application twig | Select-Object -First 1).Source
        & $twigBin | ForEach-Object {
            $value, $description = $_ -split '::', 2
            if (-not $description) { $description = $value }
            [System.Management.Automation.CompletionResult]::new($value, $value, 'ParameterValue', $description)
        }
    }
    finally {
        Remove-Item Env:_TWIG_COMPLETE
        Remove-Item Env:COMP_WORDS
        Remove-Item Env:COMP_CPOS
    }
}
`
