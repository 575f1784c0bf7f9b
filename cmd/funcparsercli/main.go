// Command funcparsercli is a thin command-line front end over
// pkg/funcparser, exercising the library the way a host binding would:
// configure variable/parameter names and values, parse an expression, then
// evaluate it against one or more argument vectors.
//
// It supports three modes:
//
//	funcparsercli parse  'sin(x)+cos(x)^2' --vars x
//	funcparsercli eval   'sin(x)+cos(x)^2' --vars x --args 0
//	funcparsercli repl   --vars x,y --params a=1,b=2
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yuri05/OSPSuite.FuncParser/pkg/funcparser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "funcparsercli",
		Short:         "Parse and evaluate OSPSuite.FuncParser-style expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newEvalCmd(), newReplCmd())

	return root
}

// sharedFlags bundles the configuration flags common to parse/eval/repl:
// variable names, parameter names=values, case sensitivity, and the
// numeric-logical and comparison-tolerance policy knobs.
type sharedFlags struct {
	vars         []string
	params       []string
	caseSens     bool
	simplify     bool
	numericBools bool
	tolerance    float64
}

func addSharedFlags(cmd *cobra.Command, f *sharedFlags) {
	cmd.Flags().StringSliceVar(&f.vars, "vars", nil, "comma-separated ordered variable names")
	cmd.Flags().StringSliceVar(&f.params, "params", nil, "comma-separated name=value parameter bindings")
	cmd.Flags().BoolVar(&f.caseSens, "case-sensitive", false, "case-sensitive identifier matching")
	cmd.Flags().BoolVar(&f.simplify, "simplify", true, "build and prefer the constant-folded tree")
	cmd.Flags().BoolVar(&f.numericBools, "numeric-bools", false, "allow numeric (tolerant) booleans in AND/OR/NOT/IF")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "comparison tolerance")
}

// buildParsedFunction configures and parses expr according to f, returning
// the ready-to-evaluate ParsedFunction.
func (f *sharedFlags) buildParsedFunction(expr string) (*funcparser.ParsedFunction, error) {
	paramNames, paramValues, err := splitParams(f.params)
	if err != nil {
		return nil, err
	}

	pf := funcparser.New()
	pf.SetVariableNames(f.vars)
	pf.SetParameterNames(paramNames)
	if err := pf.SetParameterValues(paramValues); err != nil {
		return nil, err
	}
	pf.SetCaseSensitive(f.caseSens)
	pf.SetSimplifyAllowed(f.simplify)
	pf.SetLogicalNumericAllowed(f.numericBools)
	pf.SetComparisonTolerance(f.tolerance)

	if err := pf.Parse(expr); err != nil {
		return nil, err
	}

	return pf, nil
}

// splitParams parses "name=value" pairs into parallel name/value slices, in
// the order given.
func splitParams(raw []string) ([]string, []float64, error) {
	names := make([]string, 0, len(raw))
	values := make([]float64, 0, len(raw))
	for _, kv := range raw {
		name, valueText, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --params entry %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --params entry %q: %w", kv, err)
		}
		names = append(names, strings.TrimSpace(name))
		values = append(values, v)
	}

	return names, values, nil
}

// splitArgs parses a comma-separated list of variable values, in order.
func splitArgs(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", p, err)
		}
		out = append(out, v)
	}

	return out, nil
}

func newParseCmd() *cobra.Command {
	f := &sharedFlags{}
	cmd := &cobra.Command{
		Use:   "parse EXPRESSION",
		Short: "Parse an expression and dump its tree(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := f.buildParsedFunction(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pf.Dump())

			return nil
		},
	}
	addSharedFlags(cmd, f)

	return cmd
}

func newEvalCmd() *cobra.Command {
	f := &sharedFlags{}
	var argsFlag string
	cmd := &cobra.Command{
		Use:   "eval EXPRESSION",
		Short: "Parse an expression and evaluate it once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := f.buildParsedFunction(args[0])
			if err != nil {
				return err
			}
			values, err := splitArgs(argsFlag)
			if err != nil {
				return err
			}
			result, err := pf.Evaluate(values)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'g', -1, 64))

			return nil
		},
	}
	addSharedFlags(cmd, f)
	cmd.Flags().StringVar(&argsFlag, "args", "", "comma-separated variable values, positional to --vars")

	return cmd
}

func newReplCmd() *cobra.Command {
	f := &sharedFlags{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read expressions from stdin and evaluate each against the same variables/parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl(cmd, f)

			return nil
		},
	}
	addSharedFlags(cmd, f)

	return cmd
}

// runRepl reads "expression @ v1,v2,..." lines until EOF or ":quit",
// reusing the variable/parameter configuration in f across every line.
func runRepl(cmd *cobra.Command, f *sharedFlags) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "funcparsercli repl - Type :quit to exit")
	fmt.Fprintln(out, "  line syntax: <expression> [@ v1,v2,...]")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "funcparser> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return
		}

		expr, argsText, _ := strings.Cut(line, "@")
		pf, err := f.buildParsedFunction(strings.TrimSpace(expr))
		if err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)

			continue
		}
		values, err := splitArgs(argsText)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)

			continue
		}
		result, err := pf.Evaluate(values)
		if err != nil {
			fmt.Fprintf(out, "evaluate error: %v\n", err)

			continue
		}
		fmt.Fprintln(out, strconv.FormatFloat(result, 'g', -1, 64))
	}
}
