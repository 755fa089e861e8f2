package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"surveybot/config"
	"surveybot/extract"
	"surveybot/preset"
	"surveybot/survey"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Recover survey questions from generator output",
		Long: "Runs the text block extractor and question parser over a file (or stdin)\n" +
			"and prints the questions that would be used for a survey.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return printQuestions(cmd.OutOrStdout(), string(raw))
		},
	}
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

func printQuestions(w io.Writer, raw string) error {
	block, ok := extract.Block(raw)
	if !ok {
		fmt.Fprintln(w, "no candidate block found")
		return errors.New("no questions recovered")
	}
	qs := extract.ParseQuestions(block)
	if len(qs) == 0 {
		fmt.Fprintln(w, "no well-formed questions found")
		return errors.New("no questions recovered")
	}
	for i, q := range qs {
		fmt.Fprintf(w, "%d) %s\n", i+1, q.Text)
		for j, o := range q.Options {
			fmt.Fprintf(w, "   %d. %s\n", j+1, o)
		}
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [presets.yaml]",
		Short: "Check survey presets against the question and option limits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				path = cfg.Presets.Path
			}

			set, err := preset.Load(path)
			if err != nil {
				return err
			}
			return reportPresets(cmd.OutOrStdout(), set)
		},
	}
}

func reportPresets(w io.Writer, set *preset.Set) error {
	bad := set.Validate()
	for _, name := range set.Names() {
		if err, ok := bad[name]; ok {
			fmt.Fprintf(w, "✗ %s: %v\n", name, err)
			continue
		}
		drafts, _ := set.Lookup(name)
		fmt.Fprintf(w, "✓ %s (%d questions)\n", name, len(drafts))
	}
	if len(bad) > 0 {
		names := make([]string, 0, len(bad))
		for n := range bad {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("%d invalid preset(s): %v", len(bad), names)
	}
	fmt.Fprintf(w, "%d preset(s) valid, limits %d-%d questions and %d-%d options\n",
		set.Len(), survey.MinQuestions, survey.MaxQuestions, survey.MinOptions, survey.MaxOptions)
	return nil
}
