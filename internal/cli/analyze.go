package cli

import (
	"errors"
	"io"
	"strings"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/objections"
	"leadscout_backend/internal/leads/textgen"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"

	"github.com/spf13/cobra"
)

type analyzeOutput struct {
	Objections []domain.Objection `json:"objections"`
	Summary    string             `json:"summary"`
	FollowUp   string             `json:"followUp"`
	Source     string             `json:"source"`
	UsedLLM    bool               `json:"usedLLM"`
}

func AnalyzeCmd() *cobra.Command {
	var (
		notes        string
		contactName  string
		templateOnly bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [notes]",
		Short: "Extract objections from sales notes and draft a summary and follow-up",
		Long:  "Notes are read from the argument, the --notes flag, or stdin when neither is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNotes(cmd.InOrStdin(), notes, args)
			if err != nil {
				return err
			}

			log := logger.NewWithWriter("production", cmd.ErrOrStderr())
			generator := textgen.NewGenerator(log)
			if !templateOnly {
				cfg, err := config.LoadWithoutDatabase()
				if err != nil {
					return err
				}
				if generator, err = textgen.NewFromConfig(cmd.Context(), cfg, log); err != nil {
					return err
				}
			}

			found := objections.Extract(text)
			out := generator.Generate(cmd.Context(), textgen.Request{
				Notes:       text,
				Objections:  found,
				ContactName: contactName,
			})

			return writeJSON(cmd.OutOrStdout(), analyzeOutput{
				Objections: found,
				Summary:    out.Summary,
				FollowUp:   out.FollowUp,
				Source:     out.Source,
				UsedLLM:    out.UsedLLM,
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Sales notes to analyze")
	cmd.Flags().StringVar(&contactName, "name", "", "Contact name for the follow-up greeting")
	cmd.Flags().BoolVar(&templateOnly, "template-only", false, "Skip external text providers")
	return cmd
}

func readNotes(stdin io.Reader, flag string, args []string) (string, error) {
	text := flag
	if len(args) > 0 {
		text = args[0]
	}
	if strings.TrimSpace(text) == "" && stdin != nil {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("notes are required")
	}
	return text, nil
}
