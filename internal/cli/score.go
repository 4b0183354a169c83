package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/validator"

	"github.com/spf13/cobra"
)

type scoreOutput struct {
	LeadScore        int                `json:"leadScore"`
	Status           domain.Status      `json:"status"`
	ScoreExplanation []string           `json:"scoreExplanation"`
	NextBestAction   string             `json:"nextBestAction"`
	Factors          []scoring.Factor   `json:"factors"`
	CallScript       scoring.CallScript `json:"callScript"`
}

func ScoreCmd() *cobra.Command {
	var (
		req     transport.CreateLeadRequest
		channel string
		segment string
		region  string
		heating string
		signals []string
		stage   string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a lead described by flags and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Channel = domain.Channel(channel)
			req.Segment = domain.Segment(segment)
			req.Region = domain.Region(region)
			req.HeatingType = domain.HeatingType(heating)
			for _, s := range signals {
				req.IntentSignals = append(req.IntentSignals, domain.IntentSignal(s))
			}

			val := validator.New()
			if err := transport.RegisterValidations(val); err != nil {
				return err
			}
			if err := val.Struct(req); err != nil {
				if fields := validator.FieldErrors(err); fields != nil {
					return invalidFlags(fields)
				}
				return err
			}
			if !domain.IsKnownStage(domain.Stage(stage)) {
				return fmt.Errorf("unknown stage %q", stage)
			}

			lead := domain.Lead{
				Channel:        req.Channel,
				Segment:        req.Segment,
				Region:         req.Region,
				RoofAreaM2:     req.RoofAreaM2,
				AnnualKwh:      req.AnnualKwh,
				MonthlyBillSek: req.MonthlyBillSek,
				HeatingType:    req.HeatingType,
				HasEV:          req.HasEV,
				IntentSignals:  req.IntentSignals,
				Stage:          domain.Stage(stage),
				ContactName:    req.ContactName,
			}
			scored, result := scoring.Apply(lead, time.Now())

			return writeJSON(cmd.OutOrStdout(), scoreOutput{
				LeadScore:        scored.LeadScore,
				Status:           scored.Status,
				ScoreExplanation: scored.ScoreExplanation,
				NextBestAction:   scored.NextBestAction,
				Factors:          result.Factors,
				CallScript:       scoring.GenerateCallScript(scored),
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&channel, "channel", string(domain.ChannelOrganic), "Acquisition channel")
	flags.StringVar(&segment, "segment", string(domain.SegmentVilla), "Customer segment")
	flags.StringVar(&region, "region", string(domain.RegionSE3), "Electricity price area (SE1-SE4)")
	flags.StringVar(&heating, "heating", string(domain.HeatingHeatPump), "Primary heating system")
	flags.IntVar(&req.RoofAreaM2, "roof", 0, "Roof area in m2")
	flags.IntVar(&req.AnnualKwh, "kwh", 0, "Annual consumption in kWh")
	flags.IntVar(&req.MonthlyBillSek, "bill", 0, "Monthly electricity bill in SEK")
	flags.BoolVar(&req.HasEV, "ev", false, "Household has an electric vehicle")
	flags.StringSliceVar(&signals, "signal", nil, "Intent signal, repeatable")
	flags.StringVar(&stage, "stage", string(domain.StageNew), "Pipeline stage")
	flags.StringVar(&req.ContactName, "name", "", "Contact name used in the call script")
	return cmd
}

func invalidFlags(fields map[string]string) error {
	parts := make([]string, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, name+": "+fields[name])
	}
	return fmt.Errorf("invalid flags: %s", strings.Join(parts, "; "))
}
