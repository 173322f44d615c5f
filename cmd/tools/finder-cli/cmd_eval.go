package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/finder"
)

// profileFlags are the visitor fields shared by eval and whatif.
type profileFlags struct {
	query  string
	tn     string
	dgnl   string
	award  string
	gender string
	major  string
	rank10 bool
	kv1    bool
}

func (p *profileFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.query, "query", "", "Share query; overrides the other profile flags")
	f.StringVar(&p.tn, "tn", "", "Graduation exam score (0-10)")
	f.StringVar(&p.dgnl, "dgnl", "", "Aptitude exam score (0-100)")
	f.StringVar(&p.award, "award", "", "National award: none, third-place, second-place, first-place")
	f.StringVar(&p.gender, "gender", "", "male or female")
	f.StringVar(&p.major, "major", "", "Intended major, cntt for IT")
	f.BoolVar(&p.rank10, "rank10", false, "Top 10 on the school ranking")
	f.BoolVar(&p.kv1, "kv1", false, "Priority region 1")
}

func (p *profileFlags) input() finder.Input {
	if q := strings.TrimSpace(p.query); q != "" {
		return finder.DecodeShare(q)
	}
	values := url.Values{}
	set := func(k, v string) {
		if v != "" {
			values.Set(k, v)
		}
	}
	set(finder.ShareKeys.ScoreTN, p.tn)
	set(finder.ShareKeys.ScoreDGNL, p.dgnl)
	set(finder.ShareKeys.Award, p.award)
	set(finder.ShareKeys.Gender, p.gender)
	set(finder.ShareKeys.Major, p.major)
	if p.rank10 {
		values.Set(finder.ShareKeys.Top10SchoolRank, "true")
	}
	if p.kv1 {
		values.Set(finder.ShareKeys.PriorityRegion1, "true")
	}
	return finder.Collect(values, finder.ShareKeys)
}

var (
	evalProfile   profileFlags
	whatIfProfile profileFlags
	bonusTN       float64
	bonusDGNL     float64
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Rank the scholarships a profile qualifies for",
	Args:  cobra.NoArgs,
	RunE:  runEval,
}

var whatIfCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Show what a score bonus would unlock",
	Args:  cobra.NoArgs,
	RunE:  runWhatIf,
}

func init() {
	evalProfile.register(evalCmd)
	whatIfProfile.register(whatIfCmd)
	whatIfCmd.Flags().Float64Var(&bonusTN, "bonus-tn", 0, "Graduation score bonus (presets: "+finder.JoinOptions(finder.TNBonusOptions)+")")
	whatIfCmd.Flags().Float64Var(&bonusDGNL, "bonus-dgnl", 0, "Aptitude score bonus (presets: "+finder.JoinOptions(finder.DGNLBonusOptions)+")")
}

func loadEngine(ctx context.Context) (*finder.Engine, error) {
	store, err := catalog.LoadStore(ctx, catalog.FileSource{Path: catalogPath})
	if err != nil {
		return nil, err
	}
	return finder.NewEngine(store), nil
}

func runEval(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	in := evalProfile.input()
	report := finder.NewReport(in, engine.Evaluate(in))

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, report)
	}
	printReport(out, report)
	return nil
}

func runWhatIf(cmd *cobra.Command, args []string) error {
	bonus := finder.Bonus{TN: bonusTN, DGNL: bonusDGNL}
	if err := (finder.BonusLimits{}).Check(bonus); err != nil {
		return err
	}
	engine, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	report := finder.NewSimulationReport(engine.Simulate(whatIfProfile.input(), bonus))

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, report)
	}
	fmt.Fprintln(out, report.Message)
	for _, c := range report.Changes {
		if c.Kind == finder.ChangeTierUpgrade {
			fmt.Fprintf(out, "  %s: %s -> %s (score %d -> %d)\n", c.Name, c.PreviousTier, c.Tier, c.PreviousScore, c.Score)
			continue
		}
		fmt.Fprintf(out, "  %s: new match, %s (score %d)\n", c.Name, c.Tier, c.Score)
	}
	return nil
}

func printReport(out io.Writer, report finder.Report) {
	if report.Guidance != nil {
		fmt.Fprintln(out, report.Guidance.Title)
		for _, s := range report.Guidance.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
		return
	}
	for i, m := range report.Matches {
		fmt.Fprintf(out, "%d. %s (score %d, %s)\n", i+1, m.Name, m.Score, m.Tier)
		fmt.Fprintf(out, "   %s\n", m.HighlightBenefit)
		fmt.Fprintf(out, "   matched on: %s\n", m.ReasonText)
	}
	if report.Query != "" {
		fmt.Fprintf(out, "share: ?%s\n", report.Query)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
