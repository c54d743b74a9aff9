package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthecon/cea/pkg/cea"
	"github.com/healthecon/cea/pkg/ceplane"
	"github.com/healthecon/cea/pkg/config"
	"github.com/healthecon/cea/pkg/types"
)

var pretty bool

type opts struct {
	// intervention A (comparator)
	costA   float64
	qalyA   float64
	visitsA float64
	testsA  float64

	// intervention B (standard care)
	costB   float64
	qalyB   float64
	visitsB float64
	testsB  float64

	// economics
	rate      float64
	wtp       float64
	visitCost float64
	testCost  float64

	// inputs/outputs
	configPath string
	plotPath   string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "cea",
		Short: "Deterministic cost-effectiveness analysis of two interventions",
		Long: `cea compares two healthcare interventions: it discounts costs and
QALYs to present values, derives cost per QALY for each arm and the
incremental cost-effectiveness ratio (ICER) between them, judges the
result against a willingness-to-pay (WTP) threshold, and renders a
cost-effectiveness plane chart.

Inputs come from flags or from a YAML file (--config); the config file
wins when both are given. Dominant and dominated outcomes are reported
qualitatively instead of being compared to the threshold.

Examples:
  cea --cost-a 15000 --cost-b 8000 --qaly-a 10 --qaly-b 8 --discount-rate 0 --wtp 20000
  cea --config cea.yaml --plot out/CE_plane.png`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(o)
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "format output as a table instead of plain lines")

	root.Flags().Float64Var(&o.costA, "cost-a", 46734, "base cost of intervention A (comparator)")
	root.Flags().Float64Var(&o.qalyA, "qaly-a", 3.57, "QALYs gained under intervention A")
	root.Flags().Float64Var(&o.visitsA, "visits-a", 0, "additional outpatient visits under A")
	root.Flags().Float64Var(&o.testsA, "tests-a", 0, "additional diagnostic tests under A")

	root.Flags().Float64Var(&o.costB, "cost-b", 45447, "base cost of intervention B (standard care)")
	root.Flags().Float64Var(&o.qalyB, "qaly-b", 3.46, "QALYs gained under intervention B")
	root.Flags().Float64Var(&o.visitsB, "visits-b", 0, "additional outpatient visits under B")
	root.Flags().Float64Var(&o.testsB, "tests-b", 0, "additional diagnostic tests under B")

	root.Flags().Float64VarP(&o.rate, "discount-rate", "r", 0.035, "discount rate in [0,1) (NICE guideline: 0.035)")
	root.Flags().Float64VarP(&o.wtp, "wtp", "w", 20000, "willingness-to-pay threshold per QALY")
	root.Flags().Float64Var(&o.visitCost, "visit-cost", 0, "cost per outpatient visit")
	root.Flags().Float64Var(&o.testCost, "test-cost", 0, "cost per diagnostic test")

	root.Flags().StringVarP(&o.configPath, "config", "c", "", "YAML file supplying all inputs (overrides flags)")
	root.Flags().StringVar(&o.plotPath, "plot", "CE_plane.png", "CE plane output path (empty disables the chart)")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts) error {
	cfg := cea.Config{
		DiscountRate: o.rate,
		WTP:          o.wtp,
		VisitCost:    o.visitCost,
		TestCost:     o.testCost,
	}
	ivA := cea.Intervention{Name: "Intervention A", BaseCost: o.costA, QALY: o.qalyA, Visits: o.visitsA, Tests: o.testsA}
	ivB := cea.Intervention{Name: "Intervention B", BaseCost: o.costB, QALY: o.qalyB, Visits: o.visitsB, Tests: o.testsB}
	plotPath := o.plotPath

	if o.configPath != "" {
		in, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg, ivA, ivB = in.Config, in.A, in.B
		if in.Plot != "" {
			plotPath = in.Plot
		}
	}

	an, err := cea.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf(_console, cfg.DiscountRate*100, types.Money(cfg.WTP).Humanized(), time.Now().Format("2006-01-02 15:04:05"))

	appA, err := an.Appraise(ivA)
	if err != nil {
		return err
	}
	appB, err := an.Appraise(ivB)
	if err != nil {
		return err
	}

	if pretty {
		printTable(ivA, ivB, appA, appB)
	} else {
		printLines(ivA, ivB, appA, appB)
	}

	// The per-arm numbers above are already out; an undefined ICER or a
	// failed chart from here on must not take them with it.
	cmp, err := an.Compare(ivA, ivB)
	if err != nil {
		if errors.Is(err, cea.ErrUndefinedRatio) {
			fmt.Println("\nICER: undefined (both interventions yield identical QALYs)")
		}
		return err
	}

	printComparison(ivA, ivB, cfg, cmp)

	if plotPath != "" {
		params := ceplane.Params{
			DeltaQALY: cmp.DeltaQALY,
			DeltaCost: cmp.DeltaCost,
			ICER:      cmp.ICER,
			WTP:       cfg.WTP,
		}
		if err := ceplane.Render(params, plotPath); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		fmt.Printf("\nCE plane written to %s\n", plotPath)
	}
	return nil
}

func printTable(ivA, ivB cea.Intervention, appA, appB cea.Appraisal) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INTERVENTION\tTOTAL COST\tDISCOUNTED COST\tDISCOUNTED QALYs\tCOST/QALY")
	fmt.Fprintln(tw, "------------\t----------\t---------------\t----------------\t---------")
	printTableRow(tw, ivA.Name, appA)
	printTableRow(tw, ivB.Name, appB)
	tw.Flush()
}

func printTableRow(tw *tabwriter.Writer, name string, app cea.Appraisal) {
	fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%s\n",
		name,
		types.Money(app.TotalCost).Humanized(),
		types.Money(app.DiscountedCost).Humanized(),
		app.DiscountedQALY,
		types.Money(app.CostPerQALY).PerQALY(),
	)
}

func printLines(ivA, ivB cea.Intervention, appA, appB cea.Appraisal) {
	fmt.Printf("Total and Discounted Cost for %s: %s, %s\n",
		ivA.Name, types.Money(appA.TotalCost), types.Money(appA.DiscountedCost))
	fmt.Printf("Total and Discounted Cost for %s: %s, %s\n",
		ivB.Name, types.Money(appB.TotalCost), types.Money(appB.DiscountedCost))
	fmt.Printf("Discounted QALYs for %s: %.4f\n", ivA.Name, appA.DiscountedQALY)
	fmt.Printf("Discounted QALYs for %s: %.4f\n", ivB.Name, appB.DiscountedQALY)
	fmt.Printf("Cost per QALY for %s: %s\n", ivA.Name, types.Money(appA.CostPerQALY))
	fmt.Printf("Cost per QALY for %s: %s\n", ivB.Name, types.Money(appB.CostPerQALY))
}

func printComparison(ivA, ivB cea.Intervention, cfg cea.Config, cmp *cea.Comparison) {
	fmt.Println()
	fmt.Printf("Incremental cost (A-B):  %s\n", types.Money(cmp.DeltaCost).Humanized())
	fmt.Printf("Incremental QALYs (A-B): %.4f\n", cmp.DeltaQALY)
	fmt.Printf("ICER: %s\n", types.Money(cmp.ICER).PerQALY())

	switch cmp.Verdict {
	case cea.VerdictDominant:
		fmt.Printf("Verdict: %s is dominant (cheaper and more effective than %s)\n", ivA.Name, ivB.Name)
	case cea.VerdictDominated:
		fmt.Printf("Verdict: %s is dominated (costlier and less effective than %s)\n", ivA.Name, ivB.Name)
	default:
		fmt.Printf("Verdict: %s is %s at a threshold of %s\n",
			ivA.Name, cmp.Verdict, types.Money(cfg.WTP).PerQALY())
	}
}

const _console = `CEA - Deterministic Cost-Effectiveness Analysis

       Discount rate: %.1f%%
       WTP threshold: %s per QALY

Analysis as of %s:

`
