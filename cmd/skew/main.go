package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"

	"github.com/dargueta/skew"
	"github.com/dargueta/skew/analysis"
	skewtesting "github.com/dargueta/skew/testing"
)

func main() {
	app := cli.App{
		Name:  "skew",
		Usage: "Measure the compressibility of two-valued outcome sequences",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  "group-sizes",
				Usage: "run grouping widths to evaluate",
				Value: cli.NewIntSlice(analysis.DefaultGroupSizes...),
			},
			&cli.IntSliceFlag{
				Name:  "ngram-sizes",
				Usage: "transition n-gram widths to evaluate",
				Value: cli.NewIntSlice(analysis.DefaultNGramSizes...),
			},
			&cli.IntFlag{
				Name:  "golomb-m",
				Usage: "Golomb divisor; 0 derives it from the mean run length",
			},
			&cli.IntFlag{
				Name:  "table-overhead",
				Usage: "estimated bits to transmit one code table entry; -1 charges none",
				Value: analysis.DefaultTableOverheadBitsPerSymbol,
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "report the first strategy reaching this savings fraction",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Run every compression strategy against a flip file",
				Action:    analyzeFile,
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "csv",
						Usage: "also write the results to this CSV file",
					},
				},
			},
			{
				Name:      "compare",
				Usage:     "Measure a candidate's compressibility advantage over a reference",
				Action:    compareFiles,
				ArgsUsage: "REFERENCE_FILE  CANDIDATE_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "csv",
						Usage: "also write the per-strategy advantages to this CSV file",
					},
				},
			},
			{
				Name:   "generate",
				Usage:  "Generate a flip file, optionally with a forced alternation rate",
				Action: generateFlips,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of outcomes to generate",
						Value: 256,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "random seed; 0 uses the current time",
					},
					&cli.Float64Flag{
						Name:  "alternation",
						Usage: "force this alternation rate; 0 generates uniformly",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "write to this file instead of standard output",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func configFromContext(context *cli.Context) analysis.Config {
	return analysis.Config{
		GroupSizes:                 context.IntSlice("group-sizes"),
		NGramSizes:                 context.IntSlice("ngram-sizes"),
		GolombM:                    context.Int("golomb-m"),
		TableOverheadBitsPerSymbol: context.Int("table-overhead"),
		SavingsThreshold:           context.Float64("threshold"),
	}
}

func loadStream(path string) (skew.BitStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return skew.BitStream{}, err
	}
	defer file.Close()
	return skew.ExtractBitStream(file)
}

func analyzeFile(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", context.NArg())
	}

	stream, err := loadStream(context.Args().Get(0))
	if err != nil {
		return err
	}
	report, err := analysis.Analyze(stream, configFromContext(context))
	if err != nil {
		return err
	}

	printReport(report)
	if path := context.String("csv"); path != "" {
		return writeCSV(path, &report.Results)
	}
	return nil
}

func compareFiles(context *cli.Context) error {
	if context.NArg() != 2 {
		return fmt.Errorf(
			"expected a reference file and a candidate file, got %d arguments",
			context.NArg())
	}

	reference, err := loadStream(context.Args().Get(0))
	if err != nil {
		return err
	}
	candidate, err := loadStream(context.Args().Get(1))
	if err != nil {
		return err
	}

	comparison, err := analysis.Compare(reference, candidate, configFromContext(context))
	if err != nil {
		return err
	}

	printComparison(comparison)
	if path := context.String("csv"); path != "" {
		return writeCSV(path, &comparison.Advantages)
	}
	return nil
}

func generateFlips(context *cli.Context) error {
	count := context.Int("count")
	seed := context.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var flips string
	alternation := context.Float64("alternation")
	if alternation > 0 {
		flips = skewtesting.GenerateBiasedFlips(count, alternation, seed)
	} else {
		flips = skewtesting.GenerateFlips(count, seed)
	}

	output := os.Stdout
	if path := context.String("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		output = file
	}

	fmt.Fprintf(output, "# %d generated outcomes (seed %d)\n", count, seed)
	if alternation > 0 {
		fmt.Fprintf(output, "# alternation rate forced to %.2f\n", alternation)
	}
	fmt.Fprintln(output, skewtesting.FormatFlips(flips, 64))
	return nil
}

func printReport(report *analysis.Report) {
	fmt.Printf(
		"stream: %d outcomes, %d transitions, %d runs, alternation rate %.1f%%\n\n",
		report.StreamLength,
		report.TransitionCount,
		report.RunCount,
		report.AlternationRate*100)

	fmt.Printf(
		"%-12s %8s %12s %12s %9s %9s %9s\n",
		"method", "symbols", "entropy min", "total bits", "ratio", "savings", "net")
	for _, result := range report.Results {
		fmt.Printf(
			"%-12s %8d %12.1f %12d %9.4f %8.2f%% %8.2f%%\n",
			result.Method,
			result.DistinctSymbols,
			result.EntropyMinBits,
			result.TotalBits,
			result.Ratio,
			result.SavingsPercent,
			result.NetSavingsPercent)
	}

	fmt.Printf(
		"\nbest strategy: %s (%.2f%% net savings, Golomb divisor %d)\n",
		report.Best.Method,
		report.Best.NetSavingsPercent,
		report.GolombM)
	if report.FirstAtThreshold != nil {
		fmt.Printf(
			"first strategy at threshold: %s (%.2f%% savings)\n",
			report.FirstAtThreshold.Method,
			report.FirstAtThreshold.SavingsPercent)
	}
}

func printComparison(comparison *analysis.Comparison) {
	fmt.Printf(
		"reference: %d outcomes, alternation rate %.1f%%\n",
		comparison.Reference.StreamLength,
		comparison.Reference.AlternationRate*100)
	fmt.Printf(
		"candidate: %d outcomes, alternation rate %.1f%%\n\n",
		comparison.Candidate.StreamLength,
		comparison.Candidate.AlternationRate*100)

	fmt.Printf(
		"%-12s %12s %12s %12s\n", "method", "reference", "candidate", "advantage")
	for _, advantage := range comparison.Advantages {
		fmt.Printf(
			"%-12s %11.2f%% %11.2f%% %+11.2f%%\n",
			advantage.Method,
			advantage.ReferenceSavingsPercent,
			advantage.CandidateSavingsPercent,
			advantage.AdvantagePercent)
	}

	best := comparison.BestAdvantage()
	if best.AdvantagePercent > 0 {
		fmt.Printf(
			"\ncandidate is more compressible: %+.2f%% via %s\n",
			best.AdvantagePercent, best.Method)
	} else {
		fmt.Println("\nno compressibility advantage detected")
	}
}

func writeCSV(path string, records any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gocsv.MarshalFile(records, file)
}
