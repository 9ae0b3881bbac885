package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dangerclosesec/ciclo"
	"github.com/dangerclosesec/ciclo/internal/serializer"
	"github.com/dangerclosesec/ciclo/language/parser"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	verbose    bool
	dumpAST    bool
	outputPath string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	parseCmd.Flags().BoolVar(&dumpAST, "dump", false, "Dump the raw syntax tree")
	optimizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the optimized source to a file")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(prefixCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "ciclo",
	Short: "Ciclo is a front end for a small functional language with loops",
	Long:  `Ciclo tokenizes, parses, validates, optimizes and converts source files of a Haskell-like language with while, for, loop and ciclo cycles. Every cycle tests its condition before running its body.`,
}

// newFrontend builds a front end whose debug output follows --verbose
func newFrontend() *ciclo.Frontend {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	cfg := ciclo.NewConfig(context.Background())
	cfg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return ciclo.New(cfg)
}

func readSource(filePath string) string {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}
	return string(content)
}

// render writes a front end result through its registered serializer
func render(model any) {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := serializer.Encode(model, out); err != nil {
		log.Fatalf("Failed to render output: %v", err)
	}
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "List the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tokens, summary, err := newFrontend().Tokenize(readSource(args[0]))
		if err != nil {
			log.Fatalf("Failed to tokenize file: %v", err)
		}

		render(tokens)
		if summary.HasErrors() {
			os.Exit(1)
		}
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file",
	Long:  `Parse a source file and display its syntax tree.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filePath := args[0]
		program, err := newFrontend().Parse(readSource(filePath))
		if err != nil {
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				log.Fatalf("Failed to parse file: %v", err)
			}

			fmt.Println("Parsing errors:")
			for _, serr := range perr.Errors {
				fmt.Println("  - " + serr.Error())
			}
			os.Exit(1)
		}

		fmt.Printf("Successfully parsed %s\n", filePath)
		fmt.Printf("Found %d declarations\n", len(program.Items))

		if dumpAST {
			litter.Dump(program)
			return
		}
		if verbose {
			fmt.Println()
			render(program)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check the cycles of a source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		report, err := newFrontend().Validate(readSource(args[0]))
		if err != nil {
			log.Fatalf("Failed to validate file: %v", err)
		}

		render(report)
		if report.HasErrors() {
			os.Exit(1)
		}
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [file]",
	Short: "Optimize a source file",
	Long:  `Remove comments, normalize spacing and extract common subexpressions.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := newFrontend().Optimize(readSource(args[0]))
		if err != nil {
			log.Fatalf("Failed to optimize file: %v", err)
		}
		if !result.Success {
			log.Fatalf("Optimization failed: %s", result.ErrorMessage)
		}

		if outputPath == "" {
			render(result)
			return
		}

		if err := os.WriteFile(outputPath, []byte(result.OptimizedCode), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Optimized source written to %s (%.1f%% smaller)\n", outputPath, result.Reduction())
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert the arithmetic expressions of a source file",
	Long:  `Convert every arithmetic expression of a source file to prefix notation, triplets and quadruples.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conversions, err := newFrontend().Convert(readSource(args[0]))
		if err != nil {
			log.Fatalf("Failed to convert file: %v", err)
		}
		render(conversions)
	},
}

var prefixCmd = &cobra.Command{
	Use:   "prefix [expression]",
	Short: "Convert an infix expression to prefix notation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, err := newFrontend().Prefix(args[0])
		if err != nil {
			log.Fatalf("Failed to convert expression: %v", err)
		}
		fmt.Println(out)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ciclo version %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
