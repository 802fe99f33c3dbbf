package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billiam105/crystal/pkg/ast"
	"github.com/billiam105/crystal/pkg/fixture"
)

var version = "0.1.0"

// Output options
var (
	outputPath string
	emitDocs   bool
	locations  bool // dump the pragma table after the source text
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crystal-unparse: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crystal-unparse [file]",
		Short: "crystal-unparse renders Crystal syntax trees back to source text",
		Long: `crystal-unparse reads a YAML tree fixture and prints the canonical
Crystal source for it. The output re-parses to a tree structurally
equal to the input, which makes it suitable for golden tests of
parser and macro tooling.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			return doUnparse(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the source text to this file instead of <input>.cr")
	rootCmd.Flags().BoolVar(&emitDocs, "emit-docs", false, "Print documentation comments before each node")
	rootCmd.Flags().BoolVar(&locations, "locations", false, "Append a byte-offset to source-location table")

	return rootCmd
}

// readFixture reads the tree fixture, from stdin when filename is "-".
func readFixture(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}

func doUnparse(filename string, out, errOut io.Writer) error {
	data, err := readFixture(filename)
	if err != nil {
		return err
	}

	node, err := fixture.Decode(data)
	if err != nil {
		fmt.Fprintf(errOut, "crystal-unparse: %s: %v\n", filename, err)
		return fmt.Errorf("decoding %s failed", filename)
	}

	var src strings.Builder
	printer := ast.NewPrinterWith(&src, ast.Options{
		EmitDocs:       emitDocs,
		CollectPragmas: locations,
	})
	printer.PrintNode(node)

	if filename != "-" || outputPath != "" {
		outputFilename := outputPath
		if outputFilename == "" {
			outputFilename = sourceOutputFilename(filename)
		}
		if err := os.WriteFile(outputFilename, []byte(src.String()), 0o644); err != nil {
			fmt.Fprintf(errOut, "crystal-unparse: error creating %s: %v\n", outputFilename, err)
			return err
		}
	}

	// Also print to stdout for convenience
	fmt.Fprint(out, src.String())

	if locations {
		printPragmas(out, printer.Pragmas())
	}
	return nil
}

// printPragmas dumps the collected source pragmas, one per line.
func printPragmas(out io.Writer, table *ast.PragmaTable) {
	for _, offset := range table.Offsets() {
		for _, p := range table.At(offset) {
			fmt.Fprintf(out, "# offset %d: %s:%d:%d\n", offset, p.Filename, p.Line, p.Column)
		}
	}
}

// sourceOutputFilename returns the default output filename:
// input.yaml -> input.cr
func sourceOutputFilename(filename string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(filename, ext) {
			return filename[:len(filename)-len(ext)] + ".cr"
		}
	}
	return filename + ".cr"
}
