package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/pipeline"
)

// renderFlags holds the flags of the render and layout commands.
type renderFlags struct {
	viewFlags
	focal         string
	formats       string
	vizType       string
	output        string
	detailed      bool
	hideSecondary bool
	scale         float64
}

func (c *CLI) layoutCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute the tree layout and write it as JSON",
		Long: `Compute the positioned display tree of the whole hierarchy, or of the branch
of --focal, and write it as view JSON to -o or stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.formats = pipeline.FormatJSON
			result, err := c.runPipeline(cmd.Context(), optionalArg(args, 0), flags)
			if err != nil {
				return err
			}
			data := result.Artifacts[pipeline.FormatJSON]
			if flags.output == "" {
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(flags.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", flags.output, err)
			}
			printSuccess("Laid out %d classes", result.Stats.TreeNodes)
			printFile(flags.output)
			printNewline()
			printNextStep("Render it", "ontoview render "+optionalArg(args, 0))
			return nil
		},
	}

	flags.viewFlags.register(cmd)
	cmd.Flags().StringVar(&flags.focal, "focal", "", "lay out only the branch of this class")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render the hierarchy to SVG, PNG, PDF, DOT or JSON",
		Long: `Render the class hierarchy, or the branch of --focal, to one or more files.

Formats: svg, png, pdf, dot, json (positioned view), graph (class graph JSON).
PNG and PDF are converted from SVG and need rsvg-convert on PATH.

The tree visualization draws the computed tree layout. The nodelink
visualization hands the classes and edges to Graphviz.`,
		Example: `  ontoview render --focal Hammer -f svg,png
  ontoview render pizza.owl -t nodelink -f svg -o pizza
  ontoview render https://example.org/onto.owl --lang de -d horizontal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref := optionalArg(args, 0)

			spinner := newSpinnerWithContext(ctx, "Rendering...")
			spinner.Start()
			result, err := c.runPipeline(ctx, ref, flags)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			base := outputBase(flags.output, result.Document.Name, flags.focal)
			printSuccess("Rendered %s", StyleTitle.Render(result.Document.Name))
			for _, format := range sortedKeys(result.Artifacts) {
				path := base + formatExt(format)
				if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
			return nil
		},
	}

	flags.viewFlags.register(cmd)
	cmd.Flags().StringVar(&flags.focal, "focal", "", "render only the branch of this class")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output formats, comma separated")
	cmd.Flags().StringVarP(&flags.vizType, "type", "t", pipeline.DefaultVizType, "visualization: tree, nodelink")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path without extension (default from document name)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show class ids next to names")
	cmd.Flags().BoolVar(&flags.hideSecondary, "hide-secondary", false, "omit superclass edges that are not tree edges")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	return cmd
}

// runPipeline executes the full pipeline with the configuration and flags.
func (c *CLI) runPipeline(ctx context.Context, ref string, flags renderFlags) (*pipeline.Result, error) {
	if flags.language != "" {
		c.Config.Language = flags.language
	}
	if flags.direction != "" {
		c.Config.Direction = flags.direction
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts := c.pipelineOptions(ref)
	opts.Refresh = flags.refresh
	opts.Focal = flags.focal
	opts.Formats = pipeline.ParseFormats(flags.formats)
	opts.VizType = flags.vizType
	opts.Detailed = flags.detailed
	opts.HideSecondary = flags.hideSecondary
	opts.Scale = flags.scale
	return runner.Execute(ctx, opts)
}

// outputBase picks the path files are written to, before their extension:
// the explicit output, else the document name without extension, suffixed
// with the focal class.
func outputBase(output, docName, focal string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	base := strings.TrimSuffix(filepath.Base(docName), filepath.Ext(docName))
	if base == "" || base == "." {
		base = "ontology"
	}
	if focal != "" {
		base += "-" + focal
	}
	return base
}

// formatExt returns the file extension for an output format.
func formatExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".view.json"
	case pipeline.FormatGraph:
		return ".graph.json"
	default:
		return "." + format
	}
}
