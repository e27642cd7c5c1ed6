package pipeline

import (
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/render"
	"github.com/matzehuels/ontoview/pkg/render/nodelink"
	"github.com/matzehuels/ontoview/pkg/render/tree"
)

// Render produces the artifacts for every format in opts.Formats. g is the
// displayed class graph, used by the graph format.
func Render(v graph.View, g *ontology.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		svg []byte
		dot string
	)
	drawing := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(v, opts, &dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = drawing()
		case FormatPNG:
			if !render.Available() {
				return nil, errors.New(errors.ErrCodeUnsupported, "png output requires rsvg-convert")
			}
			if data, err = drawing(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if !render.Available() {
				return nil, errors.New(errors.ErrCodeUnsupported, "pdf output requires rsvg-convert")
			}
			if data, err = drawing(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatDOT:
			if dot == "" {
				dot = nodelink.ToDOT(v, nodelinkOptions(opts))
			}
			data = []byte(dot)
		case FormatJSON:
			data, err = graph.MarshalView(v)
		case FormatGraph:
			data, err = graph.MarshalGraph(g)
		default:
			return nil, ValidateFormat(format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderSVG draws the view with the configured renderer. Node-link
// drawings record their DOT source in dot.
func renderSVG(v graph.View, opts Options, dot *string) ([]byte, error) {
	if opts.IsNodelink() {
		*dot = nodelink.ToDOT(v, nodelinkOptions(opts))
		return nodelink.RenderSVG(*dot)
	}
	treeOpts := []tree.Option{tree.WithFocal(v.Focal)}
	if opts.HideSecondary {
		treeOpts = append(treeOpts, tree.WithoutSecondary())
	}
	return tree.RenderSVG(v, treeOpts...), nil
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{
		Detailed:      opts.Detailed,
		HideSecondary: opts.HideSecondary,
	}
}
