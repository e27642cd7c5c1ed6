package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/graph"
	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/ontology"
	"github.com/matzehuels/ontoview/pkg/session"
)

// =============================================================================
// load
// =============================================================================

func (c *CLI) loadCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "load [document]",
		Short: "Load a document and print a summary",
		Long: `Load an OWL document, build its class graph and print a summary.

Use this to check that a document parses and to warm the cache for remote
documents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), optionalArg(args, 0), flags, func(sess *session.Session) error {
				info := sess.Info()
				ht := hierarchy.Build(sess.FullGraph())

				printSuccess("Loaded %s", StyleTitle.Render(info.Name))
				printKeyValue("Language", info.Language)
				printKeyValue("Hash", shortHash(info.Hash))
				printKeyValue("Root", ht.Name(ht.Root()))
				printKeyValue("Depth", fmt.Sprint(ht.MaxDepth()))
				printKeyValue("Properties", fmt.Sprint(len(sess.FullGraph().Properties())))
				printStats(info.Nodes, info.Edges, info.Cached)
				printNewline()
				printNextStep("Browse the hierarchy", "ontoview browse "+optionalArg(args, 0))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// tree / branch
// =============================================================================

// treeFlags control hierarchy printing.
type treeFlags struct {
	secondary bool
	maxDepth  int
}

func (f *treeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.secondary, "secondary", false, "annotate classes with their other superclasses")
	cmd.Flags().IntVar(&f.maxDepth, "depth", 0, "maximum depth to print (0 for all)")
}

func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags docFlags
		tf    treeFlags
		focal string
	)

	cmd := &cobra.Command{
		Use:   "tree [document]",
		Short: "Print the class hierarchy",
		Long: `Print the class hierarchy as an indented tree.

Classes with several superclasses appear once, under the superclass chosen as
their tree parent. Use --secondary to list the others. With --focal only the
branch of that class is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), optionalArg(args, 0), flags, func(sess *session.Session) error {
				g, err := focusGraph(sess, focal)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, renderHierarchy(hierarchy.Build(g), focal, tf))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&focal, "focal", "", "print only the branch of this class")
	flags.register(cmd)
	tf.register(cmd)
	return cmd
}

func (c *CLI) branchCommand() *cobra.Command {
	var (
		flags  docFlags
		tf     treeFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "branch <class> [document]",
		Short: "Print the branch of a class",
		Long: `Print the branch of a class: the class, all its ancestors and all its
descendants. With -o the branch is also written as class graph JSON.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			classID := args[0]
			if err := errors.ValidateClassID(classID); err != nil {
				return err
			}
			return c.withSession(cmd.Context(), optionalArg(args, 1), flags, func(sess *session.Session) error {
				g, err := focusGraph(sess, classID)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, renderHierarchy(hierarchy.Build(g), classID, tf))
				if output == "" {
					return nil
				}
				if err := graph.WriteGraphFile(g, output); err != nil {
					return err
				}
				printSuccess("Wrote branch of %s", classID)
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the branch as graph JSON")
	cmd.ValidArgsFunction = c.completeClasses
	flags.register(cmd)
	tf.register(cmd)
	return cmd
}

// focusGraph returns the branch of focal, or the full graph for "".
func focusGraph(sess *session.Session, focal string) (*ontology.Graph, error) {
	g := sess.FullGraph()
	if focal == "" {
		return g, nil
	}
	if !g.Has(focal) {
		return nil, errors.New(errors.ErrCodeClassNotFound, "unknown class %q", focal)
	}
	return sess.Branch(focal), nil
}

// renderHierarchy draws t with lipgloss. The focal class is highlighted.
func renderHierarchy(t *hierarchy.Tree, focal string, f treeFlags) string {
	if t.Root() == "" {
		return StyleDim.Render("(empty)")
	}

	also := map[string][]string{}
	if f.secondary {
		for _, e := range t.Secondary() {
			also[e.To] = append(also[e.To], t.Name(e.From))
		}
	}

	label := func(id string) string {
		name := t.Name(id)
		switch {
		case id == focal:
			name = StyleHighlight.Bold(true).Render(name)
		case t.IsVirtual() && id == t.Root():
			name = StyleDim.Render(name)
		}
		if others := also[id]; len(others) > 0 {
			name += " " + styleSecondary.Render("(also "+strings.Join(others, ", ")+")")
		}
		return name
	}

	var build func(id string, depth int) *tree.Tree
	build = func(id string, depth int) *tree.Tree {
		node := tree.Root(label(id)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		children := t.Children(id)
		if f.maxDepth > 0 && depth >= f.maxDepth {
			if n := len(t.Descendants(id)); n > 0 {
				node.Child(StyleDim.Render(fmt.Sprintf("… %d more", n)))
			}
			return node
		}
		for _, child := range children {
			if len(t.Children(child)) == 0 {
				node.Child(label(child))
				continue
			}
			node.Child(build(child, depth+1))
		}
		return node
	}
	return build(t.Root(), 0).String()
}

// =============================================================================
// label / axioms / property
// =============================================================================

func (c *CLI) labelCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "label <class> [document]",
		Short: "Resolve the display name of a class",
		Long: `Resolve the display name of a class in the display language: the label in
that language, else the English label, else the first label, else the id.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.language != "" {
				if err := errors.ValidateLanguage(flags.language); err != nil {
					return err
				}
			}
			return c.withSession(cmd.Context(), optionalArg(args, 1), flags, func(sess *session.Session) error {
				fmt.Fprintln(stdout, sess.ResolveLabel(args[0], sess.Language()))
				return nil
			})
		},
	}

	cmd.ValidArgsFunction = c.completeClasses
	flags.register(cmd)
	return cmd
}

func (c *CLI) axiomsCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "axioms <class> [document]",
		Short: "Show everything declared about a class",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			classID := args[0]
			return c.withSession(cmd.Context(), optionalArg(args, 1), flags, func(sess *session.Session) error {
				g := sess.FullGraph()
				if !g.Has(classID) {
					return errors.New(errors.ErrCodeClassNotFound, "unknown class %q", classID)
				}
				fmt.Fprint(stdout, formatAxioms(sess.Axioms(classID), g.Labeler()))
				return nil
			})
		},
	}

	cmd.ValidArgsFunction = c.completeClasses
	flags.register(cmd)
	return cmd
}

// formatAxioms renders axioms as a block of labeled lines. Class ids in
// expressions are shown by display name.
func formatAxioms(ax session.Axioms, label expr.Labeler) string {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(styleKey.Render(key) + " " + value + "\n")
	}
	names := func(ids []string) string {
		if len(ids) == 0 {
			return StyleDim.Render("-")
		}
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = label(id)
		}
		return strings.Join(out, ", ")
	}

	b.WriteString(StyleTitle.Render(ax.Name))
	if ax.Name != ax.ID {
		b.WriteString(" " + StyleDim.Render("("+ax.ID+")"))
	}
	b.WriteString("\n")

	for _, l := range ax.Labels {
		line("Label@"+l.Lang, l.Text)
	}
	for _, c := range ax.Comments {
		line("Comment", c)
	}
	line("SubClassOf", names(ax.SuperClasses))
	line("SuperClassOf", names(ax.SubClasses))
	for _, e := range ax.Equivalents {
		line("EquivalentTo", expr.Render(e, label))
	}
	for _, prop := range ax.Properties {
		for _, f := range ax.Restrictions[prop] {
			line("Restriction", label(prop)+" "+expr.RenderFiller(f, label))
		}
	}
	return b.String()
}

func (c *CLI) propertyCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "property <property> [document]",
		Short: "Show an object property",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), optionalArg(args, 1), flags, func(sess *session.Session) error {
				p, ok := sess.Property(args[0])
				if !ok {
					return errors.New(errors.ErrCodePropertyNotFound, "unknown property %q", args[0])
				}
				lang := sess.Language()
				fmt.Fprintln(stdout, StyleTitle.Render(ontology.DisplayName(p.ID, p.Labels, lang)))
				for _, l := range p.Labels {
					printKeyValue("Label@"+l.Lang, l.Text)
				}
				for _, cm := range p.Comments {
					printKeyValue("Comment", cm)
				}
				printList("Domain", p.Domain)
				printList("Range", p.Range)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// search
// =============================================================================

func (c *CLI) searchCommand() *cobra.Command {
	var flags docFlags

	cmd := &cobra.Command{
		Use:   "search <query> [document]",
		Short: "Find classes by id, name or label",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateQuery(args[0]); err != nil {
				return err
			}
			return c.withSession(cmd.Context(), optionalArg(args, 1), flags, func(sess *session.Session) error {
				matches := sess.Search(args[0])
				if len(matches) == 0 {
					printWarning("No classes match %q", args[0])
					return nil
				}
				fmt.Fprintln(stdout, matchTable(matches))
				printDetail("%d matches", len(matches))
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func matchTable(matches []session.Match) string {
	t := newTable("Class", "Name", "Matched")
	for _, m := range matches {
		t.Row(m.ID, m.Name, m.Matched)
	}
	return t.Render()
}

// =============================================================================
// Helpers
// =============================================================================

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// sortedKeys returns the keys of m in order.
func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
