package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loadout/internal/ui"
	"loadout/pkg/catalog"
	"loadout/pkg/registry"
)

var (
	listCategory string
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog packages and how they are installed",
	Long: `List the catalog packages available on this system with their
current install method.

Packages for a desktop environment that is not running are hidden
unless installed; --all shows them, and packages no provider offers.

Examples:
  loadout list                       # All available packages
  loadout list -c multimedia         # One category
  loadout list --all                 # Everything in the catalog`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only list this category")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include unavailable and desktop-mismatched packages")
}

func runList(cmd *cobra.Command, args []string) error {
	cats := catalog.Categories
	if listCategory != "" {
		c, ok := catalog.ParseCategory(listCategory)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, listCategory)
		}
		cats = []catalog.Category{c}
	}

	s, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer s.Close()

	rows := packageRows(s.reg, cats, listAll || cfg.Menu.ShowMismatched, listAll)
	ui.RenderPackages(os.Stdout, rows)
	return nil
}

// packageRows builds the table rows for cats. Uninstalled packages for an
// absent desktop are skipped unless showMismatched; packages no provider
// offers are skipped unless showUnavailable.
func packageRows(reg *registry.Registry, cats []catalog.Category, showMismatched, showUnavailable bool) []ui.PackageRow {
	var rows []ui.PackageRow
	for _, c := range cats {
		for _, p := range catalog.InCategory(c) {
			offered := reg.AvailableMethods(p)
			if len(offered) == 0 && !showUnavailable {
				continue
			}

			method := reg.Method(p)
			mismatch := p.Desktop != catalog.AnyDesktop && !p.Desktop.Present(reg.Env)
			if mismatch && !showMismatched && !reg.Installed(p) {
				continue
			}

			rows = append(rows, ui.PackageRow{
				Key:      p.Key,
				Label:    p.Label,
				Category: string(c),
				Method:   method,
				Offered:  offered,
				Mismatch: mismatch,
			})
		}
	}
	return rows
}
