package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/parems/pkg/search"
	"github.com/urfave/cli/v3"
)

var (
	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6).
			Align(lipgloss.Right)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Search mode: conté, comença, acaba, coincident, frase, comodins",
				Value: search.Contains.String(),
			},
			&cli.BoolFlag{
				Name:  "variant",
				Usage: "Also search variants (modismes)",
			},
			&cli.BoolFlag{
				Name:  "sinonim",
				Usage: "Also search synonyms",
			},
			&cli.BoolFlag{
				Name:  "equivalent",
				Usage: "Also search equivalents in other languages",
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: "List every paremiotipus of a source (conté mode only)",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Results page",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "per-page",
				Usage: "Results per page: 10, 15, 25, 50 or infinit",
				Value: strconv.Itoa(search.DefaultResultsPerPage),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			values := url.Values{}
			values.Set(search.ParamQuery, strings.Join(c.Args().Slice(), " "))
			values.Set(search.ParamMode, c.String("mode"))
			values.Set(search.ParamFont, c.String("font"))
			values.Set(search.ParamPage, strconv.Itoa(c.Int("page")))
			values.Set(search.ParamResultsPerPage, c.String("per-page"))
			for flag, key := range map[string]string{
				"variant":    search.ParamVariant,
				"sinonim":    search.ParamSynonym,
				"equivalent": search.ParamEquivalent,
			} {
				if c.Bool(flag) {
					values.Set(key, "1")
				}
			}
			return searchCatalog(ctx, c.String("config"), values, os.Stdout)
		},
	}
}

// searchCatalog runs the search described by values and prints one page
func searchCatalog(ctx context.Context, configPath string, values url.Values, out io.Writer) error {
	params, err := search.ParseParams(values, search.DefaultResultsPerPage)
	if err != nil {
		return err
	}

	_, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	results, err := search.NewService(store).Search(ctx, params)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	printResults(out, results)
	return nil
}

func printResults(out io.Writer, results *search.Results) {
	if results.Degraded {
		fmt.Fprintln(out, warnStyle.Render("The search could not be completed, showing no results."))
	}
	if results.Summary != "" {
		fmt.Fprintln(out, summaryStyle.Render(results.Summary))
	}
	if len(results.Titles) == 0 {
		fmt.Fprintln(out, metaStyle.Render("No s'ha trobat cap paremiotipus."))
		return
	}

	fmt.Fprintln(out)
	for i, title := range results.Titles {
		fmt.Fprintf(out, "%s  %s\n", indexStyle.Render(strconv.Itoa(results.Offset+i+1)+"."), titleStyle.Render(title))
	}

	if results.PageCount > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, metaStyle.Render(fmt.Sprintf("Pàgina %d de %d (mode %s)",
			results.Params.Page, results.PageCount, results.Mode)))
	}
}
