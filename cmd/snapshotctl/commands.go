package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/simaogato/wealthflow-dashboard/internal/adapter/present"
	"github.com/simaogato/wealthflow-dashboard/internal/adapter/source"
	"github.com/simaogato/wealthflow-dashboard/internal/config"
	"github.com/simaogato/wealthflow-dashboard/internal/domain"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-dashboard/internal/usecase/transform"
)

const fetchTimeout = 20 * time.Second

// reportCmd prints one markdown report of the sheet
type reportCmd struct {
	name     string
	synopsis string
	render   func(*present.View) string
}

var commands = []*reportCmd{
	{name: "summary", synopsis: "display total assets, goal progress and account balances", render: present.SummaryMarkdown},
	{name: "holdings", synopsis: "display principal, valuation and return of each holding", render: present.HoldingsMarkdown},
	{name: "history", synopsis: "display the return of each holding on every recorded date", render: present.HistoryMarkdown},
	{name: "buckets", synopsis: "display totals per asset type", render: present.BucketsMarkdown},
	{name: "growth", synopsis: "display the total-assets series", render: present.GrowthMarkdown},
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return c.synopsis }
func (c *reportCmd) Usage() string {
	return fmt.Sprintf(`snapshotctl [-f <sheet>] [-plain] %s

  Loads the sheet and will %s.
  The layout is read from the same environment variables as the server.
`, c.name, c.synopsis)
}

func (c *reportCmd) SetFlags(*flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	location := *sheetFlag
	if location == "" {
		location = os.Getenv("SHEET_URL")
	}
	if location == "" {
		fmt.Fprintln(os.Stderr, "Error: no sheet given, use -f or set SHEET_URL")
		return subcommands.ExitUsageError
	}

	cfg, err := config.LoadSheetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sheet configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	currency := os.Getenv("CURRENCY")
	if currency == "" {
		currency = "KRW"
	}

	view, err := buildView(ctx, source.New(location, fetchTimeout, 0), cfg, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sheet %q: %v\n", location, err)
		return subcommands.ExitFailure
	}

	if err := printMarkdown(os.Stdout, c.render(view), *plainFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering markdown: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// buildView loads src and presents the resulting dashboard
func buildView(ctx context.Context, src domain.TableSource, cfg domain.SheetConfig, currency string) (*present.View, error) {
	transformer, err := transform.NewTransformer(cfg)
	if err != nil {
		return nil, err
	}

	presenter, err := present.NewPresenter(currency)
	if err != nil {
		return nil, err
	}

	result, err := dashboard.NewDashboardService(src, transformer, nil).GetDashboard(ctx)
	if err != nil {
		return nil, explain(err)
	}
	return presenter.Present(result), nil
}

// explain adds a hint for the structural errors a user can fix in the sheet
func explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrHeaderNotFound):
		return fmt.Errorf("%w (check DATE_MARKER)", err)
	case errors.Is(err, domain.ErrUnpairedPrincipalColumn):
		return fmt.Errorf("%w (each principal column must be followed by its valuation column)", err)
	default:
		return err
	}
}

// printMarkdown writes md to w, rendered for the terminal unless plain is set
func printMarkdown(w io.Writer, md string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
