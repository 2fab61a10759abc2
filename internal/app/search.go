package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hitoshi/legiswatch/internal/legislation"
	"github.com/hitoshi/legiswatch/internal/model"
)

const (
	titleColumnWidth   = 50
	sponsorColumnWidth = 30
	aiColumnWidth      = 60
)

// errQueryRequired は search サブコマンドに検索語が指定されなかった場合のエラー。
var errQueryRequired = errors.New("search query is required")

// searchOptions は search サブコマンドの引数。
type searchOptions struct {
	query     string
	state     bool
	includeAI bool
	limit     int
}

// parseSearchArgs は search サブコマンドのフラグと検索語を解析する。
func parseSearchArgs(args []string, errOut io.Writer) (searchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opts searchOptions
	fs.BoolVar(&opts.state, "state", false, "search by sponsor state instead of title keyword")
	fs.BoolVar(&opts.includeAI, "ai", false, "add an AI summary to each bill")
	fs.IntVar(&opts.limit, "limit", legislation.DefaultLimit, "maximum number of bills")

	if err := fs.Parse(args); err != nil {
		return searchOptions{}, err
	}

	opts.query = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.query == "" {
		return searchOptions{}, errQueryRequired
	}
	return opts, nil
}

// runSearch は1回の検索を実行し、結果を表形式で出力する。
func runSearch(ctx context.Context, w io.Writer, comps *Components, args []string) error {
	opts, err := parseSearchArgs(args, w)
	if err != nil {
		return err
	}

	searchType := model.SearchTypeKeyword
	if opts.state {
		searchType = model.SearchTypeState
	}

	result := comps.Aggregator.Search(ctx, searchType, opts.query, opts.limit)
	if opts.includeAI {
		comps.Enricher.EnrichAll(ctx, result.Bills, opts.query)
	}

	renderBills(w, result, opts.query, opts.includeAI)
	return nil
}

// renderBills は検索結果を罫線付きの表として書き出す。
func renderBills(w io.Writer, result model.SearchResult, query string, includeAI bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	header := table.Row{"#", "Bill", "Title", "Sponsor", "Introduced", "Updated"}
	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: titleColumnWidth},
		{Number: 4, WidthMax: sponsorColumnWidth},
	}
	if includeAI {
		header = append(header, "AI Summary")
		configs = append(configs, table.ColumnConfig{Number: 7, WidthMax: aiColumnWidth})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for i, b := range result.Bills {
		row := table.Row{i + 1, b.ID, b.Title, b.Sponsor, b.IntroducedDate, b.UpdateDate}
		if includeAI {
			row = append(row, b.AISummary)
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{"Total", len(result.Bills), fmt.Sprintf("Query: %s", query), fmt.Sprintf("Source: %s", result.Source)})
	t.Render()
}
