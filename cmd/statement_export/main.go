// Command statement_export fetches transactions from a running expense
// tracker and writes the filtered bank statement as a PDF.
//
// Usage:
//
//	statement_export [options]
//
// Examples:
//
//	statement_export -month 2024-03
//	statement_export -start 2024-01-01 -end 2024-01-31 -description rent -initial-balance 500
//	statement_export -month 2024-03 -server-render
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/SscSPs/expense_tracker/internal/adapters/pdf"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/session"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/aggregation"
	"github.com/SscSPs/expense_tracker/pkg/client"
)

const defaultServer = "http://127.0.0.1:8000"

type options struct {
	server         string
	token          string
	month          string
	startDate      string
	endDate        string
	description    string
	initialBalance string
	page           int
	outDir         string
	title          string
	serverRender   bool
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error("Statement export failed", slog.String("error", err.Error()))
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Retryable() {
			fmt.Fprintln(os.Stderr, "The server could not be reached or failed; try again.")
		}
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("statement_export", flag.ContinueOnError)

	server := os.Getenv("EXPENSE_TRACKER_URL")
	if server == "" {
		server = defaultServer
	}
	fs.StringVar(&opts.server, "server", server, "Base URL of the expense tracker API")
	fs.StringVar(&opts.token, "token", os.Getenv("EXPENSE_TRACKER_TOKEN"), "Bearer token when the server has auth enabled")
	fs.StringVar(&opts.month, "month", "", "Calendar month, YYYY-MM (wins over -start/-end)")
	fs.StringVar(&opts.startDate, "start", "", "Range start, YYYY-MM-DD")
	fs.StringVar(&opts.endDate, "end", "", "Range end, YYYY-MM-DD")
	fs.StringVar(&opts.description, "description", "", "Case-insensitive description substring")
	fs.StringVar(&opts.initialBalance, "initial-balance", "", "Balance the running balance starts from (default 0)")
	fs.IntVar(&opts.page, "page", 1, "Statement page to export")
	fs.StringVar(&opts.outDir, "out", ".", "Directory the PDF is written to")
	fs.StringVar(&opts.title, "title", "Bank Statement", "Statement heading (local rendering only)")
	fs.BoolVar(&opts.serverRender, "server-render", false, "Download the PDF rendered by the server instead of rendering locally")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func (o options) query() dto.StatementQueryParams {
	return dto.StatementQueryParams{
		FilterParams: dto.FilterParams{
			Month:       o.month,
			StartDate:   o.startDate,
			EndDate:     o.endDate,
			Description: o.description,
		},
		Page:           o.page,
		InitialBalance: o.initialBalance,
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	view, err := opts.query().ToViewState()
	if err != nil {
		return err
	}

	var clientOpts []client.Option
	if opts.token != "" {
		clientOpts = append(clientOpts, client.WithBearerToken(opts.token))
	}
	c, err := client.New(opts.server, clientOpts...)
	if err != nil {
		return err
	}

	var (
		data     []byte
		fileName string
	)
	if opts.serverRender {
		data, fileName, err = c.DownloadStatement(ctx, serverQuery(opts))
		if err == nil && fileName == "" {
			fileName = aggregation.StatementFileName(view.Filter())
		}
	} else {
		data, fileName, err = renderLocally(ctx, c, view, opts.title)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write statement: %w", err)
	}

	fmt.Fprintln(stdout, path)
	return nil
}

func renderLocally(ctx context.Context, c *client.Client, view domain.ViewState, title string) ([]byte, string, error) {
	sess := session.New(c)
	if err := sess.Refresh(ctx); err != nil {
		return nil, "", err
	}
	sess.UpdateView(func(domain.ViewState) domain.ViewState { return view })

	st := sess.Statement()
	doc := domain.StatementDocument{
		Title:       title,
		Period:      view.Filter().Period(),
		Rows:        st.Rows,
		Totals:      st.Totals,
		GeneratedAt: time.Now(),
	}
	data, err := pdf.NewStatementRenderer().RenderStatement(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("render statement: %w", err)
	}
	slog.Info("Statement rendered",
		slog.String("file_name", st.FileName),
		slog.Int("page", st.Page.Page),
		slog.Int("total_pages", st.Page.TotalPages),
		slog.Int("rows", len(st.Rows)))
	return data, st.FileName, nil
}

func serverQuery(o options) url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("month", o.month)
	set("startDate", o.startDate)
	set("endDate", o.endDate)
	set("description", o.description)
	set("initialBalance", o.initialBalance)
	if o.page > 1 {
		q.Set("page", strconv.Itoa(o.page))
	}
	return q
}
