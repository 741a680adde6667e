// ABOUTME: Entry point for the leadbook CLI
// ABOUTME: Drives the lead core: list, add, edit, delete, note, import, browse

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/leadbook/internal/config"
	"github.com/2389/leadbook/internal/desk"
	"github.com/2389/leadbook/internal/importer"
	"github.com/2389/leadbook/internal/store"
	"github.com/2389/leadbook/internal/view"
)

// version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _                _ _                 _
| | ___  __ _  __| | |__   ___   ___ | | __
| |/ _ \/ _' |/ _' | '_ \ / _ \ / _ \| |/ /
| |  __/ (_| | (_| | |_) | (_) | (_) |   <
|_|\___|\__,_|\__,_|_.__/ \___/ \___/|_|\_\
`

// getConfigPath returns the path to the leadbook config file.
// Priority: LEADBOOK_CONFIG env var > XDG_CONFIG_HOME/leadbook/leadbook.yaml
// > ~/.config/leadbook/leadbook.yaml
func getConfigPath() string {
	if envPath := os.Getenv("LEADBOOK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "leadbook.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "leadbook", "leadbook.yaml")
}

// getDataPath returns the path to the leadbook data directory.
// Priority: XDG_DATA_HOME/leadbook > ~/.local/share/leadbook
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "leadbook")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "list":
		err = cmdList(ctx)
	case "add":
		err = cmdAdd(ctx, args)
	case "edit":
		err = cmdEdit(ctx, args)
	case "delete":
		err = cmdDelete(ctx, args)
	case "note":
		err = cmdNote(ctx, args)
	case "import":
		err = cmdImport(ctx, args)
	case "browse":
		err = cmdBrowse(ctx)
	case "init":
		err = cmdInit()
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: leadbook <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  list                    Show all leads (noted leads first)")
	fmt.Println("  add [flags]             Add a single lead (--phone is required)")
	fmt.Println("  edit <phone> [flags]    Edit the lead with that phone number")
	fmt.Println("  delete <phone>          Delete the lead with that phone number")
	fmt.Println("  note <phone> [text]     Show the lead's note, or replace it with text")
	fmt.Println("  import <file.csv>       Merge a CSV export into the store")
	fmt.Println("  browse                  Interactive shell over the lead table")
	fmt.Println("  init                    Write a default config file")
	fmt.Println("  version                 Print the version")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  LEADBOOK_CONFIG          Config file path (default: ~/.config/leadbook/leadbook.yaml)")
	fmt.Println("  XDG_DATA_HOME            Data directory root (database lives under leadbook/)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  leadbook import scraped-leads.csv")
	fmt.Println("  leadbook add --phone 5551230000 --title 'Acme Plumbing'")
	fmt.Println("  leadbook note 5551230000 'call back tuesday'")
	fmt.Println()
}

// loadConfig loads the config file, falling back to defaults when none exists.
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(getDataPath()), nil
	}
	return config.Load(configPath)
}

// openDesk loads config, installs the logger, and opens the lead store.
func openDesk() (*desk.Desk, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	return desk.New(cfg, logger)
}

func cmdList(ctx context.Context) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	rows, err := d.ListProjection(ctx)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No leads yet. Try: leadbook import <file.csv>")
		return nil
	}

	printTable(rows)

	gray := color.New(color.FgHiBlack)
	gray.Printf("%d lead(s); * marks a lead with a note\n", len(rows))
	return nil
}

func cmdAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	lead := &store.Lead{}
	fs.StringVar(&lead.Title, "title", "", "Business title")
	fs.StringVar(&lead.Rating, "rating", "", "Rating")
	fs.StringVar(&lead.Reviews, "reviews", "", "Review count")
	fs.StringVar(&lead.Phone, "phone", "", "Phone number (required, unique)")
	fs.StringVar(&lead.Industry, "industry", "", "Industry")
	fs.StringVar(&lead.Address, "address", "", "Address")
	fs.StringVar(&lead.Website, "website", "", "Website URL")
	fs.StringVar(&lead.MapsLink, "maps", "", "Maps link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.AddLead(ctx, lead); err != nil {
		if errors.Is(err, store.ErrDuplicateLead) {
			return fmt.Errorf("a lead with phone %s already exists", lead.Phone)
		}
		if errors.Is(err, store.ErrMissingPhone) {
			return fmt.Errorf("--phone is required")
		}
		return err
	}

	color.Green("Added lead %s\n", lead.Phone)
	return nil
}

func cmdEdit(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: leadbook edit <phone> [flags]")
	}
	phone := args[0]

	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	edited := &store.Lead{}
	fs.StringVar(&edited.Title, "title", "", "Business title")
	fs.StringVar(&edited.Rating, "rating", "", "Rating")
	fs.StringVar(&edited.Reviews, "reviews", "", "Review count")
	fs.StringVar(&edited.Industry, "industry", "", "Industry")
	fs.StringVar(&edited.Address, "address", "", "Address")
	fs.StringVar(&edited.Website, "website", "", "Website URL")
	fs.StringVar(&edited.MapsLink, "maps", "", "Maps link")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	// Prefill from the stored lead so unset flags keep their values
	current, err := d.GetLead(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no lead with phone %s", phone)
		}
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["title"] {
		edited.Title = current.Title
	}
	if !set["rating"] {
		edited.Rating = current.Rating
	}
	if !set["reviews"] {
		edited.Reviews = current.Reviews
	}
	if !set["industry"] {
		edited.Industry = current.Industry
	}
	if !set["address"] {
		edited.Address = current.Address
	}
	if !set["website"] {
		edited.Website = current.Website
	}
	if !set["maps"] {
		edited.MapsLink = current.MapsLink
	}

	if err := d.EditLead(ctx, phone, edited); err != nil {
		return err
	}

	color.Green("Updated lead %s\n", phone)
	return nil
}

func cmdDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leadbook delete <phone>")
	}
	phone := args[0]

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DeleteLead(ctx, phone); err != nil {
		return err
	}

	color.Green("Deleted lead %s (if it existed)\n", phone)
	return nil
}

func cmdNote(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leadbook note <phone> [text]")
	}
	phone := args[0]

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	// No text: show the current note
	if len(args) == 1 {
		note, err := d.GetNote(ctx, phone)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no lead with phone %s", phone)
			}
			return err
		}
		if note == "" {
			fmt.Println("(no note)")
		} else {
			fmt.Println(note)
		}
		return nil
	}

	note := strings.Join(args[1:], " ")
	if err := d.SetNote(ctx, phone, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no lead with phone %s", phone)
		}
		return err
	}

	color.Green("Noted lead %s\n", phone)
	return nil
}

func cmdImport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: leadbook import <file.csv>")
	}
	path := args[0]

	// The core accepts any path; the extension check is presentation-side
	// guard rail, matching the file picker's filter.
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("%s is not a .csv file", path)
	}

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.ImportFromFile(ctx, path)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidFormat) {
			return fmt.Errorf("CSV file format is invalid or empty: %v", err)
		}
		return err
	}

	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)
	green.Printf("Imported %d new lead(s)", result.Inserted)
	if result.Skipped > 0 {
		gray.Printf(" (%d duplicate(s) skipped)", result.Skipped)
	}
	fmt.Println()
	return nil
}

func cmdInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content := fmt.Sprintf(`database:
  path: "%s"

logging:
  level: info
  format: text

import:
  delimiter: ","
`, filepath.Join(getDataPath(), "leads.db"))

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	color.Green("Wrote %s\n", configPath)
	return nil
}

// printTable renders projection rows with aligned columns.
func printTable(rows []view.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	cyan := color.New(color.FgCyan)
	fmt.Fprintln(w, cyan.Sprint("TITLE\tRATING\tREVIEWS\tPHONE\tINDUSTRY\tADDRESS\tWEBSITE"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.DisplayTitle, r.Rating, r.Reviews, r.Phone, r.Industry, r.Address, r.Website)
	}
	w.Flush()
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Fprint(os.Stderr, buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
