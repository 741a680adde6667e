// ABOUTME: Interactive browse shell over the lead table
// ABOUTME: Owns the projection snapshot cache and invalidates it after mutations

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/2389/leadbook/internal/cache"
	"github.com/2389/leadbook/internal/store"
)

func cmdBrowse(ctx context.Context) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	// The cache belongs here, not in the core: every mutating call below
	// invalidates it, and the next "list" re-derives the projection.
	snap := cache.New(d.ListProjection)

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	cyan.Print(banner)
	gray.Println("  type 'help' for commands, 'quit' to leave")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("leadbook> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help":
			printBrowseHelp()
		case "list", "ls":
			rows, err := snap.Rows(ctx)
			if err != nil {
				color.Red("list: %v\n", err)
				continue
			}
			if len(rows) == 0 {
				fmt.Println("(no leads)")
				continue
			}
			printTable(rows)
		case "count":
			n, err := d.Count(ctx)
			if err != nil {
				color.Red("count: %v\n", err)
				continue
			}
			fmt.Printf("%d lead(s)\n", n)
		case "note":
			if len(args) < 1 {
				fmt.Println("usage: note <phone> [text]")
				continue
			}
			if len(args) == 1 {
				note, err := d.GetNote(ctx, args[0])
				if err != nil {
					browseError("note", err, args[0])
					continue
				}
				if note == "" {
					fmt.Println("(no note)")
				} else {
					fmt.Println(note)
				}
				continue
			}
			if err := d.SetNote(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				browseError("note", err, args[0])
				continue
			}
			snap.Invalidate()
			color.Green("noted %s\n", args[0])
		case "delete", "del":
			if len(args) != 1 {
				fmt.Println("usage: delete <phone>")
				continue
			}
			if err := d.DeleteLead(ctx, args[0]); err != nil {
				color.Red("delete: %v\n", err)
				continue
			}
			snap.Invalidate()
			color.Green("deleted %s\n", args[0])
		case "import":
			if len(args) != 1 {
				fmt.Println("usage: import <file.csv>")
				continue
			}
			result, err := d.ImportFromFile(ctx, args[0])
			if err != nil {
				color.Red("import: %v\n", err)
				continue
			}
			snap.Invalidate()
			color.Green("imported %d, skipped %d\n", result.Inserted, result.Skipped)
		default:
			fmt.Printf("unknown command %q; type 'help'\n", cmd)
		}
	}

	return scanner.Err()
}

func printBrowseHelp() {
	yellow := color.New(color.FgYellow)
	yellow.Println("Commands:")
	fmt.Println("  list                 Show the lead table (noted leads first)")
	fmt.Println("  count                Show the number of leads")
	fmt.Println("  note <phone> [text]  Show or replace a lead's note")
	fmt.Println("  delete <phone>       Delete a lead")
	fmt.Println("  import <file.csv>    Merge a CSV export")
	fmt.Println("  quit                 Leave the shell")
}

func browseError(op string, err error, phone string) {
	if errors.Is(err, store.ErrNotFound) {
		color.Red("%s: no lead with phone %s\n", op, phone)
		return
	}
	color.Red("%s: %v\n", op, err)
}
