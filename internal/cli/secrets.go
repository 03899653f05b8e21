package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"
)

const timeLayout = "2006-01-02 15:04"

// Add asks for a site, its username, the password and optional notes, and
// stores them encrypted.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.warn("Please log in first")
		return nil
	}

	site, err := a.prompt("Site")
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	username, err := a.prompt("Site username")
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	secret, err := a.promptSecret("Site password")
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	notes, err := a.prompt("Notes (optional)")
	if err != nil {
		return a.fail(ctx, "add", err)
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	id, err := a.vault.StoreSecret(opCtx, site, username, secret, notesPtr)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	a.success("Saved entry %d", id)
	return nil
}

// List prints the user's entries without their passwords.
func (a *App) List(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	items, err := a.vault.ListSecrets(opCtx)
	if err != nil {
		return a.fail(ctx, "list", err)
	}
	if len(items) == 0 {
		a.info("No entries yet. Use 'add' to store one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSITE\tUSERNAME\tUPDATED\tNOTES")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.Site, it.Username, formatTime(it.UpdatedAt), it.Notes)
	}
	return tw.Flush()
}

// Show reveals one entry. The id comes from args or is asked for.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		a.warn("Please log in first")
		return nil
	}

	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = a.prompt("Entry ID"); err != nil {
			return a.fail(ctx, "show", err)
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		a.warn("Usage: show <id>")
		return fmt.Errorf("invalid id %q", raw)
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.vault.RetrieveSecret(opCtx, id)
	if err != nil {
		return a.fail(ctx, "show", err)
	}

	labelColor.Fprint(a.out, "Site:     ")
	fmt.Fprintln(a.out, s.Site)
	labelColor.Fprint(a.out, "Username: ")
	fmt.Fprintln(a.out, s.Username)
	labelColor.Fprint(a.out, "Password: ")
	fmt.Fprintln(a.out, s.Password)
	if s.Notes != "" {
		labelColor.Fprint(a.out, "Notes:    ")
		fmt.Fprintln(a.out, s.Notes)
	}
	labelColor.Fprint(a.out, "Updated:  ")
	fmt.Fprintln(a.out, formatTime(s.UpdatedAt))
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
