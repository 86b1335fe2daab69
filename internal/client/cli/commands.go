package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/client"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/models"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/services"
)

// report prints err in a user-facing form and returns it.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "You are not logged in. Use 'login' first.")
	case errors.Is(err, client.ErrUnauthorized):
		a.userName = ""
		fmt.Fprintf(a.out, "Session rejected (%v). Please log in again.\n", err)
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "Server unavailable: %v\n", err)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, name, email, password, confirm); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, email, password); err != nil {
		return a.report(err)
	}

	a.userName = email
	if u, err := a.authService.Me(ctx); err == nil {
		a.userName = u.Name
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	a.userName = u.Name
	fmt.Fprintf(a.out, "%s <%s>, member since %s\n", u.Name, u.Email, u.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) List(ctx context.Context) error {
	books, err := a.bookService.List(ctx)
	if err != nil {
		return a.report(err)
	}

	if len(books) == 0 {
		fmt.Fprintln(a.out, "No books yet. Use 'add' to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, b.Status)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	var nb models.NewBook
	var err error

	if nb.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if nb.Author, err = GetSimpleText(a.reader, "Author", a.out); err != nil {
		return err
	}
	if nb.ISBN, err = GetSimpleText(a.reader, "ISBN (optional)", a.out); err != nil {
		return err
	}

	yearText, err := GetSimpleText(a.reader, "Year (optional)", a.out)
	if err != nil {
		return err
	}
	if yearText != "" {
		y, err := strconv.Atoi(yearText)
		if err != nil {
			return a.report(fmt.Errorf("year must be a number: %q", yearText))
		}
		nb.Year = &y
	}

	if nb.Cover, err = GetSimpleText(a.reader, "Cover URL (optional)", a.out); err != nil {
		return err
	}
	prompt := "Status (optional: " + strings.Join(models.Statuses, ", ") + ")"
	if nb.Status, err = GetSimpleText(a.reader, prompt, a.out); err != nil {
		return err
	}
	if nb.Description, err = GetMultiline(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}

	b, err := a.bookService.Add(ctx, nb)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Added %q (id %s)\n", b.Title, b.ID)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	b, err := a.bookService.Show(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.printBook(b)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	b, err := a.bookService.SetStatus(ctx, id, status)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%q is now %s\n", b.Title, b.Status)
	return nil
}

// clearValue typed at an edit prompt clears the field.
const clearValue = "-"

// Edit walks through the fields of a book showing the current values.
// Enter keeps a value, "-" clears it, anything else replaces it.
func (a *App) Edit(ctx context.Context, id string) error {
	b, err := a.bookService.Show(ctx, id)
	if err != nil {
		return a.report(err)
	}

	year := ""
	if b.Year != nil {
		year = strconv.Itoa(*b.Year)
	}

	fields := []struct {
		key, label, current string
	}{
		{"title", "Title", b.Title},
		{"author", "Author", b.Author},
		{"isbn", "ISBN", b.ISBN},
		{"year", "Year", year},
		{"cover", "Cover URL", b.Cover},
		{"status", "Status", b.Status},
		{"description", "Description", b.Description},
	}

	fmt.Fprintf(a.out, "Editing %q. Press Enter to keep a value, %s to clear it.\n", b.Title, clearValue)

	changes := map[string]any{}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.current), a.out)
		if err != nil {
			return err
		}

		switch {
		case v == "":
		case v == clearValue:
			changes[f.key] = nil
		case f.key == "year":
			y, err := strconv.Atoi(v)
			if err != nil {
				return a.report(fmt.Errorf("year must be a number: %q", v))
			}
			changes[f.key] = y
		default:
			changes[f.key] = v
		}
	}

	if len(changes) == 0 {
		fmt.Fprintln(a.out, "Nothing changed.")
		return nil
	}

	updated, err := a.bookService.Edit(ctx, id, changes)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Book updated.")
	a.printBook(updated)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.bookService.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Book removed.")
	return nil
}

func (a *App) printBook(b *models.Book) {
	fmt.Fprintf(a.out, "ID:          %s\n", b.ID)
	fmt.Fprintf(a.out, "Title:       %s\n", b.Title)
	fmt.Fprintf(a.out, "Author:      %s\n", b.Author)
	fmt.Fprintf(a.out, "Status:      %s\n", b.Status)
	if b.ISBN != "" {
		fmt.Fprintf(a.out, "ISBN:        %s\n", b.ISBN)
	}
	if b.Year != nil {
		fmt.Fprintf(a.out, "Year:        %d\n", *b.Year)
	}
	if b.Cover != "" {
		fmt.Fprintf(a.out, "Cover:       %s\n", b.Cover)
	}
	if b.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", b.Description)
	}
	fmt.Fprintf(a.out, "Added:       %s\n", b.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Updated:     %s\n", b.UpdatedAt.Format("2006-01-02 15:04"))
}
