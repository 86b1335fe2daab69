package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the book shelf CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - me                     show the current user
//	  - list | l               list books
//	  - add                    add a book
//	  - show <id>              show a single book
//	  - status <id> <status>   change a book's status
//	  - edit <id>              edit a book field by field
//	  - delete <id>            delete a book
//	  - logout                 log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "books %s> ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: me, (l)ist, add, show <id>, status <id> <to-read|reading|completed>, edit <id>, delete <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "show":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "status":
			if len(args) != 2 {
				fmt.Fprintln(w, "Usage: status <id> <to-read|reading|completed>")
				continue
			}
			_ = a.SetStatus(ctx, args[0], args[1])

		case "edit":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
