package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/client"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/config"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/services"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/session"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	bookService services.BookService
	userName    string
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	s, err := services.NewSession(session.NewFileStore(c.TokenFile))
	if err != nil {
		return nil, err
	}

	apiClient := client.NewRESTClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, s)
	bs := services.NewBookService(apiClient, s)

	return newApp(c, as, bs, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, as services.AuthService, bs services.BookService, in io.Reader, out io.Writer) *App {
	return &App{config: c, authService: as, bookService: bs, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsLoggedIn()
}

func (a *App) getStatus() string {
	switch {
	case a.userName != "":
		return fmt.Sprintf("(%s) ", a.userName)
	case a.isLoggedIn():
		return "(logged in) "
	}
	return ""
}

// Run prints a greeting and runs the REPL until the user quits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the book shelf CLI (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server at %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	if a.isLoggedIn() {
		if u, err := a.authService.Me(ctx); err == nil {
			a.userName = u.Name
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
