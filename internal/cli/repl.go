package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ViewResource(ctx context.Context) error
	ModifyResource(ctx context.Context) error
	ViewLogs(ctx context.Context) error
	Logout(ctx context.Context) error
}

var menu = []string{
	"1. Register",
	"2. Login",
	"3. View Protected Resource",
	"4. Modify Resource (Admin Only)",
	"5. View Logs (Admin Only)",
	"6. Logout",
	"7. Exit",
}

func printMenu() {
	for _, line := range menu {
		printlnFn(line)
	}
}

// runREPL writes the prompt to w, reads one command per line from reader and
// dispatches it. Handler errors have already been reported to the user, so
// the loop ignores them. It returns on EOF or exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "auth%s> ", statusFn())

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "help", "menu":
			printMenu()
		case "1", "register":
			_ = a.Register(ctx)
		case "2", "login":
			_ = a.Login(ctx)
		case "3", "view":
			_ = a.ViewResource(ctx)
		case "4", "modify":
			_ = a.ModifyResource(ctx)
		case "5", "logs":
			_ = a.ViewLogs(ctx)
		case "6", "logout":
			_ = a.Logout(ctx)
		case "7", "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Invalid choice:", parts[0])
		}

		if err != nil {
			return
		}
	}
}
