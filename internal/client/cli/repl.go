package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	open(ctx context.Context, path string) error
	logout(ctx context.Context) error
	generateCards(ctx context.Context) error
	regenerateCard(ctx context.Context, id string) error
	editCard(ctx context.Context, id string) error
	dismissCard(ctx context.Context, id string) error
	scheduleCard(ctx context.Context, id string) error
}

// runREPL reads commands and dispatches them. Navigation commands go
// through the guarded router, so a signed-out "cards" lands on the sign-in
// screen and a half-onboarded one resumes the wizard. Handler errors are
// swallowed; handlers report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("brandkit [%s] > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		needsID := func() (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage:", cmd, "<card-id>")
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: cards, scheduled, generate, regenerate <id>, edit <id>, dismiss <id>, schedule <id>, onboard, settings, logout, exit")
			} else {
				printlnFn("Available commands: login, register, reset, exit")
			}

		case "login":
			_ = a.open(ctx, "/login")

		case "register":
			_ = a.open(ctx, "/register")

		case "reset":
			_ = a.open(ctx, "/password-reset")

		case "onboard":
			_ = a.open(ctx, "/onboarding/step-1")

		case "cards":
			_ = a.open(ctx, "/cards")

		case "scheduled":
			_ = a.open(ctx, "/scheduled")

		case "settings":
			_ = a.open(ctx, "/settings")

		case "generate":
			_ = a.generateCards(ctx)

		case "regenerate":
			if id, ok := needsID(); ok {
				_ = a.regenerateCard(ctx, id)
			}

		case "edit":
			if id, ok := needsID(); ok {
				_ = a.editCard(ctx, id)
			}

		case "dismiss":
			if id, ok := needsID(); ok {
				_ = a.dismissCard(ctx, id)
			}

		case "schedule":
			if id, ok := needsID(); ok {
				_ = a.scheduleCard(ctx, id)
			}

		case "logout":
			_ = a.logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
