package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Show(ctx context.Context, n string) error
	Flip(ctx context.Context, n string) error
	Expand(ctx context.Context, n string) error
	Read(ctx context.Context, n string) error
	Share(ctx context.Context, n string) error
	Chat(ctx context.Context, text string) error
	Follow(ctx context.Context, userID string) error
	Retry(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, open <path>, help, exit"
	userHelp  = "Available commands: summaries, show <n>, flip <n>, expand <n>, read <n>, share <n>, " +
		"dashboard, profile <id>, follow <id>, chat <text>, open <path>, retry, logout, help, exit"
)

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Prompts inside handlers read from the same reader, so
// piped input stays in order.
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - open <path>    go to a view, e.g. /dashboard
//	  - exit | quit    leave the program
//
//	Logged in, additionally:
//	  - summaries              list summary cards
//	  - show|flip|expand <n>   work with card n of the last list
//	  - read <n>               mark card n as read
//	  - share <n>              copy card n to the clipboard
//	  - dashboard              reading stats
//	  - profile <id>           a user's profile
//	  - follow <id>            follow or unfollow a user
//	  - chat <text>            ask the assistant
//	  - retry                  repeat the last failed page load
//	  - logout
//
// Handlers report their own errors to the user; the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		line = strings.TrimSpace(line)
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "open":
			if rest == "" {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, rest)

		case "summaries", "l", "list":
			_ = a.Open(ctx, "/summaries")

		case "dashboard":
			_ = a.Open(ctx, "/dashboard")

		case "profile":
			if rest == "" {
				printlnFn("Usage: profile <id>")
				continue
			}
			_ = a.Open(ctx, "/profile/"+rest)

		case "show", "flip", "expand", "read", "share", "follow":
			if rest == "" {
				arg := "<n>"
				if cmd == "follow" {
					arg = "<id>"
				}
				printlnFn(fmt.Sprintf("Usage: %s %s", cmd, arg))
				continue
			}
			_ = dispatchArg(ctx, a, cmd, rest)

		case "chat":
			if rest == "" {
				_ = a.Open(ctx, "/chat")
				continue
			}
			_ = a.Chat(ctx, rest)

		case "retry":
			_ = a.Retry(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatchArg(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "show":
		return a.Show(ctx, arg)
	case "flip":
		return a.Flip(ctx, arg)
	case "expand":
		return a.Expand(ctx, arg)
	case "read":
		return a.Read(ctx, arg)
	case "share":
		return a.Share(ctx, arg)
	case "follow":
		return a.Follow(ctx, arg)
	}
	return nil
}
