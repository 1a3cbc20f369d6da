package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Inbox(ctx context.Context) error
	Read(ctx context.Context, messageID string) error
	Clear(ctx context.Context) error
	Edit(ctx context.Context) error
	Passwd(ctx context.Context) error

	Users(ctx context.Context) error
	Suspend(ctx context.Context, userID string) error
	Notify(ctx context.Context, userID, text string) error
	MkAdmin(ctx context.Context) error
	Remove(ctx context.Context, userID string) error
}

const (
	helpGuest    = "Available commands: signup, login, exit"
	helpCustomer = "Available commands: whoami, inbox, read <msg-id>, clear, edit, passwd, logout, exit"
	helpAdmin    = "Available commands: whoami, inbox, read <msg-id>, clear, edit, passwd, users, suspend <user-id>, notify <user-id> <text>, mkadmin, rm <user-id>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Handler errors are reported by the handlers
// themselves, so they are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ino%s> ", statusFn()))
		line, ok := readLine(reader)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}
		if needsAdmin(cmd) && !a.isAdmin() {
			printlnFn("Admin only.")
			continue
		}

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpCustomer)
			default:
				printlnFn(helpGuest)
			}

		case "signup":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "inbox":
			_ = a.Inbox(ctx)
		case "read":
			if len(args) != 1 {
				printlnFn("Usage: read <msg-id>")
				continue
			}
			_ = a.Read(ctx, args[0])
		case "clear":
			_ = a.Clear(ctx)
		case "edit":
			_ = a.Edit(ctx)
		case "passwd":
			_ = a.Passwd(ctx)

		case "users":
			_ = a.Users(ctx)
		case "suspend":
			if len(args) != 1 {
				printlnFn("Usage: suspend <user-id>")
				continue
			}
			_ = a.Suspend(ctx, args[0])
		case "notify":
			if len(args) < 2 {
				printlnFn("Usage: notify <user-id> <text>")
				continue
			}
			_ = a.Notify(ctx, args[0], strings.Join(args[1:], " "))
		case "mkadmin":
			_ = a.MkAdmin(ctx)
		case "rm":
			if len(args) != 1 {
				printlnFn("Usage: rm <user-id>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "inbox", "read", "clear", "edit", "passwd":
		return true
	}
	return needsAdmin(cmd)
}

func needsAdmin(cmd string) bool {
	switch cmd {
	case "users", "suspend", "notify", "mkadmin", "rm":
		return true
	}
	return false
}
