// Package status provides user-friendly console feedback for transfer
// operations, mirroring every line into the structured log.
package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 ItemChangeType represents what happened to a single transferred item.
type ItemChangeType int

const (
	ItemUploaded ItemChangeType = iota
	ItemDownloaded
	ItemDeleted
	ItemSkipped
	ItemError
)

// 🖼️ ItemChange represents one item's outcome in a batch.
type ItemChange struct {
	Type        ItemChangeType
	Name        string
	Description string
	Error       error
}

// 📢 UserLogger prints emoji-prefixed progress lines for the user while
// mirroring them into zerolog for debugging.
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a user logger from the context's logger.
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{log: *zerolog.Ctx(ctx)}
}

// 📝 LogItemChange logs one item's outcome with appropriate prefix.
func (u *UserLogger) LogItemChange(change ItemChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case ItemUploaded:
		action = "Uploaded"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "📤"})
	case ItemDownloaded:
		action = "Downloaded"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "📥"})
	case ItemDeleted:
		action = "Deleted"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "🗑️"})
	case ItemSkipped:
		action = "Skipped"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case ItemError:
		action = "Failed"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, change.Name)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogProgress logs a batch-level progress line.
func (u *UserLogger) LogProgress(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	u.log.Info().Msg(description)
}

// ⚠️ LogWarning logs a non-fatal condition.
func (u *UserLogger) LogWarning(description string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
	u.log.Warn().Msg(description)
}

// 🔍 LogValidation logs a final success or failure line.
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}
