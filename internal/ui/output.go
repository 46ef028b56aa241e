package ui

import "fmt"

// Status symbols. State is carried by the symbol, never by color alone.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func tagged(symbol, msg string) string {
	return symbol + " " + msg
}

// Success renders msg behind a checkmark.
func Success(msg string) string { return tagged(SymbolSuccess, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error renders msg behind a cross.
func Error(msg string) string { return tagged(SymbolError, msg) }

// Warning renders msg behind a warning sign.
func Warning(msg string) string { return tagged(SymbolWarning, msg) }

// Warningf is Warning with formatting.
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Info renders msg behind an info sign.
func Info(msg string) string { return tagged(SymbolInfo, msg) }

// Infof is Info with formatting.
func Infof(format string, args ...interface{}) string {
	return Info(fmt.Sprintf(format, args...))
}

// Header styles a section heading.
func Header(msg string) string { return Bold.Render(msg) }

// FilePath styles a project-relative path.
func FilePath(path string) string { return Accent.Render(path) }

// Rename styles an "old -> new" transition.
func Rename(oldPath, newPath string) string {
	return fmt.Sprintf("%s %s %s", Accent.Render(oldPath), Muted.Render("->"), Accent.Render(newPath))
}

// KindTag styles a bracketed file-kind label, "[model]".
func KindTag(kind string) string { return Muted.Render("[" + kind + "]") }

// LineNumPadded styles a right-aligned line number.
func LineNumPadded(n, width int) string {
	return Muted.Render(fmt.Sprintf("%*d", width, n))
}

// Hint styles secondary guidance such as prompts and next steps.
func Hint(msg string) string { return Muted.Render(msg) }

// Count formats a count with its noun, "(3 files)".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}

// ErrorWarningCounts formats issue totals, "(1 error, 2 warnings)".
func ErrorWarningCounts(errors, warnings int) string {
	switch {
	case errors > 0 && warnings > 0:
		return fmt.Sprintf("(%d %s, %d %s)",
			errors, plural("error", errors),
			warnings, plural("warning", warnings))
	case errors > 0:
		return Count(errors, "error", "errors")
	default:
		return Count(warnings, "warning", "warnings")
	}
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
