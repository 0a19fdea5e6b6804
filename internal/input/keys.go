package input

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Command is an editor keyboard command.
type Command int

const (
	CmdNone Command = iota
	CmdDelete
	CmdBackspace
	CmdSelectAll
	CmdCopy
	CmdPaste
	CmdEscape
	CmdEnter
)

var commandNames = [...]string{"none", "delete", "backspace", "select-all", "copy", "paste", "escape", "enter"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Shortcut describes a keyboard combination. Either Rune or Code is set.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Shortcuts is the default key map.
var Shortcuts = map[Shortcut]Command{
	{Code: key.CodeDeleteForward}:                CmdDelete,
	{Code: key.CodeDeleteBackspace}:              CmdBackspace,
	{Rune: 'a', Modifiers: key.ModControl}:       CmdSelectAll,
	{Rune: 'c', Modifiers: key.ModControl}:       CmdCopy,
	{Rune: 'v', Modifiers: key.ModControl}:       CmdPaste,
	{Code: key.CodeA, Modifiers: key.ModControl}: CmdSelectAll,
	{Code: key.CodeC, Modifiers: key.ModControl}: CmdCopy,
	{Code: key.CodeV, Modifiers: key.ModControl}: CmdPaste,
	{Code: key.CodeEscape}:                       CmdEscape,
	{Code: key.CodeReturnEnter}:                  CmdEnter,
	{Code: key.CodeKeypadEnter}:                  CmdEnter,
	{Rune: 'a', Modifiers: key.ModMeta}:          CmdSelectAll,
	{Rune: 'c', Modifiers: key.ModMeta}:          CmdCopy,
	{Rune: 'v', Modifiers: key.ModMeta}:          CmdPaste,
}

// CommandFor maps a key press to a command. Releases map to CmdNone.
func CommandFor(e key.Event) Command {
	if e.Direction == key.DirRelease {
		return CmdNone
	}
	mods := e.Modifiers &^ key.ModShift
	if mods != 0 && e.Rune > 0 {
		if c, ok := Shortcuts[Shortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return c
		}
	}
	if c, ok := Shortcuts[Shortcut{Code: e.Code, Modifiers: mods}]; ok {
		return c
	}
	return CmdNone
}

// TextRune returns the printable rune typed by e, for the inline editor.
func TextRune(e key.Event) (rune, bool) {
	if e.Direction == key.DirRelease {
		return 0, false
	}
	if e.Modifiers&(key.ModControl|key.ModMeta|key.ModAlt) != 0 {
		return 0, false
	}
	if e.Rune <= 0 || !unicode.IsPrint(e.Rune) {
		return 0, false
	}
	return e.Rune, true
}
