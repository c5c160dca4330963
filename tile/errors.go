package tile

import "fmt"

// ParseError reports a syntax error in tile assembly source, located by
// line and column (both 1-based) and the offending lexeme.
type ParseError struct {
	Line   int
	Column int
	Lexeme string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("asm:%d:%d: %s (near %q)", e.Line, e.Column, e.Reason, e.Lexeme)
}

// IllegalInstructionError is raised at runtime when a decoded instruction
// cannot legally execute: a non-JRO jump whose operand is a Port, or a
// jump to a label name that isn't in the program's label table.
type IllegalInstructionError struct {
	TileX, TileY int
	Reason       string
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("tile (%d,%d): illegal instruction: %s", e.TileX, e.TileY, e.Reason)
}

// IndeterminateJumpError is raised when a jump is taken with a JumpTarget
// that was never assigned a kind (JumpIndeterminate) — an assembler bug,
// not something the text assembler can itself produce.
type IndeterminateJumpError struct {
	TileX, TileY int
}

func (e *IndeterminateJumpError) Error() string {
	return fmt.Sprintf("tile (%d,%d): jump taken to an indeterminate target", e.TileX, e.TileY)
}

// HcfTrap is raised when a compute tile executes HCF.
type HcfTrap struct {
	TileX, TileY int
}

func (e *HcfTrap) Error() string {
	return fmt.Sprintf("tile (%d,%d): HCF trap", e.TileX, e.TileY)
}

// ChannelMisuseError signals that a tile issued a second pending read or
// write on an endpoint that already had one outstanding. Outside of stack
// tiles this is always an engine bug, never a legitimate program state.
type ChannelMisuseError struct {
	Reason string
}

func (e *ChannelMisuseError) Error() string {
	return "channel misuse: " + e.Reason
}

// UnsupportedPuzzleError reports a puzzle catalog entry that has not been
// implemented.
type UnsupportedPuzzleError struct {
	Name string
}

func (e *UnsupportedPuzzleError) Error() string {
	return fmt.Sprintf("unsupported puzzle: %s", e.Name)
}
