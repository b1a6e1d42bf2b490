package unitsrc

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/source"
)

// Parse reads one unit description. Parsing is tolerant: malformed
// directives are reported and skipped so later lines still get checked.
func Parse(file string, data []byte) (*Unit, []*diagnostics.DiagnosticError) {
	var unit *Unit
	var errs []*diagnostics.DiagnosticError

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		loc := lineLoc(file, lineNo, line, fields)
		directive, args := fields[0], fields[1:]

		if unit == nil {
			if directive != "unit" || len(args) != 1 {
				errs = append(errs, diagnostics.NewError(diagnostics.ErrU001, loc,
					"unit description must start with 'unit NAME'"))
				continue
			}
			unit = &Unit{Name: args[0], File: file, Loc: loc, Source: data}
			continue
		}

		decl, err := parseDirective(directive, args, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		unit.Decls = append(unit.Decls, decl)
	}

	if unit == nil {
		errs = append(errs, diagnostics.NewError(diagnostics.ErrU001,
			source.Location{File: file, Line: 1, Column: 1},
			"empty unit description"))
		unit = &Unit{Name: "", File: file}
	}
	return unit, errs
}

func parseDirective(directive string, args []string, loc source.Location) (Decl, *diagnostics.DiagnosticError) {
	switch directive {
	case "fn":
		if len(args) != 1 {
			return Decl{}, badDirective(loc, "expected 'fn NAME/ARITY'")
		}
		name, arity, ok := strings.Cut(args[0], "/")
		if !ok || name == "" {
			return Decl{}, badDirective(loc, "expected 'fn NAME/ARITY'")
		}
		n, err := strconv.Atoi(arity)
		if err != nil || n < 0 {
			return Decl{}, badDirective(loc, fmt.Sprintf("invalid arity %q", arity))
		}
		return Decl{Kind: DeclFn, Name: name, ParamCount: n, Loc: loc}, nil

	case "var":
		if len(args) != 1 {
			return Decl{}, badDirective(loc, "expected 'var NAME'")
		}
		return Decl{Kind: DeclVar, Name: args[0], Loc: loc}, nil

	case "ns":
		if len(args) != 1 {
			return Decl{}, badDirective(loc, "expected 'ns NAME'")
		}
		return Decl{Kind: DeclNamespace, Name: args[0], Loc: loc}, nil

	case "import":
		// "import UNIT.NAME" or "import UNIT.NAME as LOCAL"
		if len(args) != 1 && !(len(args) == 3 && args[1] == "as") {
			return Decl{}, badDirective(loc, "expected 'import UNIT.NAME [as LOCAL]'")
		}
		fromUnit, fromName, ok := strings.Cut(args[0], ".")
		if !ok || fromUnit == "" || fromName == "" {
			return Decl{}, badDirective(loc, "expected 'import UNIT.NAME [as LOCAL]'")
		}
		local := fromName
		if len(args) == 3 {
			local = args[2]
		}
		return Decl{Kind: DeclImport, Name: local, FromUnit: fromUnit, FromName: fromName, Loc: loc}, nil

	case "use":
		if len(args) != 1 {
			return Decl{}, badDirective(loc, "expected 'use NAME'")
		}
		return Decl{Kind: DeclUse, Name: args[0], Loc: loc}, nil

	case "export":
		if len(args) != 1 {
			return Decl{}, badDirective(loc, "expected 'export NAME'")
		}
		return Decl{Kind: DeclExport, Name: args[0], Loc: loc}, nil

	default:
		return Decl{}, badDirective(loc, fmt.Sprintf("unknown directive %q", directive))
	}
}

func badDirective(loc source.Location, msg string) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrU001, loc, msg)
}

// lineLoc points at the directive's argument when there is one, otherwise
// at the directive keyword.
func lineLoc(file string, line int, text string, fields []string) source.Location {
	target := fields[0]
	if len(fields) > 1 {
		target = fields[1]
	}
	col := strings.Index(text, target) + 1
	if col == 0 {
		col = 1
	}
	return source.Location{File: file, Line: line, Column: col}
}
