package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqctl/internal/types"
)

// ParseManifest reads a requirements manifest line by line. Blank lines
// are ignored. A `#` comment opens a new group only at a paragraph
// start, meaning the top of the file or right after a blank line.
// Comments that sit next to preceding content are prose and leave the
// current group unchanged, so a bare package name mentioned inside a
// comment never becomes a declaration. Declarations before any header
// land in the default group.
func ParseManifest(reader io.Reader, path string) (types.Manifest, error) {
	manifest := types.Manifest{Path: path}
	groupIndex := map[string]int{}
	currentGroup := types.DefaultGroup
	atParagraphStart := true
	lineNo := 0

	appendDeclaration := func(decl types.Declaration) {
		idx, ok := groupIndex[decl.Group]
		if !ok {
			manifest.Groups = append(manifest.Groups, types.Group{Name: decl.Group})
			idx = len(manifest.Groups) - 1
			groupIndex[decl.Group] = idx
		}
		manifest.Groups[idx].Declarations = append(manifest.Groups[idx].Declarations, decl)
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			atParagraphStart = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			if atParagraphStart {
				header := strings.TrimSpace(strings.TrimPrefix(line, "#"))
				if header != "" {
					currentGroup = header
				}
				atParagraphStart = false
			}
			continue
		}
		atParagraphStart = false
		decl, err := ParseDeclaration(line, fmt.Sprintf("%s:%d", path, lineNo))
		if err != nil {
			return types.Manifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("line %d: invalid declaration", lineNo)).
				WithCause(err)
		}
		decl.Group = currentGroup
		decl.Line = lineNo
		appendDeclaration(decl)
	}
	if err := scanner.Err(); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest").
			WithCause(err)
	}
	return manifest, nil
}

// RenderManifest writes the manifest back out in canonical form: one
// comment header per group, normalized names, no spaces around the
// comparator, a blank line between groups.
func RenderManifest(manifest types.Manifest) string {
	var builder strings.Builder
	for i, group := range manifest.Groups {
		if i > 0 {
			builder.WriteString("\n")
		}
		if group.Name != types.DefaultGroup || len(manifest.Groups) > 1 {
			builder.WriteString("# ")
			builder.WriteString(group.Name)
			builder.WriteString("\n")
		}
		for _, decl := range group.Declarations {
			builder.WriteString(decl.Name)
			if decl.Op != types.ConstraintOpNone {
				builder.WriteString(string(canonicalOp(decl.Op)))
				builder.WriteString(decl.Version)
			}
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// canonicalOp maps the legacy "=" spelling to "==". All other
// comparators render as written.
func canonicalOp(op types.ConstraintOp) types.ConstraintOp {
	if op == types.ConstraintOpEq {
		return types.ConstraintOpEq2
	}
	return op
}
