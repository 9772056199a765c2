package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// slotSize is the byte size of one constant slot (a vec4<f32>).
const slotSize = 16

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	// The type capture (.+) is greedy to handle parameterized types like array<T, N>.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// uniformDeclRegex captures the variable name and type of a uniform binding
	// such as: @group(0) @binding(0) var<uniform> constants: Constants;
	uniformDeclRegex = regexp.MustCompile(`@group\(\d+\)\s*@binding\(\d+\)\s*var<uniform>\s+(\w+)\s*:\s*(\w+)\s*;`)
)

// errNoUniform is returned when a program declares no uniform binding.
var errNoUniform = errors.New("no var<uniform> declaration")

// parseVertexEntryPoint returns the name of the first @vertex function, or "" if there is none.
func parseVertexEntryPoint(source string) string {
	if match := vertexEntryRegex.FindStringSubmatch(stripComments(source)); match != nil {
		return match[1]
	}
	return ""
}

// findUniformStruct locates the struct bound as var<uniform> in cleaned WGSL source.
//
// Parameters:
//   - cleaned: WGSL source with comments already stripped
//
// Returns:
//   - parsedStruct: the uniform struct
//   - error: an error if there is no uniform declaration or its type is not a struct
func findUniformStruct(cleaned string) (parsedStruct, error) {
	decl := uniformDeclRegex.FindStringSubmatch(cleaned)
	if decl == nil {
		return parsedStruct{}, errNoUniform
	}
	for _, ps := range parseStructBlocks(cleaned) {
		if ps.name == decl[2] {
			return ps, nil
		}
	}
	return parsedStruct{}, fmt.Errorf("uniform %s: struct %s not found", decl[1], decl[2])
}

// parseUniformLayout computes the byte layout of the program's uniform struct.
//
// Parameters:
//   - source: raw WGSL source
//
// Returns:
//   - wgslTypeLayout: size and alignment of the uniform struct
//   - error: an error if the struct cannot be found or contains unresolvable types
func parseUniformLayout(source string) (wgslTypeLayout, error) {
	cleaned := stripComments(source)
	ps, err := findUniformStruct(cleaned)
	if err != nil {
		return wgslTypeLayout{}, err
	}
	known := computeStructSizes(parseStructBlocks(cleaned))
	layout, ok := known[ps.name]
	if !ok {
		return wgslTypeLayout{}, fmt.Errorf("struct %s has fields of unknown type", ps.name)
	}
	return layout, nil
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields
//
// Parameters:
//   - body: the content between { and } of a struct declaration
//
// Returns:
//   - []parsedField: all fields found in the struct body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		fields = append(fields, parsedField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			isBuiltin: builtinRegex.MatchString(line),
		})
	}

	return fields
}
