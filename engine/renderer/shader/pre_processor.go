// pre_processor.go implements the include pre-processor for the projection vertex programs.
// A line of the form //@oxy:include <name> is replaced by the embedded WGSL struct source
// registered under that name, so every variant shares one definition of its constant block.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// includeRegistry maps include names to embedded struct source files.
var includeRegistry = map[string]string{
	"constants":     "assets/constants.wgsl",
	"constants_lit": "assets/constants_lit.wgsl",
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes records the include names resolved during the last Process call, in source order.
	includes []string
}

// PreProcessor expands @oxy:include annotations in WGSL source.
type PreProcessor interface {
	// Process replaces every @oxy:include annotation with the registered struct source.
	//
	// Parameters:
	//   - source: raw WGSL source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error if an annotation is malformed or names an unknown include
	Process(source string) (string, error)

	// Includes returns the include names resolved by the most recent Process call.
	//
	// Returns:
	//   - []string: include names in source order
	Includes() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.includes = p.includes[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		body, ok := strings.CutPrefix(trimmed, "//")
		if !ok {
			out = append(out, line)
			continue
		}
		body, ok = strings.CutPrefix(strings.TrimSpace(body), annotationPrefix)
		if !ok {
			out = append(out, line)
			continue
		}

		fields := strings.Fields(body)
		if len(fields) != 2 || fields[0] != "include" {
			return "", fmt.Errorf("line %d: malformed annotation %q", i+1, trimmed)
		}
		path, ok := includeRegistry[fields[1]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, fields[1])
		}
		data, err := assets.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, strings.TrimRight(string(data), "\n"))
		p.includes = append(p.includes, fields[1])
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []string {
	return p.includes
}
