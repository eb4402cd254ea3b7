package parser

// ParsedFile is the Layer 2 application model extracted from the AST.
type ParsedFile struct {
	Name      string
	Scenarios []ParsedScenario
	Errors    []ParseError
}

// ParsedScenario is a scenario flattened into runnable step lines.
type ParsedScenario struct {
	Name  string   // from Scenario: line
	Tags  []string // e.g. "@smoke"
	Steps []string // background steps followed by the scenario's own
	Line  int      // 1-based line number of Scenario: line
}

// AllSteps returns every scenario's steps in file order.
func (pf *ParsedFile) AllSteps() []string {
	var steps []string
	for _, sc := range pf.Scenarios {
		steps = append(steps, sc.Steps...)
	}
	return steps
}

// Transform converts a Layer 1 Document into a Layer 2 ParsedFile.
func Transform(doc *Document, filename string, errors []ParseError) *ParsedFile {
	pf := &ParsedFile{
		Errors: errors,
	}

	if doc.Feature == nil {
		pf.Name = filenameWithoutExt(filename)
		return pf
	}
	pf.Name = doc.Feature.Header.Name

	var background []string
	if doc.Feature.Background != nil {
		for _, s := range doc.Feature.Background.Steps {
			background = append(background, s.String())
		}
	}

	for _, sd := range doc.Feature.Scenarios {
		ps := ParsedScenario{
			Name: sd.Scenario.Name,
			Line: sd.Line,
		}
		for _, tag := range sd.Tags {
			ps.Tags = append(ps.Tags, tag.Name)
		}
		ps.Steps = append(ps.Steps, background...)
		for _, s := range sd.Scenario.Steps {
			ps.Steps = append(ps.Steps, s.String())
		}
		pf.Scenarios = append(pf.Scenarios, ps)
	}

	return pf
}
