package parser

// Layer 1: line-oriented document model of a .feature file

type Document struct {
	Feature *Feature
}

type Feature struct {
	Header     FeatureHeader
	Background *Background
	Scenarios  []ScenarioDefinition
}

type FeatureHeader struct {
	Tags        []Tag
	Name        string
	Description string
}

type Background struct {
	Steps []Step
	Line  int // 1-based line number of Background: line
}

type ScenarioDefinition struct {
	Tags     []Tag
	Scenario Scenario
	Line     int // 1-based line number of Scenario: line
}

type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

type Tag struct {
	Name string // e.g. "@smoke", "@wip"
}

type Step struct {
	Keyword string   // Given, When, Then, And, But; empty for an unknown keyword
	Text    string   // remainder after the keyword
	Params  []string // double-quoted spans of Text
	Line    int
}

// String renders the step as a single step line.
func (s Step) String() string {
	if s.Text == "" {
		return s.Keyword
	}
	if s.Keyword == "" {
		return s.Text
	}
	return s.Keyword + " " + s.Text
}

type ParseError struct {
	Line    int
	Message string
}
