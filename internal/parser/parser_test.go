package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleScenario(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given a user
    When  they log in
    Then  they see the dashboard
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "Login", doc.Feature.Header.Name)
	require.Len(t, doc.Feature.Scenarios, 1)
	sc := doc.Feature.Scenarios[0]
	assert.Equal(t, "User logs in", sc.Scenario.Name)
	assert.Equal(t, 2, sc.Line)
	require.Len(t, sc.Scenario.Steps, 3)
	assert.Equal(t, Step{Keyword: "Given", Text: "a user", Params: []string{}, Line: 3}, sc.Scenario.Steps[0])
	assert.Equal(t, "When they log in", sc.Scenario.Steps[1].String())
	assert.Equal(t, 5, sc.Scenario.Steps[2].Line)
}

func TestParse_StepParameters(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given user "Alice" enters "secret"
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	step := doc.Feature.Scenarios[0].Scenario.Steps[0]
	assert.Equal(t, []string{"Alice", "secret"}, step.Params)
}

func TestParse_MultipleScenarios(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given a user

  Scenario: User fails login
    Given a user
    But the password is wrong
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 2)
	assert.Equal(t, "User logs in", doc.Feature.Scenarios[0].Scenario.Name)
	assert.Equal(t, "User fails login", doc.Feature.Scenarios[1].Scenario.Name)
	assert.Len(t, doc.Feature.Scenarios[1].Scenario.Steps, 2)
}

func TestParse_Background(t *testing.T) {
	content := []byte(`Feature: Login
  Background:
    Given a registered user

  Scenario: User logs in
    When  they log in
    Then  they see the dashboard
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.NotNil(t, doc.Feature.Background)
	assert.Equal(t, 2, doc.Feature.Background.Line)
	require.Len(t, doc.Feature.Background.Steps, 1)
	assert.Equal(t, "Given a registered user", doc.Feature.Background.Steps[0].String())
	require.Len(t, doc.Feature.Scenarios, 1)
	assert.Len(t, doc.Feature.Scenarios[0].Scenario.Steps, 2)
}

func TestParse_ScenarioDescription(t *testing.T) {
	content := []byte(`Feature: Login
  As a member
  I want to log in

  Scenario: User logs in
    Only verified accounts
    Given a user
    | name  |
    | alice |
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "As a member\n  I want to log in", doc.Feature.Header.Description)
	sc := doc.Feature.Scenarios[0].Scenario
	assert.Equal(t, "Only verified accounts", sc.Description)
	assert.Len(t, sc.Steps, 1)
}

func TestParse_Tags(t *testing.T) {
	content := []byte(`@quiz
Feature: Login
  @smoke @wip @regression
  Scenario: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Header.Tags, 1)
	assert.Equal(t, "@quiz", doc.Feature.Header.Tags[0].Name)
	tags := doc.Feature.Scenarios[0].Tags
	require.Len(t, tags, 3)
	assert.Equal(t, "@smoke", tags[0].Name)
	assert.Equal(t, "@wip", tags[1].Name)
	assert.Equal(t, "@regression", tags[2].Name)
}

func TestParse_ScenarioOutlineError(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario Outline: User logs in
    Given a user
`)
	doc, errors := Parse("login.feature", content)
	require.Len(t, errors, 1)
	assert.Equal(t, "Scenario Outline is not supported", errors[0].Message)
	assert.Equal(t, 2, errors[0].Line)
	assert.Empty(t, doc.Feature.Scenarios)
}

func TestParse_RuleError(t *testing.T) {
	content := []byte(`Feature: Login
  Rule: Business rule
    Scenario: Test
`)
	_, errors := Parse("login.feature", content)
	require.Len(t, errors, 1)
	assert.Equal(t, "Rule is not supported", errors[0].Message)
}

func TestParse_ExamplesError(t *testing.T) {
	content := []byte(`Feature: Login
  Examples: Table
    | a |
`)
	_, errors := Parse("login.feature", content)
	require.Len(t, errors, 1)
	assert.Equal(t, "Examples is not supported", errors[0].Message)
}

func TestParse_NoFeatureLine(t *testing.T) {
	content := []byte(`  Scenario: User logs in
    Given a user
`)
	doc, errors := Parse("features/login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "login", doc.Feature.Header.Name)
	require.Len(t, doc.Feature.Scenarios, 1)
	assert.Equal(t, "User logs in", doc.Feature.Scenarios[0].Scenario.Name)
}

func TestParse_BlankLinesAndComments(t *testing.T) {
	content := []byte(`# This is a comment
Feature: Login
  # Another comment
  Scenario: User logs in
    Given a user

    # mid-scenario comment
    When  they log in
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "Login", doc.Feature.Header.Name)
	require.Len(t, doc.Feature.Scenarios, 1)
	assert.Len(t, doc.Feature.Scenarios[0].Scenario.Steps, 2)
}

func TestParse_CRLF(t *testing.T) {
	content := []byte("Feature: Login\r\n  Scenario: A\r\n    Given a user\r\n")
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	assert.Equal(t, "Login", doc.Feature.Header.Name)
	assert.Equal(t, "Given a user", doc.Feature.Scenarios[0].Scenario.Steps[0].String())
}

func TestParse_EmptyFile(t *testing.T) {
	doc, errors := Parse("empty.feature", []byte(""))
	require.Empty(t, errors)
	assert.Equal(t, "empty", doc.Feature.Header.Name)
	assert.Empty(t, doc.Feature.Scenarios)
}

func TestParse_DocStringContentIsOpaque(t *testing.T) {
	content := []byte(`Feature: Parse Scenarios
  Scenario: Nested feature text is skipped
    Given the file contains:
      """
      Feature: Login
        Scenario: User logs in
          Given a user
      """
    When the user runs sync
`)
	doc, errors := Parse("test.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)
	steps := doc.Feature.Scenarios[0].Scenario.Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "Given the file contains:", steps[0].String())
	assert.Equal(t, "When the user runs sync", steps[1].String())
}

func TestParse_DocStringWithBackticks(t *testing.T) {
	content := []byte("Feature: Test\n  Scenario: Has code block\n    Given content:\n      ```\n      Scenario: Not real\n      Then nope\n      ```\n    Then it works\n")
	doc, errors := Parse("test.feature", content)
	require.Empty(t, errors)
	require.Len(t, doc.Feature.Scenarios, 1)
	assert.Len(t, doc.Feature.Scenarios[0].Scenario.Steps, 2)
}

func TestParse_UnknownKeywordAfterFirstStepIsKept(t *testing.T) {
	content := []byte(`Feature: Login
  Scenario: User logs in
    Given a
    Whenever "b" happens
    Then c
`)
	doc, errors := Parse("login.feature", content)
	require.Empty(t, errors)
	steps := doc.Feature.Scenarios[0].Scenario.Steps
	require.Len(t, steps, 3)
	assert.Equal(t, Step{Text: `Whenever "b" happens`, Params: []string{"b"}, Line: 4}, steps[1])
	assert.Equal(t, `Whenever "b" happens`, steps[1].String())
	assert.Equal(t, "Then c", steps[2].String())
}
