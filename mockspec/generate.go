package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
)

const (
	// mockRulesFile is the file corresponding to the rules used to generate mocks
	mockRulesFile = "mockspec/rules"

	// commentPrefix is the prefix used for comments in the rules file
	commentPrefix = "#"
)

var (
	packageName = flag.String("package-name", "", "Only generate mocks for the given package, ie: the first part of the line in the rules file")
	dryRun      = flag.Bool("dry-run", false, "Print the mockgen commands instead of running them")
)

// mockRule is one line of the rules file:
// <package name>;<destination file>;<import path>;<comma separated interfaces>
type mockRule struct {
	packageName string
	destination string
	importPath  string
	interfaces  string
}

func (r mockRule) mockgenArgs() []string {
	return []string{
		"run", "github.com/golang/mock/mockgen",
		"-package", r.packageName,
		"-destination", r.destination,
		"-self_package", r.importPath,
		r.importPath,
		r.interfaces,
	}
}

func parseRule(line string) (mockRule, error) {
	options := strings.Split(line, ";")
	if len(options) != 4 {
		return mockRule{}, fmt.Errorf("invalid syntax for mockgen rule: %v", options)
	}
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
		if options[i] == "" {
			return mockRule{}, fmt.Errorf("empty field %d in mockgen rule: %q", i, line)
		}
	}
	return mockRule{
		packageName: options[0],
		destination: options[1],
		importPath:  options[2],
		interfaces:  options[3],
	}, nil
}

func readRules(r io.Reader) ([]mockRule, error) {
	var rules []mockRule
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, commentPrefix) || line == "" {
			continue
		}
		rule, err := parseRule(line)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, scanner.Err()
}

func main() {
	flag.Parse()

	rulesfile, err := os.Open(mockRulesFile)
	if err != nil {
		log.Fatal(err)
	}
	//nolint: errcheck
	//#nosec G307
	defer rulesfile.Close()

	rules, err := readRules(rulesfile)
	if err != nil {
		log.Fatal(err)
	}

	for _, rule := range rules {
		if *packageName != "" && *packageName != rule.packageName {
			continue
		}
		if *dryRun {
			fmt.Println("go", strings.Join(rule.mockgenArgs(), " "))
			continue
		}
		genMock(rule)
	}
}

func genMock(rule mockRule) {
	cmd := exec.Command("go", rule.mockgenArgs()...) // nolint gosec
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Fatalf("Error generating mocks for rule: %+v, err: %s", rule, err)
	}
}
