package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func checkCoverage(out *console, args []string) error {
	fs := flag.NewFlagSet("check-coverage", flag.ContinueOnError)
	profile := fs.String("file", "coverage.out", "coverage profile")
	threshold := fs.Float64("threshold", 70, "minimum total coverage percent")
	runTests := fs.Bool("run", false, "run the tests to produce the profile first")
	html := fs.Bool("html", false, "write an HTML report beside the profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateArgs(*profile); err != nil {
		return err
	}
	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"./..."}
	}

	out.Section(fmt.Sprintf("Coverage threshold %.1f%%", *threshold))

	if *runTests {
		if err := goTool(append([]string{"test", "-coverprofile=" + *profile}, packages...)...); err != nil {
			return fmt.Errorf("tests failed: %w", err)
		}
	} else if _, err := os.Stat(*profile); err != nil {
		return fmt.Errorf("coverage profile %s not found, use -run", *profile)
	}

	report, err := goToolOutput("tool", "cover", "-func="+*profile)
	if err != nil {
		return fmt.Errorf("go tool cover: %w", err)
	}
	total, err := parseTotalCoverage(report)
	if err != nil {
		return err
	}
	out.Info("total coverage %.1f%%", total)

	if *html {
		target, err := htmlReportPath(*profile)
		if err == nil {
			err = goTool("tool", "cover", "-html="+*profile, "-o", target)
		}
		if err != nil {
			out.Warn("html report: %v", err)
		} else {
			out.Success("html report written to %s", target)
		}
	}

	if total < *threshold {
		return fmt.Errorf("coverage %.1f%% below threshold %.1f%%", total, *threshold)
	}
	out.Success("coverage meets threshold")
	return nil
}

// parseTotalCoverage reads the percentage on the "total:" line of go tool cover -func
func parseTotalCoverage(report string) (float64, error) {
	for _, line := range strings.Split(report, "\n") {
		if !strings.HasPrefix(line, "total:") {
			continue
		}
		fields := strings.Fields(line)
		pct := strings.TrimSuffix(fields[len(fields)-1], "%")
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse coverage percentage %q", pct)
		}
		return v, nil
	}
	return 0, fmt.Errorf("no total line in coverage report")
}

func htmlReportPath(profile string) (string, error) {
	target := filepath.Clean(strings.TrimSuffix(profile, filepath.Ext(profile)) + ".html")
	if strings.Contains(target, "..") || filepath.IsAbs(target) {
		return "", fmt.Errorf("refusing to write report outside the working tree: %s", target)
	}
	return target, nil
}
