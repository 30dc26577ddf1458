package config

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const gitConfigPrefix = "lazycommit."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config command and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses `git config --get-regexp` output.
// Input format: "lazycommit.commit.maxtitlelength 60\nlazycommit.general.autopush true\n"
// The last value of a repeated key wins.
func parseGitConfigOutput(output string) map[string]any {
	result := make(map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		name, value, _ := strings.Cut(line, " ")
		key, ok := splitQualifiedKey(strings.TrimPrefix(name, gitConfigPrefix))
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}

// splitQualifiedKey normalizes "section.key" and reports whether both parts exist.
func splitQualifiedKey(name string) (string, bool) {
	section, key, ok := strings.Cut(name, ".")
	if !ok || section == "" || key == "" {
		return "", false
	}
	return normalizeKey(section) + "." + normalizeKey(key), true
}

// loadGitConfig reads lazycommit.* git config values.
func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", `^lazycommit\.`}

	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return map[string]any{}, nil
	}
	return parseGitConfigOutput(output), nil
}

// parseCLIConfigOverrides parses --config=section.key=value entries.
// The "lazycommit." prefix is accepted but optional.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)

	for _, override := range overrides {
		fullKey, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config override: %q, expected format: section.key=value (note: use = not space)", override)
		}

		key, ok := splitQualifiedKey(strings.TrimPrefix(strings.TrimSpace(fullKey), gitConfigPrefix))
		if !ok {
			return nil, fmt.Errorf("config override key must look like section.key: %q", fullKey)
		}
		result[key] = value
	}

	return result, nil
}
