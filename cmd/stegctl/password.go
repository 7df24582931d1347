package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

const passwordEnvVar = "STEGCTL_PASSWORD"

// resolvePassword implements the --password (ENV|PROMPT) contract: if the
// flag value is non-empty it is used directly, otherwise STEGCTL_PASSWORD
// is consulted, otherwise the user is prompted on the controlling terminal
// with input echo disabled.
func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(passwordEnvVar); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
