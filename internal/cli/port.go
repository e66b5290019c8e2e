package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePort parses and validates a port argument.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port: %s", s)
	}

	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of valid range: %d", port)
	}

	return port, nil
}
