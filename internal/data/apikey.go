package data

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultAPIKeyFile is where the JAO token lives unless configured otherwise.
// Reference: https://www.jao.eu/get-token
const DefaultAPIKeyFile = ".JAO_API_KEY"

var (
	// ErrAPIKeyMissing indicates the token file does not exist.
	ErrAPIKeyMissing = errors.New("api key file not found")
	// ErrAPIKeyEmpty indicates the token file exists but holds no token.
	ErrAPIKeyEmpty = errors.New("api key file has no token")
)

// LoadAPIKey reads the JAO API key (token) from a text file: the first
// whitespace-delimited token of the first line. Everything after it,
// including further lines, is ignored.
func LoadAPIKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: create %s and paste the JAO token there (see https://www.jao.eu/get-token)", ErrAPIKeyMissing, path)
		}
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: place a valid JAO token into %s (see https://www.jao.eu/get-token)", ErrAPIKeyEmpty, path)
}
