package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sarchlab/regmock/access"
)

const (
	envNames = "REGMOCK_NAMES"
	envView  = "REGMOCK_VIEW"

	viewFull       = "full"
	viewCompressed = "compressed"
)

type config struct {
	namesPath string
	view      string

	resolver access.Resolver
}

// load fills unset options from the environment and a .env file in the
// working directory, then reads the register names.
func (c *config) load() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}

	if c.namesPath == "" {
		c.namesPath = os.Getenv(envNames)
	}

	if c.view == "" {
		c.view = os.Getenv(envView)
	}

	switch c.view {
	case "":
		c.view = viewFull
	case viewFull, viewCompressed:
	default:
		return fmt.Errorf("unknown view %q, use %s or %s",
			c.view, viewFull, viewCompressed)
	}

	if c.namesPath == "" {
		return nil
	}

	names, err := loadNames(c.namesPath)
	if err != nil {
		return err
	}

	c.resolver = access.MapResolver(names)

	return nil
}

// loadNames reads a JSON object such as {"0x8424": "GPIO.WE"}.
func loadNames(path string) (map[access.Addr]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading register names: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding register names %s: %w", path, err)
	}

	names := make(map[access.Addr]string, len(raw))
	for key, name := range raw {
		addr, err := parseAddr(key)
		if err != nil {
			return nil, fmt.Errorf("register names %s: %w", path, err)
		}

		names[addr] = name
	}

	return names, nil
}

func parseAddr(s string) (access.Addr, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid register address %q", s)
	}

	return access.Addr(v), nil
}

func loadFixtureFile(path string) ([]access.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := access.LoadFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}
